package queries

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/guard"
)

// ErrListOrdersQueryIsNotConstructed is returned by Validate for a
// ListOrdersQuery built without its constructor.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery selects the orders shown in one view of the board, optionally
// narrowed by a search term.
//
// Example:
//
//	query, err := NewListOrdersQuery("pending", "firmat")
//	if err != nil {
//	    return err // unknown view
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	view services.View
	term string

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses the view name; blank means every non-archived order.
func NewListOrdersQuery(view, term string) (ListOrdersQuery, error) {
	parsed, err := services.ParseView(view)
	if err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		view:  parsed,
		term:  strings.TrimSpace(term),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through its constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// View returns the status view to list.
func (q ListOrdersQuery) View() services.View {
	return q.view
}

// Term returns the search term, possibly empty.
func (q ListOrdersQuery) Term() string {
	return q.term
}
