package queries

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/guard"
)

// ErrGetDispatchOptionsQueryIsNotConstructed is returned by Validate for a
// GetDispatchOptionsQuery built without its constructor.
var ErrGetDispatchOptionsQueryIsNotConstructed = errors.New(
	"GetDispatchOptionsQuery must be created via NewGetDispatchOptionsQuery constructor",
)

// GetDispatchOptionsQuery lists the dispatch categories and, for the roster-backed
// ones, the names an operator may pick. A blank category lists all of them.
type GetDispatchOptionsQuery struct {
	category order.DispatchCategory

	guard guard.ConstructorGuard
}

// NewGetDispatchOptionsQuery parses the category. A blank category asks for all of them.
func NewGetDispatchOptionsQuery(category string) (GetDispatchOptionsQuery, error) {
	q := GetDispatchOptionsQuery{guard: guard.NewConstructorGuard()}
	if strings.TrimSpace(category) == "" {
		return q, nil
	}

	parsed, err := order.ParseDispatchCategory(category)
	if err != nil {
		return GetDispatchOptionsQuery{}, err
	}
	q.category = parsed
	return q, nil
}

// Validate ensures the query was created through its constructor.
func (q GetDispatchOptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchOptionsQueryIsNotConstructed)
}

// Category returns the requested category, or NoCategory for all.
func (q GetDispatchOptionsQuery) Category() order.DispatchCategory {
	return q.category
}

// DispatchOptions describes one category. Options is empty for free-text categories.
type DispatchOptions struct {
	Category   order.DispatchCategory
	UsesRoster bool
	Options    []string
}
