package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/guard"
)

// ErrGetStatusCountsQueryIsNotConstructed is returned by Validate for a
// GetStatusCountsQuery built without its constructor.
var ErrGetStatusCountsQueryIsNotConstructed = errors.New(
	"GetStatusCountsQuery must be created via NewGetStatusCountsQuery constructor",
)

// GetStatusCountsQuery counts orders per status straight from the store, including
// writes the local snapshot has not picked up yet.
//
// Example:
//
//	counts, err := handler.Handle(ctx, NewGetStatusCountsQuery())
//	if err != nil {
//	    return err
//	}
//	for _, c := range counts {
//	    fmt.Printf("%s: %d\n", c.Status.Label(), c.Count)
//	}
type GetStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatusCountsQuery creates the query.
func NewGetStatusCountsQuery() GetStatusCountsQuery {
	return GetStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through its constructor.
func (q GetStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusCountsQueryIsNotConstructed)
}

// StatusCount is one row of the result. Every status is present, zero counts included.
type StatusCount struct {
	Status order.Status
	Count  int64
}
