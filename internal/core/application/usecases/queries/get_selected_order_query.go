package queries

import (
	"errors"
	"strings"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrGetSelectedOrderQueryIsNotConstructed is returned by Validate for a
// GetSelectedOrderQuery built without its constructor.
var ErrGetSelectedOrderQueryIsNotConstructed = errors.New(
	"GetSelectedOrderQuery must be created via NewGetSelectedOrderQuery constructor",
)

// GetSelectedOrderQuery returns the order an operator currently has open.
type GetSelectedOrderQuery struct {
	operator string

	guard guard.ConstructorGuard
}

// NewGetSelectedOrderQuery rejects a blank operator.
func NewGetSelectedOrderQuery(operator string) (GetSelectedOrderQuery, error) {
	if strings.TrimSpace(operator) == "" {
		return GetSelectedOrderQuery{}, errs.NewValueIsRequiredError("operator")
	}
	return GetSelectedOrderQuery{operator: operator, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through its constructor.
func (q GetSelectedOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetSelectedOrderQueryIsNotConstructed)
}

// Operator returns whose selection to read.
func (q GetSelectedOrderQuery) Operator() string {
	return q.operator
}
