package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

// ErrOpenOrderCommandIsNotConstructed is returned by Validate for a
// OpenOrderCommand built without its constructor.
var ErrOpenOrderCommandIsNotConstructed = errors.New(
	"OpenOrderCommand must be created via NewOpenOrderCommand constructor",
)

// OpenOrderCommand selects an order for an operator. Opening an order nobody has been
// credited with yet makes the operator its reviewer.
type OpenOrderCommand struct {
	orderID  kernel.UUID
	operator string

	guard guard.ConstructorGuard
}

// NewOpenOrderCommand rejects an empty order id. The operator may be blank.
func NewOpenOrderCommand(orderID kernel.UUID, operator string) (OpenOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return OpenOrderCommand{}, err
	}
	return OpenOrderCommand{orderID: orderID, operator: operator, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through its constructor.
func (c OpenOrderCommand) Validate() error {
	return c.guard.Validate(ErrOpenOrderCommandIsNotConstructed)
}

// OrderID returns the order to open.
func (c OpenOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Operator returns who opens the order.
func (c OpenOrderCommand) Operator() string {
	return c.operator
}
