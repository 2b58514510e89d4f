package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

// ErrAdvanceOrderCommandIsNotConstructed is returned by Validate for a
// AdvanceOrderCommand built without its constructor.
var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand moves an order one step along PENDING -> COMPLETED ->
// DISPATCHED -> ARCHIVED.
type AdvanceOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand rejects an empty order id.
func NewAdvanceOrderCommand(orderID kernel.UUID) (AdvanceOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}
	return AdvanceOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through its constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to move forward.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
