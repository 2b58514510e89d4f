package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrDeleteOrderCommandIsNotConstructed is returned by Validate for a
	// DeleteOrderCommand built without its constructor.
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)

	// ErrDeleteIsNotConfirmed is returned when the operator did not confirm a delete.
	ErrDeleteIsNotConfirmed = errs.NewValueIsRequiredError("confirmation")
)

// DeleteOrderCommand removes an order permanently. It can only be built with the
// operator's explicit confirmation. Archived orders can be deleted too.
type DeleteOrderCommand struct {
	orderID  kernel.UUID
	operator string

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand fails with ErrDeleteIsNotConfirmed unless confirmed is set.
//
// Parameters:
//   - orderID: the order to remove
//   - operator: who asked for it, used to drop their selection
//   - confirmed: the operator's explicit confirmation
func NewDeleteOrderCommand(orderID kernel.UUID, operator string, confirmed bool) (DeleteOrderCommand, error) {
	var confirmErr error
	if !confirmed {
		confirmErr = ErrDeleteIsNotConfirmed
	}

	if err := errors.Join(orderID.Validate(), confirmErr); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{orderID: orderID, operator: operator, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through its constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to remove.
func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Operator returns who asked for the delete.
func (c DeleteOrderCommand) Operator() string {
	return c.operator
}
