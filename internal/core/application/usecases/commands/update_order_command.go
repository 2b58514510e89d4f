package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrUpdateOrderCommandIsNotConstructed is returned by Validate for a
// UpdateOrderCommand built without its constructor.
var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand is the generic edit of an order's details. Unlike
// AdvanceOrderCommand it can set any status, but never on an archived order.
type UpdateOrderCommand struct {
	orderID kernel.UUID
	patch   order.Patch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand rejects an empty patch.
func NewUpdateOrderCommand(orderID kernel.UUID, patch order.Patch) (UpdateOrderCommand, error) {
	var patchErr error
	if patch.IsEmpty() {
		patchErr = errs.NewValueIsRequiredError("patch")
	} else if patch.Status != nil {
		patchErr = patch.Status.Validate()
	}

	if err := errors.Join(orderID.Validate(), patchErr); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{orderID: orderID, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through its constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Patch returns the fields to change.
func (c UpdateOrderCommand) Patch() order.Patch {
	return c.patch
}
