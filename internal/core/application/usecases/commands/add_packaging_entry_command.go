package commands

import (
	"errors"
	"math"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrAddPackagingEntryCommandIsNotConstructed is returned by Validate for a
// AddPackagingEntryCommand built without its constructor.
var ErrAddPackagingEntryCommandIsNotConstructed = errors.New(
	"AddPackagingEntryCommand must be created via NewAddPackagingEntryCommand constructor",
)

// AddPackagingEntryCommand records parcels taken from a deposit for an order.
type AddPackagingEntryCommand struct {
	orderID    kernel.UUID
	deposit    order.Choice
	parcelType order.Choice
	quantity   int

	guard guard.ConstructorGuard
}

// NewAddPackagingEntryCommand validates every field and joins the failures, so the
// caller sees all of them at once.
//
// Parameters:
//   - orderID: the order to add the line to
//   - deposit: where the parcels are kept
//   - parcelType: the kind of parcel
//   - quantity: how many parcels, at least one
func NewAddPackagingEntryCommand(
	orderID kernel.UUID,
	deposit, parcelType order.Choice,
	quantity int,
) (AddPackagingEntryCommand, error) {
	cmd := AddPackagingEntryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDeposit(deposit),
		cmd.setParcelType(parcelType),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddPackagingEntryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through its constructor.
func (c AddPackagingEntryCommand) Validate() error {
	return c.guard.Validate(ErrAddPackagingEntryCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c AddPackagingEntryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Deposit returns where the parcels are kept.
func (c AddPackagingEntryCommand) Deposit() order.Choice {
	return c.deposit
}

// ParcelType returns the kind of parcel.
func (c AddPackagingEntryCommand) ParcelType() order.Choice {
	return c.parcelType
}

// Quantity returns the number of parcels.
func (c AddPackagingEntryCommand) Quantity() int {
	return c.quantity
}

func (c *AddPackagingEntryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddPackagingEntryCommand) setDeposit(deposit order.Choice) error {
	if deposit.Resolve() == "" {
		return errs.NewValueIsRequiredError("deposit")
	}
	c.deposit = deposit
	return nil
}

func (c *AddPackagingEntryCommand) setParcelType(parcelType order.Choice) error {
	if parcelType.Resolve() == "" {
		return errs.NewValueIsRequiredError("type")
	}
	c.parcelType = parcelType
	return nil
}

func (c *AddPackagingEntryCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	c.quantity = quantity
	return nil
}
