package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

// ErrRemovePackagingEntryCommandIsNotConstructed is returned by Validate for a
// RemovePackagingEntryCommand built without its constructor.
var ErrRemovePackagingEntryCommandIsNotConstructed = errors.New(
	"RemovePackagingEntryCommand must be created via NewRemovePackagingEntryCommand constructor",
)

// RemovePackagingEntryCommand drops one packaging line from an order.
type RemovePackagingEntryCommand struct {
	orderID kernel.UUID
	entryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemovePackagingEntryCommand rejects empty ids.
func NewRemovePackagingEntryCommand(orderID, entryID kernel.UUID) (RemovePackagingEntryCommand, error) {
	if err := errors.Join(orderID.Validate(), entryID.Validate()); err != nil {
		return RemovePackagingEntryCommand{}, err
	}
	return RemovePackagingEntryCommand{orderID: orderID, entryID: entryID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through its constructor.
func (c RemovePackagingEntryCommand) Validate() error {
	return c.guard.Validate(ErrRemovePackagingEntryCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c RemovePackagingEntryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EntryID returns the line to remove.
func (c RemovePackagingEntryCommand) EntryID() kernel.UUID {
	return c.entryID
}
