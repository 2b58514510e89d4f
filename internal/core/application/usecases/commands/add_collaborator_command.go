package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrAddCollaboratorCommandIsNotConstructed is returned by Validate for a
// AddCollaboratorCommand built without its constructor.
var ErrAddCollaboratorCommandIsNotConstructed = errors.New(
	"AddCollaboratorCommand must be created via NewAddCollaboratorCommand constructor",
)

// AddCollaboratorCommand credits another operator with preparing an order.
type AddCollaboratorCommand struct {
	orderID kernel.UUID
	name    string

	guard guard.ConstructorGuard
}

// NewAddCollaboratorCommand normalizes the name and rejects a blank one.
//
// Parameters:
//   - orderID: the order to credit
//   - name: the operator to add, matched case and accent insensitive
func NewAddCollaboratorCommand(orderID kernel.UUID, name string) (AddCollaboratorCommand, error) {
	var nameErr error
	normalized := kernel.NormalizeName(name)
	if normalized == "" {
		nameErr = errs.NewValueIsRequiredError("collaborator")
	}

	if err := errors.Join(orderID.Validate(), nameErr); err != nil {
		return AddCollaboratorCommand{}, err
	}

	return AddCollaboratorCommand{orderID: orderID, name: normalized, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through its constructor.
func (c AddCollaboratorCommand) Validate() error {
	return c.guard.Validate(ErrAddCollaboratorCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c AddCollaboratorCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Name returns the normalized collaborator name.
func (c AddCollaboratorCommand) Name() string {
	return c.name
}
