package commands

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrLinkOrderNumberCommandIsNotConstructed is returned by Validate for a
// LinkOrderNumberCommand built without its constructor.
var ErrLinkOrderNumberCommandIsNotConstructed = errors.New(
	"LinkOrderNumberCommand must be created via NewLinkOrderNumberCommand constructor",
)

// LinkOrderNumberCommand attaches further order numbers to an existing order, e.g.
// when a customer's second order ships in the same parcels.
type LinkOrderNumberCommand struct {
	orderID kernel.UUID
	number  string

	guard guard.ConstructorGuard
}

// NewLinkOrderNumberCommand accepts one number or several separated by commas.
func NewLinkOrderNumberCommand(orderID kernel.UUID, number string) (LinkOrderNumberCommand, error) {
	var numberErr error
	number = strings.TrimSpace(number)
	if strings.Trim(number, ", ") == "" {
		numberErr = errs.NewValueIsRequiredError("orderNumber")
	}

	if err := errors.Join(orderID.Validate(), numberErr); err != nil {
		return LinkOrderNumberCommand{}, err
	}

	return LinkOrderNumberCommand{orderID: orderID, number: number, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through its constructor.
func (c LinkOrderNumberCommand) Validate() error {
	return c.guard.Validate(ErrLinkOrderNumberCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c LinkOrderNumberCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the raw numbers to link.
func (c LinkOrderNumberCommand) Number() string {
	return c.number
}
