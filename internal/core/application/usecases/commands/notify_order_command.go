package commands

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

// ErrNotifyOrderCommandIsNotConstructed is returned by Validate for a
// NotifyOrderCommand built without its constructor.
var ErrNotifyOrderCommandIsNotConstructed = errors.New(
	"NotifyOrderCommand must be created via NewNotifyOrderCommand constructor",
)

// NotifyOrderCommand sends the status message of an order. A blank phone sends it to
// the generic support line.
type NotifyOrderCommand struct {
	orderID  kernel.UUID
	operator string
	phone    string

	guard guard.ConstructorGuard
}

// NewNotifyOrderCommand trims the phone. A blank phone is allowed.
func NewNotifyOrderCommand(orderID kernel.UUID, operator, phone string) (NotifyOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return NotifyOrderCommand{}, err
	}

	return NotifyOrderCommand{
		orderID:  orderID,
		operator: operator,
		phone:    strings.TrimSpace(phone),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through its constructor.
func (c NotifyOrderCommand) Validate() error {
	return c.guard.Validate(ErrNotifyOrderCommandIsNotConstructed)
}

// OrderID returns the order to notify about.
func (c NotifyOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Operator returns who sends the message.
func (c NotifyOrderCommand) Operator() string {
	return c.operator
}

// Phone returns the recipient, or an empty string for the support line.
func (c NotifyOrderCommand) Phone() string {
	return c.phone
}
