package commands

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/guard"
)

// ErrAssignDispatchCommandIsNotConstructed is returned by Validate for a
// AssignDispatchCommand built without its constructor.
var ErrAssignDispatchCommandIsNotConstructed = errors.New(
	"AssignDispatchCommand must be created via NewAssignDispatchCommand constructor",
)

// AssignDispatchCommand sets who takes the order out. A blank category and value
// clears the assignment.
type AssignDispatchCommand struct {
	orderID  kernel.UUID
	category order.DispatchCategory
	value    string

	guard guard.ConstructorGuard
}

// NewAssignDispatchCommand parses the category unless both category and value are
// blank, which builds a command that clears the assignment.
//
// Example:
//
// 	cmd, err := NewAssignDispatchCommand(orderID, "carrier", "Andreani")
// 	clear, err := NewAssignDispatchCommand(orderID, "", "")
func NewAssignDispatchCommand(orderID kernel.UUID, category, value string) (AssignDispatchCommand, error) {
	cmd := AssignDispatchCommand{value: strings.TrimSpace(value), guard: guard.NewConstructorGuard()}

	var categoryErr error
	if strings.TrimSpace(category) != "" || cmd.value != "" {
		cmd.category, categoryErr = order.ParseDispatchCategory(category)
	}

	if err := errors.Join(orderID.Validate(), categoryErr); err != nil {
		return AssignDispatchCommand{}, err
	}

	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through its constructor.
func (c AssignDispatchCommand) Validate() error {
	return c.guard.Validate(ErrAssignDispatchCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c AssignDispatchCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Category returns the dispatch category, or NoCategory when clearing.
func (c AssignDispatchCommand) Category() order.DispatchCategory {
	return c.category
}

// Value returns the carrier, seller or customer name.
func (c AssignDispatchCommand) Value() string {
	return c.value
}

// Clears reports whether the command removes the assignment.
func (c AssignDispatchCommand) Clears() bool {
	return c.category == order.NoCategory && c.value == ""
}
