package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// AssignDispatchCommandHandler resolves the selection against the roster before
// anything is written.
type AssignDispatchCommandHandler struct {
	orders   ports.OrderSync
	resolver services.DispatchResolver
}

// NewAssignDispatchCommandHandler creates the handler with the resolver that checks the
// value against the category's options.
func NewAssignDispatchCommandHandler(
	orders ports.OrderSync,
	resolver services.DispatchResolver,
) AssignDispatchCommandHandler {
	return AssignDispatchCommandHandler{orders: orders, resolver: resolver}
}

// Handle stores the assignment, or clears it, and returns the updated order.
func (h AssignDispatchCommandHandler) Handle(ctx context.Context, cmd AssignDispatchCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var assignment order.DispatchAssignment
	if !cmd.Clears() {
		var err error
		if assignment, err = h.resolver.Resolve(cmd.Category(), cmd.Value()); err != nil {
			return nil, err
		}
	}

	return h.orders.Mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.AssignDispatch(assignment)
	})
}
