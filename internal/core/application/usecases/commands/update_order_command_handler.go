package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// UpdateOrderCommandHandler applies a patch to an order that is not archived.
type UpdateOrderCommandHandler struct {
	orders ports.OrderSync
}

// NewUpdateOrderCommandHandler creates the handler on top of the order sync engine.
func NewUpdateOrderCommandHandler(orders ports.OrderSync) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{orders: orders}
}

// Handle applies the patch and returns the updated order.
//
// Returns:
//   - *order.Order: the order as stored after the change
//   - error: ErrOrderNotFound, ErrOrderIsReadOnly, a validation error or a storage failure
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	patch := cmd.Patch()
	return h.orders.Mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.ApplyPatch(patch)
	})
}
