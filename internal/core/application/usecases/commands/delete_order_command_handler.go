package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order from the store and the snapshot.
type DeleteOrderCommandHandler struct {
	orders ports.OrderSync
}

// NewDeleteOrderCommandHandler creates the handler on top of the order sync engine.
func NewDeleteOrderCommandHandler(orders ports.OrderSync) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{orders: orders}
}

// Handle deletes the order. It returns ErrOrderNotFound when the order is already gone.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.orders.Delete(ctx, cmd.OrderID(), cmd.Operator())
}
