package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// CreateOrderCommandHandler stores new orders.
type CreateOrderCommandHandler struct {
	orders ports.OrderSync
}

// NewCreateOrderCommandHandler creates the handler on top of the order sync engine.
func NewCreateOrderCommandHandler(orders ports.OrderSync) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{orders: orders}
}

// Handle stores the order and returns it as it appears after the refresh:
// PENDING, with the identity and creation time the store assigned.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Create(ctx, cmd.Draft())
}
