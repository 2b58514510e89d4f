package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// OpenOrderCommandHandler selects an order for an operator and, when the order is
// still pending, starts its preparation.
type OpenOrderCommandHandler struct {
	orders ports.OrderSync
}

// NewOpenOrderCommandHandler creates the handler on top of the order sync engine.
func NewOpenOrderCommandHandler(orders ports.OrderSync) OpenOrderCommandHandler {
	return OpenOrderCommandHandler{orders: orders}
}

// Handle opens the order and returns it as stored after the change.
func (h OpenOrderCommandHandler) Handle(ctx context.Context, cmd OpenOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Open(ctx, cmd.OrderID(), cmd.Operator())
}
