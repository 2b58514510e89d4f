package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// RefreshOrdersCommandHandler replaces the snapshot with the stored order set.
type RefreshOrdersCommandHandler struct {
	orders ports.OrderSync
}

// NewRefreshOrdersCommandHandler creates the handler on top of the order sync engine.
func NewRefreshOrdersCommandHandler(orders ports.OrderSync) RefreshOrdersCommandHandler {
	return RefreshOrdersCommandHandler{orders: orders}
}

// Handle refreshes the snapshot and returns the orders it now holds.
func (h RefreshOrdersCommandHandler) Handle(ctx context.Context, cmd RefreshOrdersCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Refresh(ctx)
}
