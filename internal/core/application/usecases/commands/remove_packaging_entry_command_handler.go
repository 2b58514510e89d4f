package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// RemovePackagingEntryCommandHandler removes a packaging line from an order.
type RemovePackagingEntryCommandHandler struct {
	orders ports.OrderSync
}

// NewRemovePackagingEntryCommandHandler creates the handler on top of the order sync engine.
func NewRemovePackagingEntryCommandHandler(orders ports.OrderSync) RemovePackagingEntryCommandHandler {
	return RemovePackagingEntryCommandHandler{orders: orders}
}

// Handle removes the entry. An unknown entry id leaves the order as it is.
func (h RemovePackagingEntryCommandHandler) Handle(
	ctx context.Context,
	cmd RemovePackagingEntryCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.RemovePackagingEntry(cmd.EntryID())
	})
}
