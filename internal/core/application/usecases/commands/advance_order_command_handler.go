package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// AdvanceOrderCommandHandler moves an order one step along
// PENDING → COMPLETED → DISPATCHED → ARCHIVED.
type AdvanceOrderCommandHandler struct {
	orders ports.OrderSync
}

// NewAdvanceOrderCommandHandler creates the handler on top of the sync engine.
func NewAdvanceOrderCommandHandler(orders ports.OrderSync) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{orders: orders}
}

// Handle advances the order. Advancing an archived order is a no-op that returns the
// order unchanged, including when it was archived in the store before this process
// saw it.
//
// Returns:
//   - the advanced order, or the archived one untouched
//   - order.ErrOrderIsReadOnly only when the archived order cannot be read back
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if current, ok := h.orders.Lookup(cmd.OrderID()); ok && !current.CanMutate() {
		return current, nil
	}

	advanced, err := h.orders.Mutate(ctx, cmd.OrderID(), (*order.Order).Advance)
	if !errors.Is(err, order.ErrOrderIsReadOnly) {
		return advanced, err
	}

	if current, ok := h.orders.Lookup(cmd.OrderID()); ok {
		return current, nil
	}
	// Not in the snapshot yet: pull it in and answer with the stored copy.
	if _, refreshErr := h.orders.Refresh(ctx); refreshErr != nil {
		return nil, err
	}
	if current, ok := h.orders.Lookup(cmd.OrderID()); ok {
		return current, nil
	}
	return nil, err
}
