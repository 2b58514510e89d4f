package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// LinkOrderNumberCommandHandler adds order numbers to an order, skipping ones it
// already carries.
type LinkOrderNumberCommandHandler struct {
	orders ports.OrderSync
}

// NewLinkOrderNumberCommandHandler creates the handler on top of the order sync engine.
func NewLinkOrderNumberCommandHandler(orders ports.OrderSync) LinkOrderNumberCommandHandler {
	return LinkOrderNumberCommandHandler{orders: orders}
}

// Handle links the numbers and returns the updated order.
func (h LinkOrderNumberCommandHandler) Handle(ctx context.Context, cmd LinkOrderNumberCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.LinkOrderNumber(cmd.Number())
	})
}
