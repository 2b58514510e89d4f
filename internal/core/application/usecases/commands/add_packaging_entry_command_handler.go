package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// AddPackagingEntryCommandHandler appends a packaging line to an order.
type AddPackagingEntryCommandHandler struct {
	orders ports.OrderSync
}

// NewAddPackagingEntryCommandHandler creates the handler on top of the order sync engine.
func NewAddPackagingEntryCommandHandler(orders ports.OrderSync) AddPackagingEntryCommandHandler {
	return AddPackagingEntryCommandHandler{orders: orders}
}

// Handle adds the line and returns the stored order.
//
// Returns:
//   - *order.Order: the order with the new line
//   - error: a validation error, ErrOrderNotFound, ErrOrderIsReadOnly or a storage failure
func (h AddPackagingEntryCommandHandler) Handle(ctx context.Context, cmd AddPackagingEntryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		_, err := o.AddPackagingEntry(cmd.Deposit(), cmd.ParcelType(), cmd.Quantity())
		return err
	})
}
