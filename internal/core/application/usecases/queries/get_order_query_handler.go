package queries

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order from the snapshot without changing it.
type GetOrderQueryHandler struct {
	orders ports.OrderSync
}

// NewGetOrderQueryHandler creates the handler on top of the order sync engine.
func NewGetOrderQueryHandler(orders ports.OrderSync) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns the order, or ErrOrderNotFound.
func (h GetOrderQueryHandler) Handle(_ context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, ok := h.orders.Lookup(query.OrderID())
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	return o, nil
}
