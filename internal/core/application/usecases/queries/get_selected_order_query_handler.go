package queries

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// GetSelectedOrderQueryHandler returns the order an operator has open.
type GetSelectedOrderQueryHandler struct {
	orders ports.OrderSync
}

// NewGetSelectedOrderQueryHandler creates the handler on top of the order sync engine.
func NewGetSelectedOrderQueryHandler(orders ports.OrderSync) GetSelectedOrderQueryHandler {
	return GetSelectedOrderQueryHandler{orders: orders}
}

// Handle fails with ObjectNotFound when the operator has nothing open, including when
// the open order was deleted by someone else.
func (h GetSelectedOrderQueryHandler) Handle(_ context.Context, query GetSelectedOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, ok := h.orders.Selected(query.Operator())
	if !ok {
		return nil, errs.NewObjectNotFoundError("selected order", query.Operator())
	}
	return o, nil
}
