package queries

import (
	"context"
	"slices"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// ListOrdersQueryHandler filters the snapshot by view and search term.
//
// Example:
//
// 	query, _ := NewListOrdersQuery("pending", "firmat")
// 	listed, err := handler.Handle(ctx, query)
type ListOrdersQueryHandler struct {
	orders ports.OrderSync
	filter services.SearchFilter
}

// NewListOrdersQueryHandler creates the handler with the snapshot source and the filter.
func NewListOrdersQueryHandler(orders ports.OrderSync, filter services.SearchFilter) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, filter: filter}
}

// Handle returns the matching orders in snapshot order, newest first. The result is
// never nil.
func (h ListOrdersQueryHandler) Handle(_ context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	matched := slices.Collect(h.filter.Filter(h.orders.Snapshot(), query.View(), query.Term()))
	if matched == nil {
		matched = make([]*order.Order, 0)
	}
	return matched, nil
}
