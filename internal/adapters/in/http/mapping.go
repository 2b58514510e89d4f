package http

import (
	"warehouse/internal/adapters/in/http/api"
	"warehouse/internal/core/domain/model/order"
)

func (s *Server) toOrders(orders []*order.Order) []api.Order {
	response := make([]api.Order, len(orders))
	for i, o := range orders {
		response[i] = s.toOrder(o)
	}
	return response
}

func (s *Server) toOrder(o *order.Order) api.Order {
	entries := o.Packaging().Entries()
	packaging := make([]api.PackagingEntry, len(entries))
	for i, e := range entries {
		packaging[i] = api.PackagingEntry{
			ID:       e.ID().String(),
			Deposit:  e.Deposit(),
			Type:     e.ParcelType(),
			Quantity: e.Quantity(),
		}
	}

	reviewers := o.Reviewers().Names()
	if reviewers == nil {
		reviewers = []string{}
	}

	return api.Order{
		ID:             o.ID().String(),
		OrderNumber:    o.OrderNumber(),
		OrderNumbers:   o.OrderNumbers().Tokens(),
		CustomerNumber: o.CustomerNumber(),
		CustomerName:   o.CustomerName(),
		Locality:       o.Locality(),
		Status:         o.Status().String(),
		StatusLabel:    o.Status().Label(),
		Packaging:      packaging,
		PackagingTotal: o.Packaging().Total(),
		Dispatch:       s.toDispatch(o.Dispatch()),
		Reviewers:      reviewers,
		Notes:          o.Notes(),
		Source:         o.Source().String(),
		CreatedAt:      o.CreatedAt(),
		Version:        o.Version(),
	}
}

// toDispatch shows roster names in their roster spelling. Values that are not on the
// roster, and legacy free text, are shown as stored.
func (s *Server) toDispatch(stored order.DispatchAssignment) *api.Dispatch {
	if stored.IsZero() {
		return nil
	}

	a := s.resolver.Decode(stored.Encode())
	return &api.Dispatch{
		Category: a.Category().String(),
		Value:    a.Value(),
		Label:    a.String(),
	}
}
