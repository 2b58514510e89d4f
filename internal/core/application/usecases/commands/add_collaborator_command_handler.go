package commands

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
)

// AddCollaboratorCommandHandler adds a reviewer to an order. Adding a name already on
// the list leaves the order untouched.
//
// Example:
//
// 	cmd, _ := NewAddCollaboratorCommand(orderID, "Ana")
// 	updated, err := handler.Handle(ctx, cmd)
type AddCollaboratorCommandHandler struct {
	orders ports.OrderSync
}

// NewAddCollaboratorCommandHandler creates the handler on top of the order sync engine.
func NewAddCollaboratorCommandHandler(orders ports.OrderSync) AddCollaboratorCommandHandler {
	return AddCollaboratorCommandHandler{orders: orders}
}

// Handle adds the collaborator. A name already credited causes no write.
func (h AddCollaboratorCommandHandler) Handle(ctx context.Context, cmd AddCollaboratorCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.AddCollaborator(cmd.Name())
	})
}
