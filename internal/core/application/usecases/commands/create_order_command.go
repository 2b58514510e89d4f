package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned by Validate for a
// CreateOrderCommand built without its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new order. Validation happens in the constructor, so
// a command that exists is ready to be stored.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(order.DraftParams{
//	    OrderNumber:  "5542",
//	    CustomerName: "Bazar Firmat",
//	    Operator:     "Lucía",
//	})
//	if err != nil {
//	    return err // errs.ErrValidation
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	draft order.Draft

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand builds the draft and returns every validation failure joined.
func NewCreateOrderCommand(params order.DraftParams) (CreateOrderCommand, error) {
	draft, err := order.NewDraft(params)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{draft: draft, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Draft returns the validated order draft.
func (c CreateOrderCommand) Draft() order.Draft {
	return c.draft
}
