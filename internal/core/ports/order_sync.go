package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

// Mutation changes an order in place. It runs on a private copy; returning an error
// discards the copy.
type Mutation func(o *order.Order) error

// OrderSync owns the local snapshot of all orders and funnels every write through the
// store followed by a full refresh.
type OrderSync interface {
	// Refresh replaces the snapshot with the store's current order set.
	Refresh(ctx context.Context) ([]*order.Order, error)

	// Snapshot returns the last applied order set, newest first.
	Snapshot() []*order.Order

	// Lookup returns the snapshot copy of one order.
	Lookup(id kernel.UUID) (*order.Order, bool)

	// Selected returns the order the operator has open, if any.
	Selected(operator string) (*order.Order, bool)

	// Open selects an order for the operator and credits them as reviewer when the
	// order has none.
	Open(ctx context.Context, id kernel.UUID, operator string) (*order.Order, error)

	// Create stores a new order and refreshes.
	Create(ctx context.Context, draft order.Draft) (*order.Order, error)

	// Mutate applies mutation to the order, stores the changed fields and refreshes.
	Mutate(ctx context.Context, id kernel.UUID, mutation Mutation) (*order.Order, error)

	// Delete removes the order and refreshes. The operator's open reference is cleared
	// whether or not the delete succeeds.
	Delete(ctx context.Context, id kernel.UUID, operator string) error
}
