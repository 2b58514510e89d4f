package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates: the remote
// entity store the synchronization engine reads from and writes to.
type OrderRepository interface {
	// FindAll returns every order, newest first by creation time.
	FindAll(ctx context.Context) ([]*order.Order, error)

	// Get retrieves an order by identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Add stores a new order. The store assigns the identifier and creation time.
	Add(ctx context.Context, draft order.Draft) (*order.Order, error)

	// Update writes the fields the aggregate reports as changed and bumps its version.
	// An aggregate without changes is not written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order permanently.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Delete(ctx context.Context, id kernel.UUID) error
}
