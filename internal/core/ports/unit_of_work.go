package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per write.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes one write against the order store to a single transaction.
// Orders written through its repository are announced on the change feed only after
// Commit succeeds; a rollback announces nothing.
type UnitOfWork interface {
	// Begin opens the transaction; a second call while it is open is a no-op.
	Begin(ctx context.Context) error

	// Commit makes the writes visible and publishes their change events.
	Commit(ctx context.Context) error

	// Rollback discards the writes. It fails when no transaction is open.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the open transaction, or to the plain
	// connection before Begin.
	OrderRepository() OrderRepository
}
