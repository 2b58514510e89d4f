// Package postgres provides the GORM implementation of the order store: the unit of
// work, the change listener built on LISTEN/NOTIFY and the trigger that feeds it.
//
// Basic transaction management:
//
//	factory := NewGormUnitOfWorkFactory(db, UnitOfWorkOptions{})
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Every write made through the repository is tracked. When a ChangePublisher is
// configured the tracked writes are announced after a successful commit, never before.
package postgres

import (
	"context"

	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/logger"

	"gorm.io/gorm"
)

// UnitOfWorkOptions configure the units of work created by a factory.
type UnitOfWorkOptions struct {
	Repository orderrepo.Options
	// Publisher announces committed writes. Optional.
	Publisher ports.ChangePublisher
	Logger    *logger.Logger
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db   *gorm.DB
	opts UnitOfWorkOptions
}

// NewGormUnitOfWorkFactory creates the factory. A nil logger discards output.
func NewGormUnitOfWorkFactory(db *gorm.DB, opts UnitOfWorkOptions) *GormUnitOfWorkFactory {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &GormUnitOfWorkFactory{db: db, opts: opts}
}

// Create produces a fresh unit of work with its own transaction state and tracked
// writes.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		opts:    f.opts,
		tracked: make([]ports.ChangeEvent, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the writes made in
// it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	opts    UnitOfWorkOptions
	tracked []ports.ChangeEvent
}

// Begin starts the transaction. Calling it again while a transaction is open does
// nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the tracked writes. A failed
// publication is logged; the writes are already durable and other processes still
// converge through the store's own notifications or the periodic resync.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracked = uow.tracked[:0]
		return err
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction and the tracked writes.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
	return err
}

// OrderRepository returns a repository bound to the open transaction, or to the
// connection pool when there is none.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow, uow.opts.Repository)
}

// TrackAggregate is called by the repository for every write it makes.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, op ports.ChangeOp) {
	uow.tracked = append(uow.tracked, ports.ChangeEvent{Op: op, OrderID: id.String()})
}

// Tracked returns the writes recorded since the last commit or rollback.
func (uow *GormUnitOfWork) Tracked() []ports.ChangeEvent {
	return append([]ports.ChangeEvent(nil), uow.tracked...)
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	events := uow.tracked
	uow.tracked = make([]ports.ChangeEvent, 0)

	if uow.opts.Publisher == nil || len(events) == 0 {
		return
	}
	if err := uow.opts.Publisher.Publish(ctx, events...); err != nil {
		uow.opts.Logger.Warn(ctx, "change events were not published", "error", err, "events", len(events))
	}
}
