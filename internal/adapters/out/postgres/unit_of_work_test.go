package postgres_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	postgres_adapter "warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.ChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...ports.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) Events() []ports.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.ChangeEvent(nil), p.events...)
}

func newSQLiteFactory(t *testing.T, publisher ports.ChangePublisher) (*postgres_adapter.GormUnitOfWorkFactory, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderrepo.OrderDTO{}))

	return postgres_adapter.NewGormUnitOfWorkFactory(db, postgres_adapter.UnitOfWorkOptions{Publisher: publisher}), db
}

func newDraft(t *testing.T, number string) order.Draft {
	t.Helper()
	draft, err := order.NewDraft(order.DraftParams{OrderNumber: number, CustomerName: "Bazar Firmat"})
	require.NoError(t, err)
	return draft
}

func TestGormUnitOfWork_PublishesAfterCommit(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory, _ := newSQLiteFactory(t, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	created, err := uow.OrderRepository().Add(ctx, newDraft(t, "5542"))
	require.NoError(t, err)

	assert.Empty(t, publisher.Events(), "nothing is announced before commit")

	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, []ports.ChangeEvent{{Op: ports.ChangeInsert, OrderID: created.ID().String()}}, publisher.Events())
}

func TestGormUnitOfWork_RollbackDiscards(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}
	factory, _ := newSQLiteFactory(t, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	created, err := uow.OrderRepository().Add(ctx, newDraft(t, "5542"))
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(ctx))

	_, err = factory.Create().OrderRepository().Get(ctx, created.ID())
	require.Error(t, err)
	assert.Empty(t, publisher.Events())
	assert.Empty(t, uow.(*postgres_adapter.GormUnitOfWork).Tracked())
}

func TestGormUnitOfWork_PublishFailureDoesNotFailCommit(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{err: errors.New("redis down")}
	factory, _ := newSQLiteFactory(t, publisher)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	created, err := uow.OrderRepository().Add(ctx, newDraft(t, "5542"))
	require.NoError(t, err)

	require.NoError(t, uow.Commit(ctx))

	stored, err := factory.Create().OrderRepository().Get(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "5542", stored.OrderNumber())
}

func TestGormUnitOfWork_TransactionErrors(t *testing.T) {
	ctx := t.Context()
	factory, _ := newSQLiteFactory(t, nil)
	uow := factory.Create()

	require.ErrorIs(t, uow.Commit(ctx), gorm.ErrInvalidTransaction)
	require.ErrorIs(t, uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Begin(ctx), "a second Begin is a no-op")
	require.NoError(t, uow.Commit(ctx))
	require.ErrorIs(t, uow.Rollback(ctx), gorm.ErrInvalidTransaction, "rollback after commit")
}

func TestGormUnitOfWork_WithoutTransaction(t *testing.T) {
	ctx := t.Context()
	factory, _ := newSQLiteFactory(t, nil)

	created, err := factory.Create().OrderRepository().Add(ctx, newDraft(t, "5542"))
	require.NoError(t, err)

	orders, err := factory.Create().OrderRepository().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].ID().IsEqual(created.ID()))
}
