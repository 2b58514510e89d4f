package ordersync_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"warehouse/internal/core/application/ordersync"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T, number, operator string) order.Draft {
	t.Helper()
	d, err := order.NewDraft(order.DraftParams{
		OrderNumber:    number,
		CustomerNumber: "1450",
		CustomerName:   "Bazar Firmat",
		Operator:       operator,
	})
	require.NoError(t, err)
	return d
}

func restored(t *testing.T, status order.Status, reviewer string) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.State{
		ID:           kernel.NewUUID(),
		OrderNumber:  "5542",
		CustomerName: "Bazar Firmat",
		Locality:     order.DefaultLocality,
		Status:       status,
		Reviewer:     reviewer,
		Source:       order.SourceManual,
		CreatedAt:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Version:      1,
	})
	require.NoError(t, err)
	return o
}

func newEngine(t *testing.T, factory ports.UnitOfWorkFactory) *ordersync.Engine {
	t.Helper()
	e, err := ordersync.NewEngine(factory, ordersync.Options{})
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	_, err := ordersync.NewEngine(nil, ordersync.Options{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestEngine_CreateScenario(t *testing.T) {
	store := newMemoryStore()
	e := newEngine(t, store)

	d, err := order.NewDraft(order.DraftParams{
		OrderNumber:    "5542",
		CustomerNumber: "1450",
		CustomerName:   "Bazar Firmat",
		Locality:       "",
		Operator:       "Lucía",
	})
	require.NoError(t, err)

	created, err := e.Create(t.Context(), d)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, "GENERAL", created.Locality())
	assert.Equal(t, "LUCÍA", created.Reviewers().String())
	require.Len(t, e.Snapshot(), 1)
	assert.True(t, e.Snapshot()[0].IsEqual(created))
}

func TestEngine_RefreshOrdersNewestFirst(t *testing.T) {
	store := newMemoryStore()
	e := newEngine(t, store)

	_, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
	require.NoError(t, err)
	_, err = e.Create(t.Context(), newDraft(t, "2", "ana"))
	require.NoError(t, err)

	orders, err := e.Refresh(t.Context())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "2", orders[0].OrderNumber())
	assert.Equal(t, "1", orders[1].OrderNumber())
}

func TestEngine_SnapshotIsACopy(t *testing.T) {
	store := newMemoryStore()
	e := newEngine(t, store)
	created, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
	require.NoError(t, err)

	snapshot := e.Snapshot()
	require.NoError(t, snapshot[0].SetNotes("local only"))

	again, ok := e.Lookup(created.ID())
	require.True(t, ok)
	assert.Empty(t, again.Notes())
}

func TestEngine_Mutate(t *testing.T) {
	t.Run("writes and refreshes", func(t *testing.T) {
		store := newMemoryStore()
		e := newEngine(t, store)
		created, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
		require.NoError(t, err)

		updated, err := e.Mutate(t.Context(), created.ID(), func(o *order.Order) error {
			return o.SetNotes("Entregar por la tarde")
		})

		require.NoError(t, err)
		assert.Equal(t, "Entregar por la tarde", updated.Notes())
		assert.Equal(t, 2, updated.Version())
		assert.False(t, updated.HasChanges())
	})

	t.Run("advance three times archives and a fourth is rejected", func(t *testing.T) {
		store := newMemoryStore()
		e := newEngine(t, store)
		created, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
		require.NoError(t, err)

		for range 3 {
			_, err = e.Mutate(t.Context(), created.ID(), (*order.Order).Advance)
			require.NoError(t, err)
		}
		o, _ := e.Lookup(created.ID())
		assert.Equal(t, order.Archived, o.Status())

		_, err = e.Mutate(t.Context(), created.ID(), (*order.Order).Advance)
		require.ErrorIs(t, err, order.ErrOrderIsReadOnly)
		o, _ = e.Lookup(created.ID())
		assert.Equal(t, order.Archived, o.Status())
	})

	t.Run("validation errors never reach the store", func(t *testing.T) {
		current := restored(t, order.Pending, "ANA")
		repo := new(MockOrderRepository)
		repo.On("FindAll", mock.Anything).Return([]*order.Order{current}, nil).Once()
		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(repo)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow)

		e := newEngine(t, factory)
		_, err := e.Refresh(t.Context())
		require.NoError(t, err)

		_, err = e.Mutate(t.Context(), current.ID(), func(o *order.Order) error {
			_, addErr := o.AddPackagingEntry(order.Preset("Dep.D1"), order.Preset("Caja"), 0)
			return addErr
		})

		require.ErrorIs(t, err, errs.ErrValidation)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("failed write leaves the snapshot unchanged", func(t *testing.T) {
		current := restored(t, order.Pending, "ANA")
		writeErr := errs.NewRemoteOperationError("update order", errors.New("connection refused"))

		repo := new(MockOrderRepository)
		repo.On("FindAll", mock.Anything).Return([]*order.Order{current}, nil).Once()
		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(repo)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow)

		e := newEngine(t, factory)
		_, err := e.Refresh(t.Context())
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil).Once(),
			repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(writeErr).Once(),
			uow.On("Rollback", mock.Anything).Return(nil).Once(),
		)

		_, err = e.Mutate(t.Context(), current.ID(), func(o *order.Order) error { return o.SetNotes("x") })

		require.ErrorIs(t, err, errs.ErrRemoteOperation)
		o, ok := e.Lookup(current.ID())
		require.True(t, ok)
		assert.Empty(t, o.Notes())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		repo.AssertNumberOfCalls(t, "FindAll", 1)
	})

	t.Run("no change means no write", func(t *testing.T) {
		current := restored(t, order.Pending, "ANA")
		repo := new(MockOrderRepository)
		repo.On("FindAll", mock.Anything).Return([]*order.Order{current}, nil).Once()
		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(repo)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow)

		e := newEngine(t, factory)
		_, err := e.Refresh(t.Context())
		require.NoError(t, err)

		o, err := e.Mutate(t.Context(), current.ID(), func(o *order.Order) error { return o.AddCollaborator("ana") })

		require.NoError(t, err)
		assert.Equal(t, "ANA", o.Reviewers().String())
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("unknown order is fetched from the store", func(t *testing.T) {
		id := kernel.NewUUID()
		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(repo)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow)

		_, err := newEngine(t, factory).Mutate(t.Context(), id, func(*order.Order) error { return nil })

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("nil mutation", func(t *testing.T) {
		_, err := newEngine(t, newMemoryStore()).Mutate(t.Context(), kernel.NewUUID(), nil)

		require.ErrorIs(t, err, ordersync.ErrMutationIsRequired)
	})
}

func TestEngine_Open(t *testing.T) {
	t.Run("first open credits the operator once", func(t *testing.T) {
		store := newMemoryStore()
		e := newEngine(t, store)
		created, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
		require.NoError(t, err)
		require.NoError(t, store.Update(t.Context(), withoutReviewer(t, created)))
		_, err = e.Refresh(t.Context())
		require.NoError(t, err)

		opened, err := e.Open(t.Context(), created.ID(), "pedro")
		require.NoError(t, err)
		assert.Equal(t, "PEDRO", opened.Reviewers().String())

		again, err := e.Open(t.Context(), created.ID(), "lucía")
		require.NoError(t, err)
		assert.Equal(t, "PEDRO", again.Reviewers().String())

		selected, ok := e.Selected("Lucía")
		require.True(t, ok)
		assert.True(t, selected.IsEqual(created))
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := newEngine(t, newMemoryStore()).Open(t.Context(), kernel.NewUUID(), "ana")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("archived orders are not touched", func(t *testing.T) {
		archived := restored(t, order.Archived, "")
		repo := new(MockOrderRepository)
		repo.On("FindAll", mock.Anything).Return([]*order.Order{archived}, nil)
		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(repo)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow)

		o, err := newEngine(t, factory).Open(t.Context(), archived.ID(), "ana")

		require.NoError(t, err)
		assert.True(t, o.Reviewers().IsEmpty())
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func withoutReviewer(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	state := o.State()
	state.Reviewer = ""
	stripped, err := order.RestoreOrder(state)
	require.NoError(t, err)
	return stripped
}

func TestEngine_SelectionFollowsRefresh(t *testing.T) {
	store := newMemoryStore()
	e := newEngine(t, store)
	other := newEngine(t, store)

	created, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
	require.NoError(t, err)
	_, err = e.Open(t.Context(), created.ID(), "ana")
	require.NoError(t, err)

	_, err = other.Mutate(t.Context(), created.ID(), func(o *order.Order) error { return o.SetNotes("remote edit") })
	require.NoError(t, err)
	_, err = e.Refresh(t.Context())
	require.NoError(t, err)

	selected, ok := e.Selected("ana")
	require.True(t, ok)
	assert.Equal(t, "remote edit", selected.Notes())

	require.NoError(t, other.Delete(t.Context(), created.ID(), "someone"))
	_, err = e.Refresh(t.Context())
	require.NoError(t, err)

	_, ok = e.Selected("ana")
	assert.False(t, ok)
}

func TestEngine_Delete(t *testing.T) {
	t.Run("removes and refreshes", func(t *testing.T) {
		store := newMemoryStore()
		e := newEngine(t, store)
		created, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
		require.NoError(t, err)

		require.NoError(t, e.Delete(t.Context(), created.ID(), "ana"))

		assert.Empty(t, e.Snapshot())
	})

	t.Run("archived orders can be deleted", func(t *testing.T) {
		store := newMemoryStore()
		e := newEngine(t, store)
		created, err := e.Create(t.Context(), newDraft(t, "1", "ana"))
		require.NoError(t, err)
		_, err = e.Mutate(t.Context(), created.ID(), func(o *order.Order) error { return o.SetStatus(order.Archived) })
		require.NoError(t, err)

		require.NoError(t, e.Delete(t.Context(), created.ID(), "ana"))
		assert.Empty(t, e.Snapshot())
	})

	t.Run("failure clears the selection and keeps the snapshot", func(t *testing.T) {
		current := restored(t, order.Pending, "ANA")
		repo := new(MockOrderRepository)
		repo.On("FindAll", mock.Anything).Return([]*order.Order{current}, nil).Once()
		repo.On("Delete", mock.Anything, current.ID()).Return(errs.NewRemoteOperationError("delete order", errors.New("timeout"))).Once()
		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(repo)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow)

		e := newEngine(t, factory)
		_, err := e.Open(t.Context(), current.ID(), "ana")
		require.NoError(t, err)

		err = e.Delete(t.Context(), current.ID(), "ana")

		require.ErrorIs(t, err, errs.ErrRemoteOperation)
		_, ok := e.Selected("ana")
		assert.False(t, ok)
		assert.Len(t, e.Snapshot(), 1)
	})
}

func TestEngine_ConcurrentWritersConverge(t *testing.T) {
	store := newMemoryStore()
	first := newEngine(t, store)
	second := newEngine(t, store)

	created, err := first.Create(t.Context(), newDraft(t, "1", "ana"))
	require.NoError(t, err)
	_, err = second.Refresh(t.Context())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = first.Mutate(t.Context(), created.ID(), func(o *order.Order) error { return o.SetNotes("from first") })
	}()
	go func() {
		defer wg.Done()
		_, _ = second.Mutate(t.Context(), created.ID(), func(o *order.Order) error { return o.SetNotes("from second") })
	}()
	wg.Wait()

	stored, err := store.Get(t.Context(), created.ID())
	require.NoError(t, err)

	_, err = first.Refresh(t.Context())
	require.NoError(t, err)
	_, err = second.Refresh(t.Context())
	require.NoError(t, err)

	a, _ := first.Lookup(created.ID())
	b, _ := second.Lookup(created.ID())
	assert.Equal(t, stored.Notes(), a.Notes())
	assert.Equal(t, stored.Notes(), b.Notes())
	assert.Contains(t, []string{"from first", "from second"}, stored.Notes())
}

func TestEngine_StaleRefreshIsDropped(t *testing.T) {
	older := restored(t, order.Pending, "ANA")
	newer := restored(t, order.Completed, "ANA")
	started := make(chan struct{})
	release := make(chan struct{})

	repo := new(MockOrderRepository)
	repo.On("FindAll", mock.Anything).Return([]*order.Order{older}, nil).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Once()
	repo.On("FindAll", mock.Anything).Return([]*order.Order{newer}, nil).Once()
	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)

	reg := prometheus.NewRegistry()
	e, err := ordersync.NewEngine(factory, ordersync.Options{Metrics: metrics.NewSyncMetrics(reg)})
	require.NoError(t, err)

	slow := make(chan []*order.Order)
	go func() {
		orders, _ := e.Refresh(t.Context())
		slow <- orders
	}()
	<-started

	fast, err := e.Refresh(t.Context())
	require.NoError(t, err)
	require.Len(t, fast, 1)
	assert.True(t, fast[0].IsEqual(newer))

	close(release)
	late := <-slow

	require.Len(t, late, 1)
	assert.True(t, late[0].IsEqual(newer))
	assert.True(t, e.Snapshot()[0].IsEqual(newer))
	assert.InDelta(t, 1.0, counterValue(t, reg, "orders_refresh_total", metrics.OutcomeStale), 0)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestEngine_RefreshFailureKeepsSnapshot(t *testing.T) {
	current := restored(t, order.Pending, "ANA")
	repo := new(MockOrderRepository)
	repo.On("FindAll", mock.Anything).Return([]*order.Order{current}, nil).Once()
	repo.On("FindAll", mock.Anything).Return(nil, errs.NewRemoteOperationError("list orders", errors.New("down"))).Once()
	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)
	e := newEngine(t, factory)

	_, err := e.Refresh(t.Context())
	require.NoError(t, err)
	_, err = e.Refresh(t.Context())

	require.ErrorIs(t, err, errs.ErrRemoteOperation)
	assert.Len(t, e.Snapshot(), 1)
}

func TestEngine_Listen(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("FindAll", mock.Anything).Return([]*order.Order{}, nil).Times(3)
	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(repo)
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)
	e := newEngine(t, factory)

	feed := scriptedFeed{events: []ports.ChangeEvent{
		{Op: ports.ChangeInsert, OrderID: "a"},
		{Op: ports.ChangeUpdate},
		{Op: ports.ChangeDelete, OrderID: "a"},
	}}

	require.NoError(t, e.Listen(t.Context(), feed))
	repo.AssertNumberOfCalls(t, "FindAll", 3)
}
