package ordersync_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, draft order.Draft) (*order.Order, error) {
	args := m.Called(ctx, draft)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUnitOfWork) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUnitOfWork) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

// memoryStore is a last-write-wins store shared by several engines.
type memoryStore struct {
	mu     sync.Mutex
	orders []*order.Order
	clock  time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clock: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)}
}

func (s *memoryStore) Create() ports.UnitOfWork { return memoryUoW{store: s} }

type memoryUoW struct{ store *memoryStore }

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) OrderRepository() ports.OrderRepository { return u.store }

func (s *memoryStore) FindAll(context.Context) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	slices.SortStableFunc(out, func(a, b *order.Order) int { return b.CreatedAt().Compare(a.CreatedAt()) })
	return out, nil
}

func (s *memoryStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID().IsEqual(id) {
			return o.Clone(), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (s *memoryStore) Add(_ context.Context, draft order.Draft) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock = s.clock.Add(time.Minute)
	o, err := draft.Materialize(kernel.NewUUID(), s.clock)
	if err != nil {
		return nil, err
	}
	s.orders = append(s.orders, o)
	return o.Clone(), nil
}

func (s *memoryStore) Update(_ context.Context, aggregate *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if !o.ID().IsEqual(aggregate.ID()) {
			continue
		}
		state := aggregate.State()
		state.Version = o.Version() + 1
		stored, err := order.RestoreOrder(state)
		if err != nil {
			return err
		}
		s.orders[i] = stored
		return nil
	}
	return errs.NewObjectNotFoundError("order", aggregate.ID().String())
}

func (s *memoryStore) Delete(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.orders, func(o *order.Order) bool { return o.ID().IsEqual(id) })
	if idx < 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	s.orders = slices.Delete(s.orders, idx, idx+1)
	return nil
}

// scriptedFeed replays events and then returns.
type scriptedFeed struct {
	events []ports.ChangeEvent
}

func (f scriptedFeed) Listen(ctx context.Context, handle func(context.Context, ports.ChangeEvent)) error {
	for _, event := range f.events {
		handle(ctx, event)
	}
	return nil
}
