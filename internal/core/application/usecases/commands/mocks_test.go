package commands_test

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderSync struct{ mock.Mock }

func (m *MockOrderSync) Refresh(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderSync) Snapshot() []*order.Order {
	args := m.Called()
	orders, _ := args.Get(0).([]*order.Order)
	return orders
}

func (m *MockOrderSync) Lookup(id kernel.UUID) (*order.Order, bool) {
	args := m.Called(id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1)
}

func (m *MockOrderSync) Selected(operator string) (*order.Order, bool) {
	args := m.Called(operator)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1)
}

func (m *MockOrderSync) Open(ctx context.Context, id kernel.UUID, operator string) (*order.Order, error) {
	args := m.Called(ctx, id, operator)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderSync) Create(ctx context.Context, draft order.Draft) (*order.Order, error) {
	args := m.Called(ctx, draft)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderSync) Mutate(ctx context.Context, id kernel.UUID, mutation ports.Mutation) (*order.Order, error) {
	args := m.Called(ctx, id, mutation)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderSync) Delete(ctx context.Context, id kernel.UUID, operator string) error {
	args := m.Called(ctx, id, operator)
	return args.Error(0)
}

// applyMutation runs the mutation the handler passed on target, the way the engine
// would on its private copy.
func applyMutation(t *testing.T, target *order.Order) func(mock.Arguments) {
	return func(args mock.Arguments) {
		mutation, ok := args.Get(2).(ports.Mutation)
		require.True(t, ok)
		require.NoError(t, mutation(target))
	}
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) (ports.Handoff, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(ports.Handoff), args.Error(1)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func newOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.State{
		ID:           kernel.NewUUID(),
		OrderNumber:  "5542",
		CustomerName: "Bazar Firmat",
		Locality:     "Firmat",
		Status:       status,
		Source:       order.SourceManual,
		CreatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Version:      1,
	})
	require.NoError(t, err)
	return o
}
