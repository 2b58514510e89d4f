package http_test

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

type MockExtractor struct{ mock.Mock }

func (m *MockExtractor) ExtractFromText(ctx context.Context, text string) (ports.Extraction, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(ports.Extraction), args.Error(1)
}

func (m *MockExtractor) ExtractFromMedia(ctx context.Context, base64Data, mimeType string) (ports.Extraction, error) {
	args := m.Called(ctx, base64Data, mimeType)
	return args.Get(0).(ports.Extraction), args.Error(1)
}

func applyMutation(t *testing.T, target *order.Order) func(mock.Arguments) {
	return func(args mock.Arguments) {
		mutation, ok := args.Get(2).(ports.Mutation)
		require.True(t, ok)
		require.NoError(t, mutation(target))
	}
}

func newOrder(t *testing.T, status order.Status, dispatch string) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.State{
		ID:           kernel.NewUUID(),
		OrderNumber:  "5542, 5543",
		CustomerName: "Bazar Firmat",
		Locality:     "Firmat",
		Status:       status,
		Dispatch:     order.DecodeDispatch(dispatch),
		Reviewer:     "ANA",
		Source:       order.SourceManual,
		CreatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Version:      3,
	})
	require.NoError(t, err)
	return o
}
