package queries_test

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

// MockOrderSync only implements the read side used by queries.
type MockOrderSync struct {
	mock.Mock
	ports.OrderSync
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

type MockExtractor struct{ mock.Mock }

func (m *MockExtractor) ExtractFromText(ctx context.Context, text string) (ports.Extraction, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(ports.Extraction), args.Error(1)
}

func (m *MockExtractor) ExtractFromMedia(ctx context.Context, base64Data, mimeType string) (ports.Extraction, error) {
	args := m.Called(ctx, base64Data, mimeType)
	return args.Get(0).(ports.Extraction), args.Error(1)
}

func newOrder(t *testing.T, number, customer string, status order.Status, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.State{
		ID:           kernel.NewUUID(),
		OrderNumber:  number,
		CustomerName: customer,
		Locality:     "Firmat",
		Status:       status,
		Source:       order.SourceManual,
		CreatedAt:    createdAt,
		Version:      1,
	})
	require.NoError(t, err)
	return o
}
