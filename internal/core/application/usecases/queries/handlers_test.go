package queries_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var day = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	snapshot := []*order.Order{
		newOrder(t, "3", "Bazar Firmat", order.Archived, day.Add(3*time.Hour)),
		newOrder(t, "2", "Ferretería Sur", order.Completed, day.Add(2*time.Hour)),
		newOrder(t, "1", "Bazar Norte", order.Pending, day.Add(time.Hour)),
	}
	orders := new(MockOrderSync)
	orders.On("Snapshot").Return(snapshot)
	h := queries.NewListOrdersQueryHandler(orders, services.NewSearchFilter())

	t.Run("active view hides archived orders", func(t *testing.T) {
		q, _ := queries.NewListOrdersQuery("", "")

		got, err := h.Handle(ctx, q)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2", got[0].OrderNumber())
		assert.Equal(t, "1", got[1].OrderNumber())
	})

	t.Run("term narrows the view", func(t *testing.T) {
		q, _ := queries.NewListOrdersQuery("all", "bazar")

		got, err := h.Handle(ctx, q)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Bazar Norte", got[0].CustomerName())
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		q, _ := queries.NewListOrdersQuery("dispatched", "")

		got, err := h.Handle(ctx, q)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	known := newOrder(t, "5542", "Bazar Firmat", order.Pending, day)
	unknown := kernel.NewUUID()

	orders := new(MockOrderSync)
	orders.On("Lookup", known.ID()).Return(known, true)
	orders.On("Lookup", unknown).Return(nil, false)
	h := queries.NewGetOrderQueryHandler(orders)

	q, _ := queries.NewGetOrderQuery(known.ID())
	got, err := h.Handle(ctx, q)
	require.NoError(t, err)
	assert.Same(t, known, got)

	q, _ = queries.NewGetOrderQuery(unknown)
	_, err = h.Handle(ctx, q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetSelectedOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	open := newOrder(t, "5542", "Bazar Firmat", order.Pending, day)

	orders := new(MockOrderSync)
	orders.On("Selected", "ana").Return(open, true)
	orders.On("Selected", "pedro").Return(nil, false)
	h := queries.NewGetSelectedOrderQueryHandler(orders)

	q, err := queries.NewGetSelectedOrderQuery("ana")
	require.NoError(t, err)
	got, err := h.Handle(ctx, q)
	require.NoError(t, err)
	assert.Same(t, open, got)

	q, err = queries.NewGetSelectedOrderQuery("pedro")
	require.NoError(t, err)
	_, err = h.Handle(ctx, q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = queries.NewGetSelectedOrderQuery("  ")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestPreviewNotificationQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	resolver := services.NewDispatchResolver(services.Roster{Salespeople: []string{"Laura"}})
	composer := services.NewNotificationComposer(time.UTC)
	target := newOrder(t, "5542", "Bazar Firmat", order.Completed, day)

	orders := new(MockOrderSync)
	orders.On("Lookup", target.ID()).Return(target, true)
	h := queries.NewPreviewNotificationQueryHandler(orders, resolver, composer).
		WithClock(func() time.Time { return day.Add(3 * time.Hour) })

	t.Run("stored state", func(t *testing.T) {
		q, _ := queries.NewPreviewNotificationQuery(target.ID(), "Lucía", "", "")

		msg, err := h.Handle(ctx, q)

		require.NoError(t, err)
		assert.Contains(t, msg, "*FIRMAT* - Preparado")
		assert.Contains(t, msg, "Despacho: -")
		assert.Contains(t, msg, "Informa: LUCÍA")
		assert.Contains(t, msg, "Fecha: 14/03/2026 12:00")
	})

	t.Run("unsaved dispatch selection", func(t *testing.T) {
		q, _ := queries.NewPreviewNotificationQuery(target.ID(), "Lucía", "salesperson", "laura")

		msg, err := h.Handle(ctx, q)

		require.NoError(t, err)
		assert.Contains(t, msg, "Despacho: Salesperson: Laura")
		assert.True(t, target.Dispatch().IsZero(), "preview never changes the order")
	})

	t.Run("selection off the roster", func(t *testing.T) {
		q, _ := queries.NewPreviewNotificationQuery(target.ID(), "Lucía", "salesperson", "Pablo")

		_, err := h.Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestGetDispatchOptionsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	h := queries.NewGetDispatchOptionsQueryHandler(services.NewDispatchResolver(services.Roster{
		TravelingAgents: []string{"Matías", "Rodrigo"},
	}))

	all, _ := queries.NewGetDispatchOptionsQuery("")
	got, err := h.Handle(ctx, all)
	require.NoError(t, err)
	require.Len(t, got, len(order.DispatchCategories()))
	assert.Equal(t, order.TravelingAgent, got[0].Category)
	assert.True(t, got[0].UsesRoster)
	assert.Equal(t, []string{"Matías", "Rodrigo"}, got[0].Options)

	one, _ := queries.NewGetDispatchOptionsQuery("carrier")
	got, err = h.Handle(ctx, one)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].UsesRoster)
	assert.NotNil(t, got[0].Options)
	assert.Empty(t, got[0].Options)
}

func TestExtractOrderDetailsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("text", func(t *testing.T) {
		extractor := new(MockExtractor)
		extractor.On("ExtractFromText", ctx, "pedido de Bazar Firmat").
			Return(ports.Extraction{CustomerName: " Bazar Firmat ", Locality: "Firmat"}, nil).Once()
		q, _ := queries.NewExtractOrderDetailsFromText("pedido de Bazar Firmat")

		got, err := queries.NewExtractOrderDetailsQueryHandler(extractor).Handle(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, ports.Extraction{CustomerName: "Bazar Firmat", Locality: "Firmat"}, got)
		extractor.AssertExpectations(t)
	})

	t.Run("media", func(t *testing.T) {
		extractor := new(MockExtractor)
		extractor.On("ExtractFromMedia", ctx, "aGVsbG8=", "image/png").
			Return(ports.Extraction{CustomerName: "Bazar Firmat", Locality: "Firmat"}, nil).Once()
		q, _ := queries.NewExtractOrderDetailsFromMedia("aGVsbG8=", "image/png")

		_, err := queries.NewExtractOrderDetailsQueryHandler(extractor).Handle(ctx, q)

		require.NoError(t, err)
		extractor.AssertExpectations(t)
	})

	failures := map[string]struct {
		result ports.Extraction
		err    error
	}{
		"missing locality":  {result: ports.Extraction{CustomerName: "Bazar Firmat"}},
		"missing name":      {result: ports.Extraction{Locality: "Firmat"}},
		"empty answer":      {},
		"collaborator down": {err: errors.New("connection refused")},
		"already classified": {
			err: errs.NewExtractionFailedError("null response"),
		},
	}
	for name, tc := range failures {
		t.Run(name, func(t *testing.T) {
			extractor := new(MockExtractor)
			extractor.On("ExtractFromText", ctx, "texto").Return(tc.result, tc.err).Once()
			q, _ := queries.NewExtractOrderDetailsFromText("texto")

			got, err := queries.NewExtractOrderDetailsQueryHandler(extractor).Handle(ctx, q)

			require.ErrorIs(t, err, errs.ErrExtractionFailed)
			assert.Equal(t, ports.Extraction{}, got)
		})
	}
}

func TestGetStatusCountsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderrepo.OrderDTO{}))

	for i, status := range []string{"PENDING", "PENDING", "completed", "ARCHIVED", "LOST"} {
		require.NoError(t, db.Create(&orderrepo.OrderDTO{
			ID:           uuid.New(),
			OrderNumber:  string(rune('1' + i)),
			CustomerName: "Bazar Firmat",
			Status:       status,
			CreatedAt:    day.Add(time.Duration(i) * time.Minute),
			Version:      1,
		}).Error)
	}

	got, err := queries.NewGetStatusCountsQueryHandler(db).Handle(ctx, queries.NewGetStatusCountsQuery())

	require.NoError(t, err)
	assert.Equal(t, []queries.StatusCount{
		{Status: order.Pending, Count: 2},
		{Status: order.Completed, Count: 1},
		{Status: order.Dispatched, Count: 0},
		{Status: order.Archived, Count: 1},
	}, got)
}
