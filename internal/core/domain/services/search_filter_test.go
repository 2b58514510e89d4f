package services_test

import (
	"slices"
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, number, customer, locality string, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.State{
		ID:             kernel.NewUUID(),
		OrderNumber:    number,
		CustomerNumber: "C-" + number,
		CustomerName:   customer,
		Locality:       locality,
		Status:         status,
		Source:         order.SourceManual,
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)
	return o
}

func numbers(seq []*order.Order) []string {
	out := make([]string, 0, len(seq))
	for _, o := range seq {
		out = append(out, o.OrderNumber())
	}
	return out
}

func TestParseView(t *testing.T) {
	for input, expected := range map[string]services.View{
		"":           services.ViewActive,
		"all":        services.ViewActive,
		"PENDING":    services.ViewPending,
		"completed":  services.ViewCompleted,
		"Dispatched": services.ViewDispatched,
		"history":    services.ViewArchived,
		"archived":   services.ViewArchived,
	} {
		view, err := services.ParseView(input)

		require.NoError(t, err)
		assert.Equal(t, expected, view, input)
	}

	_, err := services.ParseView("late")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestSearchFilter_Filter(t *testing.T) {
	orders := []*order.Order{
		newOrder(t, "5542", "Bazar Firmat", "Firmat", order.Pending),
		newOrder(t, "5543", "Ferretería Sur", "Rosario", order.Completed),
		newOrder(t, "5544", "Kiosco Norte", "GENERAL", order.Dispatched),
		newOrder(t, "5545", "Bazar Centro", "Casilda", order.Archived),
		newOrder(t, "5546", "Almacén Firmat", "Firmat", order.Pending),
	}
	filter := services.NewSearchFilter()

	t.Run("active view excludes archived", func(t *testing.T) {
		got := slices.Collect(filter.Filter(orders, services.ViewActive, ""))

		assert.Equal(t, []string{"5542", "5543", "5544", "5546"}, numbers(got))
	})

	t.Run("lifecycle views", func(t *testing.T) {
		assert.Equal(t, []string{"5542", "5546"}, numbers(slices.Collect(filter.Filter(orders, services.ViewPending, ""))))
		assert.Equal(t, []string{"5545"}, numbers(slices.Collect(filter.Filter(orders, services.ViewArchived, ""))))
	})

	t.Run("term matches any field ignoring case", func(t *testing.T) {
		assert.Equal(t, []string{"5542", "5546"}, numbers(slices.Collect(filter.Filter(orders, services.ViewActive, "FIRMAT"))))
		assert.Equal(t, []string{"5543"}, numbers(slices.Collect(filter.Filter(orders, services.ViewActive, "rosario"))))
		assert.Equal(t, []string{"5544"}, numbers(slices.Collect(filter.Filter(orders, services.ViewActive, "c-5544"))))
		assert.Equal(t, []string{"5543"}, numbers(slices.Collect(filter.Filter(orders, services.ViewActive, "FERRETERÍA"))))
	})

	t.Run("view and term are combined", func(t *testing.T) {
		got := slices.Collect(filter.Filter(orders, services.ViewCompleted, "bazar"))

		assert.Empty(t, got)
	})

	t.Run("sequence is restartable and deterministic", func(t *testing.T) {
		seq := filter.Filter(orders, services.ViewActive, "a")

		first := slices.Collect(seq)
		second := slices.Collect(seq)

		assert.Equal(t, numbers(first), numbers(second))
		assert.Equal(t, numbers(first), numbers(slices.Collect(filter.Filter(orders, services.ViewActive, "a"))))
	})

	t.Run("early stop", func(t *testing.T) {
		count := 0
		for range filter.Filter(orders, services.ViewActive, "") {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})
}
