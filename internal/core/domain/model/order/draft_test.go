package order_test

import (
	"errors"
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	t.Run("applies creation defaults", func(t *testing.T) {
		d, err := order.NewDraft(order.DraftParams{
			OrderNumber:    "5542",
			CustomerNumber: "1450",
			CustomerName:   "Bazar Firmat",
			Locality:       "",
			Operator:       "lucía",
		})

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "5542", d.OrderNumber())
		assert.Equal(t, "1450", d.CustomerNumber())
		assert.Equal(t, "Bazar Firmat", d.CustomerName())
		assert.Equal(t, order.DefaultLocality, d.Locality())
		assert.Equal(t, "LUCÍA", d.Reviewer())
		assert.Equal(t, order.SourceManual, d.Source())
	})

	t.Run("falls back to the system operator", func(t *testing.T) {
		d, err := order.NewDraft(order.DraftParams{OrderNumber: "1", CustomerName: "X", Source: order.SourceAI})

		require.NoError(t, err)
		assert.Equal(t, kernel.SystemOperator, d.Reviewer())
		assert.Equal(t, order.SourceAI, d.Source())
	})

	t.Run("requires order number and customer name", func(t *testing.T) {
		_, err := order.NewDraft(order.DraftParams{OrderNumber: " ", CustomerName: ""})

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValidation))
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "customerName")
	})

	t.Run("rejects an invalid source", func(t *testing.T) {
		_, err := order.NewDraft(order.DraftParams{OrderNumber: "1", CustomerName: "X", Source: order.Source(9)})

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestDraft_Materialize(t *testing.T) {
	d, err := order.NewDraft(order.DraftParams{OrderNumber: "5542", CustomerName: "Bazar Firmat", Operator: "Lucía"})
	require.NoError(t, err)
	id := kernel.NewUUID()
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("builds a pending order", func(t *testing.T) {
		o, err := d.Materialize(id, createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, "LUCÍA", o.Reviewers().String())
		assert.Equal(t, 1, o.Version())
		assert.False(t, o.HasChanges())
	})

	t.Run("requires identity", func(t *testing.T) {
		_, err := d.Materialize(kernel.UUID{}, createdAt)
		require.Error(t, err)

		_, err = d.Materialize(id, time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero draft is rejected", func(t *testing.T) {
		_, err := order.Draft{}.Materialize(id, createdAt)

		require.ErrorIs(t, err, order.ErrDraftIsNotConstructed)
	})
}
