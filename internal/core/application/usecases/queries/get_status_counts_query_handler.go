package queries

import (
	"context"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetStatusCountsQueryHandler reads the orders table with a single aggregate query.
type GetStatusCountsQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusCountsQueryHandler creates the handler that counts orders straight in the
// database.
func NewGetStatusCountsQueryHandler(db *gorm.DB) GetStatusCountsQueryHandler {
	return GetStatusCountsQueryHandler{db: db}
}

// Handle returns the counts in pipeline order. Rows with a status this service does
// not know are left out.
func (h GetStatusCountsQueryHandler) Handle(ctx context.Context, query GetStatusCountsQuery) ([]StatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			UPPER(status),
			COUNT(*)
		FROM orders
		GROUP BY UPPER(status)
	`).Rows()
	if err != nil {
		return nil, errs.NewRemoteOperationError("count orders", err)
	}
	defer rows.Close()

	counted := make(map[order.Status]int64)
	for rows.Next() {
		var (
			raw   string
			count int64
		)
		if err = rows.Scan(&raw, &count); err != nil {
			return nil, errs.NewRemoteOperationError("count orders", err)
		}

		status, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			continue
		}
		counted[status] += count
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewRemoteOperationError("count orders", err)
	}

	counts := make([]StatusCount, 0, len(order.Statuses()))
	for _, status := range order.Statuses() {
		counts = append(counts, StatusCount{Status: status, Count: counted[status]})
	}
	return counts, nil
}
