package queries

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/guard"
)

// ErrPreviewNotificationQueryIsNotConstructed is returned by Validate for a
// PreviewNotificationQuery built without its constructor.
var ErrPreviewNotificationQueryIsNotConstructed = errors.New(
	"PreviewNotificationQuery must be created via NewPreviewNotificationQuery constructor",
)

// PreviewNotificationQuery renders the status message of an order without sending it.
// A dispatch selection that has not been saved yet can be previewed by passing it.
type PreviewNotificationQuery struct {
	orderID  kernel.UUID
	operator string
	category order.DispatchCategory
	value    string

	guard guard.ConstructorGuard
}

// NewPreviewNotificationQuery rejects an empty order id. A dispatch category, when
// given, overrides the stored assignment for the preview only.
//
// Parameters:
//   - orderID: the order to render
//   - operator: who would send the message
//   - dispatchCategory: unsaved category, blank to use the stored one
//   - dispatchValue: unsaved carrier, seller or customer name
func NewPreviewNotificationQuery(
	orderID kernel.UUID,
	operator, dispatchCategory, dispatchValue string,
) (PreviewNotificationQuery, error) {
	q := PreviewNotificationQuery{
		operator: operator,
		value:    strings.TrimSpace(dispatchValue),
		guard:    guard.NewConstructorGuard(),
	}

	var categoryErr error
	if strings.TrimSpace(dispatchCategory) != "" {
		q.category, categoryErr = order.ParseDispatchCategory(dispatchCategory)
	}

	if err := errors.Join(orderID.Validate(), categoryErr); err != nil {
		return PreviewNotificationQuery{}, err
	}

	q.orderID = orderID
	return q, nil
}

// Validate ensures the query was created through its constructor.
func (q PreviewNotificationQuery) Validate() error {
	return q.guard.Validate(ErrPreviewNotificationQueryIsNotConstructed)
}

// OrderID returns the order to render.
func (q PreviewNotificationQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Operator returns who would send the message.
func (q PreviewNotificationQuery) Operator() string {
	return q.operator
}

// DispatchOverride reports the unsaved dispatch selection, if one was given.
func (q PreviewNotificationQuery) DispatchOverride() (order.DispatchCategory, string, bool) {
	return q.category, q.value, q.category != order.NoCategory
}
