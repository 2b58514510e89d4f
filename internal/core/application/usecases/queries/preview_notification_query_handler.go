package queries

import (
	"context"
	"time"

	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// PreviewNotificationQueryHandler renders the status message without sending it.
type PreviewNotificationQueryHandler struct {
	orders   ports.OrderSync
	resolver services.DispatchResolver
	composer services.NotificationComposer
	now      func() time.Time
}

// NewPreviewNotificationQueryHandler creates the handler with the snapshot source and the
// message renderer.
func NewPreviewNotificationQueryHandler(
	orders ports.OrderSync,
	resolver services.DispatchResolver,
	composer services.NotificationComposer,
) PreviewNotificationQueryHandler {
	return PreviewNotificationQueryHandler{
		orders:   orders,
		resolver: resolver,
		composer: composer,
		now:      time.Now,
	}
}

// WithClock replaces the time source used to stamp messages.
func (h PreviewNotificationQueryHandler) WithClock(now func() time.Time) PreviewNotificationQueryHandler {
	h.now = now
	return h
}

// Handle returns the message text. An override that is not on the roster fails the
// same way assigning it would.
func (h PreviewNotificationQueryHandler) Handle(_ context.Context, query PreviewNotificationQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	o, ok := h.orders.Lookup(query.OrderID())
	if !ok {
		return "", errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	dispatch := h.resolver.Decode(o.Dispatch().Encode())
	if category, value, ok := query.DispatchOverride(); ok {
		var err error
		if dispatch, err = h.resolver.Resolve(category, value); err != nil {
			return "", err
		}
	}

	return h.composer.Compose(o, o.Packaging(), dispatch, query.Operator(), h.now()), nil
}
