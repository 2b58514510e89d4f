package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// NotifyOrderResult is what the operator gets back: the message that was sent and the
// link that opens the handoff.
type NotifyOrderResult struct {
	Message string
	Link    string
}

// NotifyOrderCommandHandler composes the status message of an order and hands it to
// the notifier. When a publisher is configured the message is queued as well.
// Nothing about the order is written.
type NotifyOrderCommandHandler struct {
	orders    ports.OrderSync
	resolver  services.DispatchResolver
	composer  services.NotificationComposer
	notifier  ports.Notifier
	publisher ports.NotificationPublisher
	now       func() time.Time
}

// NewNotifyOrderCommandHandler builds the handler; publisher may be nil.
func NewNotifyOrderCommandHandler(
	orders ports.OrderSync,
	resolver services.DispatchResolver,
	composer services.NotificationComposer,
	notifier ports.Notifier,
	publisher ports.NotificationPublisher,
) NotifyOrderCommandHandler {
	return NotifyOrderCommandHandler{
		orders:    orders,
		resolver:  resolver,
		composer:  composer,
		notifier:  notifier,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithClock replaces the time source used to stamp messages.
func (h NotifyOrderCommandHandler) WithClock(now func() time.Time) NotifyOrderCommandHandler {
	h.now = now
	return h
}

// Handle renders the status message and hands it to the notifier.
//
// Returns:
//   - NotifyOrderResult: the message and the link it was sent with
//   - error: ErrOrderNotFound or a failure from the notifier
func (h NotifyOrderCommandHandler) Handle(ctx context.Context, cmd NotifyOrderCommand) (NotifyOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return NotifyOrderResult{}, err
	}

	o, ok := h.orders.Lookup(cmd.OrderID())
	if !ok {
		return NotifyOrderResult{}, errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	dispatch := h.resolver.Decode(o.Dispatch().Encode())
	notification := ports.Notification{
		OrderID: o.ID().String(),
		Message: h.composer.Compose(o, o.Packaging(), dispatch, cmd.Operator(), h.now()),
		Phone:   cmd.Phone(),
	}

	handoff, err := h.notifier.Notify(ctx, notification)
	if err != nil {
		return NotifyOrderResult{}, err
	}

	if h.publisher != nil {
		if err = h.publisher.Publish(ctx, notification); err != nil {
			return NotifyOrderResult{}, err
		}
	}

	return NotifyOrderResult{Message: notification.Message, Link: handoff.Link}, nil
}
