package ports

import (
	"context"
)

// Notification is a composed status message and where it should go.
// An empty Phone means the generic support line.
type Notification struct {
	OrderID string
	Message string
	Phone   string
}

// Handoff describes how the message leaves the system. The core never learns whether
// it was delivered.
type Handoff struct {
	Link string
}

// Notifier opens the external handoff for a notification, e.g. a messaging deep link.
type Notifier interface {
	Notify(ctx context.Context, n Notification) (Handoff, error)
}

// NotificationPublisher queues a notification for asynchronous delivery.
type NotificationPublisher interface {
	Publish(ctx context.Context, n Notification) error
}
