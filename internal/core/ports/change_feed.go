package ports

import (
	"context"
)

// ChangeOp is the kind of write that produced a change event.
type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
	// ChangeUnknown is used when the transport carries no payload.
	ChangeUnknown ChangeOp = "UNKNOWN"
)

// ChangeEvent says that something in the order collection changed.
// OrderID is informational and may be empty; consumers refresh the whole set.
type ChangeEvent struct {
	Op      ChangeOp `json:"op"`
	OrderID string   `json:"order_id,omitempty"`
}

// ChangeFeed delivers change notifications for the order collection, whoever made them.
type ChangeFeed interface {
	// Listen blocks and calls handle for every event until ctx is cancelled or the
	// feed fails for good. It returns nil on cancellation.
	Listen(ctx context.Context, handle func(ctx context.Context, event ChangeEvent)) error
}

// ChangePublisher announces committed writes to other processes.
type ChangePublisher interface {
	Publish(ctx context.Context, events ...ChangeEvent) error
}
