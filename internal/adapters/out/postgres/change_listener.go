package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DefaultChangeChannel is the NOTIFY channel the orders trigger writes to.
const DefaultChangeChannel = "orders_changed"

const pingInterval = 90 * time.Second

// InstallChangeTrigger creates the trigger that NOTIFYs channel after every insert,
// update or delete on the orders table. It is idempotent.
func InstallChangeTrigger(ctx context.Context, db *gorm.DB, channel string) error {
	if channel == "" {
		channel = DefaultChangeChannel
	}

	statements := []string{
		fmt.Sprintf(`CREATE OR REPLACE FUNCTION notify_orders_changed() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(%s, json_build_object(
		'op', TG_OP,
		'order_id', CASE WHEN TG_OP = 'DELETE' THEN OLD.id ELSE NEW.id END
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`, pq.QuoteLiteral(channel)),
		`DROP TRIGGER IF EXISTS orders_changed ON orders`,
		`CREATE TRIGGER orders_changed AFTER INSERT OR UPDATE OR DELETE ON orders
	FOR EACH ROW EXECUTE FUNCTION notify_orders_changed()`,
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return errs.NewRemoteOperationError("install change trigger", err)
			}
		}
		return nil
	})
}

// ChangeListenerOptions configure a ChangeListener.
type ChangeListenerOptions struct {
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
	Logger               *logger.Logger
}

// ChangeListener is a ports.ChangeFeed over Postgres LISTEN/NOTIFY. It needs its own
// connection, so it takes a DSN rather than the shared pool.
type ChangeListener struct {
	dsn  string
	opts ChangeListenerOptions
}

// NewChangeListener fills unset options with their defaults. No connection is opened
// until Listen.
func NewChangeListener(dsn string, opts ChangeListenerOptions) *ChangeListener {
	if opts.Channel == "" {
		opts.Channel = DefaultChangeChannel
	}
	if opts.MinReconnectInterval <= 0 {
		opts.MinReconnectInterval = time.Second
	}
	if opts.MaxReconnectInterval < opts.MinReconnectInterval {
		opts.MaxReconnectInterval = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &ChangeListener{dsn: dsn, opts: opts}
}

// Listen blocks until ctx is cancelled. After a reconnect it delivers a ChangeUnknown
// event, since notifications sent while disconnected are lost.
func (l *ChangeListener) Listen(ctx context.Context, handle func(ctx context.Context, event ports.ChangeEvent)) error {
	log := l.opts.Logger
	listener := pq.NewListener(l.dsn, l.opts.MinReconnectInterval, l.opts.MaxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			switch ev {
			case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
				log.Warn(ctx, "change listener connection problem", "event", int(ev), "error", err)
			case pq.ListenerEventReconnected:
				log.Info(ctx, "change listener reconnected")
			}
		})
	defer func() {
		if err := listener.Close(); err != nil {
			log.Warn(ctx, "change listener close failed", "error", err)
		}
	}()

	if err := listener.Listen(l.opts.Channel); err != nil {
		return errs.NewRemoteOperationError("listen "+l.opts.Channel, err)
	}
	log.Info(ctx, "listening for order changes", "channel", l.opts.Channel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-listener.Notify:
			if !ok {
				return errs.NewRemoteOperationError("listen "+l.opts.Channel, errors.New("notification channel closed"))
			}
			if n == nil {
				handle(ctx, ports.ChangeEvent{Op: ports.ChangeUnknown})
				continue
			}
			handle(ctx, decodeChangeEvent(n.Extra))
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					log.Warn(ctx, "change listener ping failed", "error", err)
				}
			}()
		}
	}
}

func decodeChangeEvent(payload string) ports.ChangeEvent {
	var event ports.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.Op == "" {
		return ports.ChangeEvent{Op: ports.ChangeUnknown}
	}
	return event
}
