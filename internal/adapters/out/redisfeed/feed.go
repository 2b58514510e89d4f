// Package redisfeed fans order change events out over Redis pub/sub, so that every
// instance of the service refreshes when any of them writes.
package redisfeed

import (
	"context"
	"encoding/json"
	"fmt"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "warehouse:orders:changed"

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("redisURL", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.NewRemoteOperationError("redis ping", err)
	}
	return client, nil
}

// Feed implements ports.ChangeFeed.
type Feed struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

// NewFeed creates a feed on channel, or DefaultChannel when blank. It subscribes on Listen.
func NewFeed(client *redis.Client, channel string, log *logger.Logger) *Feed {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Feed{client: client, channel: channel, log: log}
}

// Listen blocks until ctx is cancelled. The client re-subscribes by itself after a
// lost connection; every re-subscription is reported as a ChangeUnknown event because
// messages published in between are gone.
func (f *Feed) Listen(ctx context.Context, handle func(ctx context.Context, event ports.ChangeEvent)) error {
	sub := f.client.Subscribe(ctx, f.channel)
	defer func() {
		if err := sub.Close(); err != nil {
			f.log.Warn(ctx, "redis subscription close failed", "error", err)
		}
	}()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errs.NewRemoteOperationError("subscribe "+f.channel, err)
	}
	f.log.Info(ctx, "listening for order changes", "channel", f.channel)

	messages := sub.ChannelWithSubscriptions()
	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-messages:
			if !ok {
				return errs.NewRemoteOperationError("subscribe "+f.channel, fmt.Errorf("subscription closed"))
			}
			switch msg := raw.(type) {
			case *redis.Message:
				handle(ctx, decode(msg.Payload))
			case *redis.Subscription:
				f.log.Info(ctx, "redis subscription restored", "channel", msg.Channel)
				handle(ctx, ports.ChangeEvent{Op: ports.ChangeUnknown})
			}
		}
	}
}

func decode(payload string) ports.ChangeEvent {
	var event ports.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.Op == "" {
		return ports.ChangeEvent{Op: ports.ChangeUnknown}
	}
	return event
}

// Publisher implements ports.ChangePublisher.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher publishes to channel, or DefaultChannel when blank.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel}
}

// Publish sends all events in one round trip.
func (p *Publisher) Publish(ctx context.Context, events ...ports.ChangeEvent) error {
	if len(events) == 0 {
		return nil
	}

	_, err := p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			pipe.Publish(ctx, p.channel, payload)
		}
		return nil
	})
	if err != nil {
		return errs.NewRemoteOperationError("publish "+p.channel, err)
	}
	return nil
}
