package jobs

import (
	"context"
	"sync"
	"time"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/logger"
)

const (
	defaultMinRetry = time.Second
	defaultMaxRetry = time.Minute
)

// FeedListener consumes a change feed until ctx is cancelled. ordersync.Engine
// implements it.
type FeedListener interface {
	Listen(ctx context.Context, feed ports.ChangeFeed) error
}

// ChangeFeedJob keeps the snapshot listening to the change feed. When the feed fails
// it is restarted with exponential backoff.
type ChangeFeedJob struct {
	listener FeedListener
	feed     ports.ChangeFeed
	logger   *logger.Logger

	minRetry time.Duration
	maxRetry time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewChangeFeedJob creates the job. Nothing runs until Start.
//
// Parameters:
//   - listener: consumes the feed, normally the sync engine
//   - feed: the change feed to listen to
//   - log: optional, discards output when nil
func NewChangeFeedJob(listener FeedListener, feed ports.ChangeFeed, log *logger.Logger) *ChangeFeedJob {
	if log == nil {
		log = logger.Nop()
	}
	return &ChangeFeedJob{
		listener: listener,
		feed:     feed,
		logger:   log.Named("change_feed_job"),
		minRetry: defaultMinRetry,
		maxRetry: defaultMaxRetry,
	}
}

// WithRetry overrides the backoff bounds.
func (j *ChangeFeedJob) WithRetry(minRetry, maxRetry time.Duration) *ChangeFeedJob {
	j.minRetry, j.maxRetry = minRetry, maxRetry
	return j
}

// Start launches the listener in the background.
func (j *ChangeFeedJob) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run(ctx)
	}()

	j.logger.Info(ctx, "Change feed job started")
	return nil
}

func (j *ChangeFeedJob) run(ctx context.Context) {
	wait := j.minRetry
	for {
		err := j.listener.Listen(ctx, j.feed)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			j.logger.Error(ctx, "Change feed failed", err, "retry_in", wait)
		} else {
			j.logger.Warn(ctx, "Change feed stopped", "retry_in", wait)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		wait = min(wait*2, j.maxRetry)
	}
}

// Stop cancels the listener and waits for it to return.
func (j *ChangeFeedJob) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	j.wg.Wait()
	j.logger.Info(context.Background(), "Change feed job stopped")
}
