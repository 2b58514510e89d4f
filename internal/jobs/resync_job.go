package jobs

import (
	"context"
	"errors"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// DefaultResyncSchedule reloads the orders every five minutes.
const DefaultResyncSchedule = "0 */5 * * * *"

// ResyncJob periodically reloads all orders from the store. It covers change
// notifications that were lost while the feed was down.
type ResyncJob struct {
	handler  commands.RefreshOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *logger.Logger
}

// NewResyncJob creates the job. The schedule is a six-field cron expression (seconds
// first) or a descriptor such as "@every 1m"; blank means DefaultResyncSchedule.
func NewResyncJob(handler commands.RefreshOrdersCommandHandler, schedule string, log *logger.Logger) *ResyncJob {
	if schedule == "" {
		schedule = DefaultResyncSchedule
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ResyncJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   log.Named("resync_job"),
	}
}

// Start schedules the job.
func (j *ResyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		orders, err := j.handler.Handle(ctx, commands.NewRefreshOrdersCommand())
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				j.logger.Error(ctx, "Resync failed", err)
			}
			return
		}
		j.logger.Debug(ctx, "Resync finished", "orders", len(orders))
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info(context.Background(), "Resync job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job and waits for a running resync to finish.
func (j *ResyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info(context.Background(), "Resync job stopped")
}
