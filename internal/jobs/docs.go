// Package jobs runs the background work that keeps the order snapshot in step with
// the store.
//
// ResyncJob reloads every order on a cron schedule (github.com/robfig/cron/v3). It is
// the safety net for change notifications that never arrived. A tick that fires while
// the previous refresh is still running is skipped.
//
// ChangeFeedJob holds the subscription to the change feed open and hands each event
// to the sync engine. When the subscription drops it is reopened after an
// exponentially growing pause.
//
// Both are started and stopped together:
//
//	manager := jobs.NewJobManager(
//		jobs.NewResyncJob(refreshHandler, jobs.DefaultResyncSchedule, log),
//		jobs.NewChangeFeedJob(engine, feed, log),
//	)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// If one job fails to start, the ones already running are stopped again.
package jobs
