package jobs

import (
	"fmt"
)

// Job is a background task with an explicit lifecycle.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all background jobs in the application.
// Provides a unified interface to start and stop all of them.
type JobManager struct {
	jobs []Job
}

// NewJobManager creates a job manager. Nil jobs are skipped, so optional jobs
// (such as the change feed when none is configured) can be passed as is.
func NewJobManager(resync *ResyncJob, feed *ChangeFeedJob) *JobManager {
	jm := &JobManager{}
	if resync != nil {
		jm.jobs = append(jm.jobs, resync)
	}
	if feed != nil {
		jm.jobs = append(jm.jobs, feed)
	}
	return jm
}

// NewJobManagerWith manages arbitrary jobs, started in the given order.
func NewJobManagerWith(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts all jobs in order.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %T: %w", job, err)
		}
	}
	return nil
}

// StopAll stops all jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
