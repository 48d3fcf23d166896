package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules holds the cron expressions (with seconds) and the lock age limit for the jobs.
type Schedules struct {
	BackOrderAllocation string
	LockReaper          string
	LockMaxAge          time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	backOrderAllocationJob *BackOrderAllocationJob
	orderLockReaperJob     *OrderLockReaperJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	finder AwaitingInventoryFinder,
	allocateHandler InventoryAllocationHandler,
	reapHandler LockReapHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		backOrderAllocationJob: NewBackOrderAllocationJob(finder, allocateHandler,
			schedules.BackOrderAllocation, logger),
		orderLockReaperJob: NewOrderLockReaperJob(reapHandler, schedules.LockMaxAge,
			schedules.LockReaper, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.backOrderAllocationJob.Start(); err != nil {
		return fmt.Errorf("failed to start back-order allocation job: %w", err)
	}

	if err := jm.orderLockReaperJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.backOrderAllocationJob.Stop()
		return fmt.Errorf("failed to start order lock reaper job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.orderLockReaperJob.Stop()
	jm.backOrderAllocationJob.Stop()
}
