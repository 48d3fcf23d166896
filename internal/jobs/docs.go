// Package jobs provides scheduled background tasks for order management.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field in their expressions.
//
// # Available Jobs
//
// 1. BackOrderAllocationJob - re-runs inventory allocation for orders whose shipments are
// still awaiting inventory, so back-ordered and pre-ordered lines pick up new stock
// 2. OrderLockReaperJob - force-releases order locks older than the configured max age
//
// # Usage
//
//	jobManager := jobs.NewJobManager(orderRepository, allocateHandler, reapHandler, jobs.Schedules{
//		BackOrderAllocation: "0 */5 * * * *",
//		LockReaper:          "0 * * * * *",
//		LockMaxAge:          2 * time.Hour,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failing order is logged and skipped; the rest of the batch is still allocated
// - Reaper failures are logged and retried on the next tick
// - Failed job starts stop any already running jobs
package jobs
