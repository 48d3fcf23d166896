package jobs

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LockReapHandler force-releases stale order locks.
type LockReapHandler interface {
	Handle(ctx context.Context, cmd commands.ReapOrderLocksCommand) (int64, error)
}

// OrderLockReaperJob releases order locks abandoned by editors that never closed the order.
type OrderLockReaperJob struct {
	handler  LockReapHandler
	maxAge   time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOrderLockReaperJob(
	handler LockReapHandler,
	maxAge time.Duration,
	schedule string,
	logger *slog.Logger,
) *OrderLockReaperJob {
	return &OrderLockReaperJob{
		handler:  handler,
		maxAge:   maxAge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_lock_reaper_job"),
	}
}

func (j *OrderLockReaperJob) Start() error {
	if _, err := commands.NewReapOrderLocksCommand(j.maxAge); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order lock reaper job started",
		"schedule", j.schedule, "max_age", j.maxAge)
	return nil
}

// RunOnce releases every lock older than the max age and returns how many were released.
func (j *OrderLockReaperJob) RunOnce(ctx context.Context) int64 {
	cmd, err := commands.NewReapOrderLocksCommand(j.maxAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid lock max age", "error", err)
		return 0
	}

	released, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order lock reaping failed", "error", err)
		return 0
	}
	if released > 0 {
		j.logger.InfoContext(ctx, "Released stale order locks", "count", released)
	}
	return released
}

func (j *OrderLockReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order lock reaper job stopped")
}
