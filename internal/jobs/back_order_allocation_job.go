package jobs

import (
	"context"
	"log/slog"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

const backOrderBatchSize = 100

// AwaitingInventoryFinder lists orders with shipments still waiting for stock.
type AwaitingInventoryFinder interface {
	GetAwaitingInventory(ctx context.Context, afterUID int64, limit int) ([]*order.Order, error)
}

// InventoryAllocationHandler allocates inventory to one order.
type InventoryAllocationHandler interface {
	Handle(ctx context.Context, cmd commands.AllocateInventoryCommand) (services.Allocation, error)
}

// BackOrderAllocationJob retries allocation for orders whose shipments await inventory, so
// back-ordered lines pick up stock once it arrives.
type BackOrderAllocationJob struct {
	finder   AwaitingInventoryFinder
	handler  InventoryAllocationHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBackOrderAllocationJob(
	finder AwaitingInventoryFinder,
	handler InventoryAllocationHandler,
	schedule string,
	logger *slog.Logger,
) *BackOrderAllocationJob {
	return &BackOrderAllocationJob{
		finder:   finder,
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "back_order_allocation_job"),
	}
}

// Start schedules the job on its cron expression.
func (j *BackOrderAllocationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Back-order allocation job started", "schedule", j.schedule)
	return nil
}

// RunOnce walks every order awaiting inventory in uid-ordered pages and returns the number of
// lines newly allocated. A failing order is logged and skipped.
func (j *BackOrderAllocationJob) RunOnce(ctx context.Context) int {
	var (
		afterUID  int64
		orders    int
		allocated int
	)
	for {
		page, err := j.finder.GetAwaitingInventory(ctx, afterUID, backOrderBatchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Loading orders awaiting inventory failed",
				"after_uid", afterUID, "error", err)
			break
		}

		for _, o := range page {
			allocated += j.allocate(ctx, o)
		}
		orders += len(page)

		if len(page) < backOrderBatchSize || ctx.Err() != nil {
			break
		}
		afterUID = page[len(page)-1].UID()
	}

	if orders > 0 {
		j.logger.InfoContext(ctx, "Back-order allocation pass finished",
			"orders", orders, "allocated_lines", allocated)
	}
	return allocated
}

func (j *BackOrderAllocationJob) allocate(ctx context.Context, o *order.Order) int {
	cmd, err := commands.NewAllocateInventoryCommand(o.GUID())
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid order awaiting inventory", "order", o.Number(), "error", err)
		return 0
	}

	allocation, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.WarnContext(ctx, "Back-order allocation failed", "order", o.Number(), "error", err)
		return 0
	}
	return allocation.AllocatedLines
}

func (j *BackOrderAllocationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Back-order allocation job stopped")
}
