package commands

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
)

// notifier publishes lifecycle events after a commit. Publishing is fire-and-forget: a failure
// is logged and never undoes the committed change.
type notifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func newNotifier(publisher ports.EventPublisher, logger *slog.Logger) notifier {
	return notifier{publisher: publisher, logger: logger}
}

func (n notifier) notify(ctx context.Context, eventType string, o *order.Order, reference, status string) {
	event := ports.LifecycleEvent{
		Type:        eventType,
		OrderNumber: o.Number(),
		Reference:   reference,
		Status:      status,
		StoreCode:   o.StoreCode(),
		OccurredAt:  time.Now().UTC(),
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.WarnContext(ctx, "lifecycle event not published",
			"type", eventType,
			"order", o.Number(),
			"reference", reference,
			"error", err,
		)
	}
}

// stockCommands turns the warehouse-stock part of each line into inventory commands for event.
func stockCommands(event inventory.AllocationEventType, lines []*order.OrderSku) ([]inventory.Command, error) {
	var cmds []inventory.Command
	for _, line := range lines {
		if line.StockQuantity() == 0 {
			continue
		}
		cmd, err := inventory.NewCommand(event, line.SkuCode(), line.StockQuantity())
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// applyStock applies inventory commands to the stock records of a warehouse.
func applyStock(
	ctx context.Context,
	repo ports.InventoryRepository,
	warehouseID int64,
	cmds []inventory.Command,
) error {
	for _, cmd := range cmds {
		stock, err := repo.GetStock(ctx, cmd.SkuCode, warehouseID)
		if err != nil {
			return err
		}
		if err = stock.Apply(cmd, false); err != nil {
			return err
		}
		if err = repo.SaveStock(ctx, stock); err != nil {
			return err
		}
	}
	return nil
}

// applyOrderStock applies inventory commands in the warehouse of the order's store.
func applyOrderStock(
	ctx context.Context,
	stores ports.StoreLookup,
	repo ports.InventoryRepository,
	o *order.Order,
	cmds []inventory.Command,
) error {
	if len(cmds) == 0 {
		return nil
	}
	st, err := stores.Lookup(ctx, o.StoreCode())
	if err != nil {
		return err
	}
	return applyStock(ctx, repo, st.WarehouseID(), cmds)
}
