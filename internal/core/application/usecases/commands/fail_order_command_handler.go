package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
)

// FailOrderCommandHandler fails orders that can no longer be fulfilled. Open shipments become
// FAILED_ORDER and give their stock and pre/back-ordered quantities back the way a cancellation
// does.
type FailOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	stores     ports.StoreLookup
	notifier   notifier
}

func NewFailOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	stores ports.StoreLookup,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) FailOrderCommandHandler {
	return FailOrderCommandHandler{
		uowFactory: uowFactory,
		stores:     stores,
		notifier:   newNotifier(publisher, logger),
	}
}

func (h *FailOrderCommandHandler) Handle(ctx context.Context, cmd FailOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	var lines []*order.OrderSku
	for _, shipment := range o.Shipments() {
		if !shipment.StoredStatus().IsTerminal() {
			lines = append(lines, shipment.Skus()...)
		}
	}

	if err = o.Fail(); err != nil {
		return err
	}

	cmds, err := stockCommands(inventory.OrderCancellation, lines)
	if err != nil {
		return err
	}
	if err = applyOrderStock(ctx, h.stores, uow.InventoryRepository(), o, cmds); err != nil {
		return err
	}

	if err = releasePreOrBackOrders(ctx, uow.ProductSkuRepository(), lines); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventOrderFailed, o, "", o.Status().String())
	return nil
}
