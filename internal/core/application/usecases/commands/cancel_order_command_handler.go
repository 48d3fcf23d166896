package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders. Every line of a shipment cancelled with the order
// deallocates the quantity it took from warehouse stock and gives its pre/back-ordered quantity
// back to the product sku.
type CancelOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	stores     ports.StoreLookup
	notifier   notifier
}

func NewCancelOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	stores ports.StoreLookup,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		stores:     stores,
		notifier:   newNotifier(publisher, logger),
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
		if shipment.IsCancellable() {
			lines = append(lines, shipment.Skus()...)
		}
	}

	if err = o.Cancel(); err != nil {
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

	h.notifier.notify(ctx, ports.EventOrderCancelled, o, "", o.Status().String())
	return nil
}

func releasePreOrBackOrders(ctx context.Context, repo ports.ProductSkuRepository, lines []*order.OrderSku) error {
	pending := make(map[kernel.UUID]int)
	var guids []kernel.UUID
	for _, line := range lines {
		if line.PreOrBackOrderQuantity() == 0 {
			continue
		}
		if _, seen := pending[line.SkuGUID()]; !seen {
			guids = append(guids, line.SkuGUID())
		}
		pending[line.SkuGUID()] += line.PreOrBackOrderQuantity()
	}
	if len(guids) == 0 {
		return nil
	}

	skus, err := repo.GetByGUIDs(ctx, guids)
	if err != nil {
		return err
	}
	for _, guid := range guids {
		sku, ok := skus[guid]
		if !ok {
			continue
		}
		sku.ReleasePreOrBackOrdered(pending[guid])
		if err = repo.Update(ctx, sku); err != nil {
			return err
		}
	}
	return nil
}
