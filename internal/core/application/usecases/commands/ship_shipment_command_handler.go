package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/ports"
)

// ShipShipmentCommandHandler ships released shipments. Stock taken by the shipment lines leaves
// the warehouse, and the order status is re-derived from its shipments.
type ShipShipmentCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	stores     ports.StoreLookup
	notifier   notifier
}

func NewShipShipmentCommandHandler(
	uowFactory FulfillmentUoWFactory,
	stores ports.StoreLookup,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ShipShipmentCommandHandler {
	return ShipShipmentCommandHandler{
		uowFactory: uowFactory,
		stores:     stores,
		notifier:   newNotifier(publisher, logger),
	}
}

func (h *ShipShipmentCommandHandler) Handle(ctx context.Context, cmd ShipShipmentCommand) error {
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

	shipment, err := o.Shipment(cmd.ShipmentNumber())
	if err != nil {
		return err
	}

	if err = shipment.Ship(cmd.TrackingCode()); err != nil {
		return err
	}

	cmds, err := stockCommands(inventory.ShipmentCompleted, shipment.Skus())
	if err != nil {
		return err
	}
	if err = applyOrderStock(ctx, h.stores, uow.InventoryRepository(), o, cmds); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventShipmentShipped, o, shipment.Number(), shipment.Status().String())
	return nil
}
