package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
)

// ReleaseOrderCommandHandler releases held, created or exchange-awaiting orders. The released
// order takes the status its shipments imply, and every shipment with its inventory assigned is
// released for fulfilment.
type ReleaseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

func NewReleaseOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{uowFactory: uowFactory, notifier: newNotifier(publisher, logger)}
}

func (h *ReleaseOrderCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderCommand) error {
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

	if err = o.Release(); err != nil {
		return err
	}

	var released []*order.Shipment
	for _, shipment := range o.Shipments() {
		if shipment.StoredStatus() != order.InventoryAssigned {
			continue
		}
		if err = shipment.Release(); err != nil {
			return err
		}
		released = append(released, shipment)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventOrderReleased, o, "", o.Status().String())
	for _, shipment := range released {
		h.notifier.notify(ctx, ports.EventShipmentReleased, o, shipment.Number(), shipment.Status().String())
	}
	return nil
}
