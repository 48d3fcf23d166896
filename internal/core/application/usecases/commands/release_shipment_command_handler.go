package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/ports"
)

type ReleaseShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

func NewReleaseShipmentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReleaseShipmentCommandHandler {
	return ReleaseShipmentCommandHandler{uowFactory: uowFactory, notifier: newNotifier(publisher, logger)}
}

func (h *ReleaseShipmentCommandHandler) Handle(ctx context.Context, cmd ReleaseShipmentCommand) error {
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

	if err = shipment.Release(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventShipmentReleased, o, shipment.Number(), shipment.Status().String())
	return nil
}
