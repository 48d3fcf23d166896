package commands

import (
	"context"
	"log/slog"
)

// RecalculateShipmentTaxesCommandHandler replaces the tax values of a shipment. Shipments that
// are released, shipped or cancelled keep the taxes they were charged with.
type RecalculateShipmentTaxesCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewRecalculateShipmentTaxesCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) RecalculateShipmentTaxesCommandHandler {
	return RecalculateShipmentTaxesCommandHandler{uowFactory: uowFactory, logger: logger}
}

func (h *RecalculateShipmentTaxesCommandHandler) Handle(
	ctx context.Context,
	cmd RecalculateShipmentTaxesCommand,
) error {
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

	if err = shipment.UpdateTaxValues(cmd.Result()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.DebugContext(ctx, "Shipment taxes recalculated",
		"order", o.Number(), "shipment", shipment.Number(), "status", shipment.Status().String())
	return nil
}
