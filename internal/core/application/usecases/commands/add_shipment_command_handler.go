package commands

import (
	"context"
)

type AddShipmentCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

func NewAddShipmentCommandHandler(uowFactory FulfillmentUoWFactory) AddShipmentCommandHandler {
	return AddShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.OrderNotPersistedError if the order has no storage identity and a
// ValueIsInvalidError if the order is already completed, cancelled or failed.
func (h *AddShipmentCommandHandler) Handle(ctx context.Context, cmd AddShipmentCommand) error {
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

	if err = addShipment(ctx, uow.ProductSkuRepository(), o, cmd.Shipment()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
