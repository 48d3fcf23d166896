package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/ports"
)

// HoldOrderCommandHandler puts created or in-progress orders on hold. Shipments of a held
// order report ONHOLD until the order is released.
type HoldOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

func NewHoldOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) HoldOrderCommandHandler {
	return HoldOrderCommandHandler{uowFactory: uowFactory, notifier: newNotifier(publisher, logger)}
}

func (h *HoldOrderCommandHandler) Handle(ctx context.Context, cmd HoldOrderCommand) error {
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

	if err = o.Hold(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventOrderHeld, o, "", o.Status().String())
	return nil
}
