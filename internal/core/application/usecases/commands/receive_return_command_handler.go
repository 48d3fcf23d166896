package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/orderreturn"
	"commerce/internal/core/ports"
)

// ReceiveReturnCommandHandler records returned stock. Received units go back on hand in the
// warehouse of the order's store.
type ReceiveReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	stores     ports.StoreLookup
	notifier   notifier
}

func NewReceiveReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	stores ports.StoreLookup,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReceiveReturnCommandHandler {
	return ReceiveReturnCommandHandler{
		uowFactory: uowFactory,
		stores:     stores,
		notifier:   newNotifier(publisher, logger),
	}
}

func (h *ReceiveReturnCommandHandler) Handle(ctx context.Context, cmd ReceiveReturnCommand) error {
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

	returnRepo := uow.ReturnRepository()
	r, err := returnRepo.Get(ctx, cmd.RMACode())
	if err != nil {
		return err
	}

	cmds := make([]inventory.Command, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		var sku *orderreturn.ReturnSku
		if sku, err = r.Sku(line.ReturnSkuGUID); err != nil {
			return err
		}
		if err = r.ReceiveQuantity(line.ReturnSkuGUID, line.Quantity, cmd.ReceivedBy()); err != nil {
			return err
		}
		cmds = append(cmds, inventory.Command{
			Type:     inventory.StockReceived,
			SkuCode:  sku.SkuCode(),
			Quantity: line.Quantity,
		})
	}

	orderNumber, err := kernel.UUIDFromString(r.OrderNumber())
	if err != nil {
		return err
	}
	o, err := uow.OrderRepository().Get(ctx, orderNumber)
	if err != nil {
		return err
	}

	if err = applyOrderStock(ctx, h.stores, uow.InventoryRepository(), o, cmds); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventReturnReceived, o, r.RMACode(), r.Status().String())
	return nil
}
