package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/services"
	"commerce/internal/core/ports"
)

// AllocateInventoryCommandHandler allocates warehouse stock and pre/back-order quantity to an
// order. Lines that cannot be allocated in full stay pending for the next pass.
//
// Example:
//
//	cmd, _ := NewAllocateInventoryCommand(orderNumber)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("allocated %d lines, %d pending", result.AllocatedLines, result.PendingLines)
type AllocateInventoryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	stores     ports.StoreLookup
	allocator  services.InventoryAllocator
	logger     *slog.Logger
}

func NewAllocateInventoryCommandHandler(
	uowFactory FulfillmentUoWFactory,
	stores ports.StoreLookup,
	allocator services.InventoryAllocator,
	logger *slog.Logger,
) AllocateInventoryCommandHandler {
	return AllocateInventoryCommandHandler{
		uowFactory: uowFactory,
		stores:     stores,
		allocator:  allocator,
		logger:     logger,
	}
}

func (h *AllocateInventoryCommandHandler) Handle(
	ctx context.Context,
	cmd AllocateInventoryCommand,
) (services.Allocation, error) {
	if err := cmd.Validate(); err != nil {
		return services.Allocation{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Allocation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderNumber())
	if err != nil {
		return services.Allocation{}, err
	}

	st, err := h.stores.Lookup(ctx, o.StoreCode())
	if err != nil {
		return services.Allocation{}, err
	}

	var guids []kernel.UUID
	for _, shipment := range o.Shipments() {
		for _, line := range shipment.Skus() {
			guids = append(guids, line.SkuGUID())
		}
	}

	skuRepo := uow.ProductSkuRepository()
	skus, err := skuRepo.GetByGUIDs(ctx, guids)
	if err != nil {
		return services.Allocation{}, err
	}

	inventoryRepo := uow.InventoryRepository()
	result, err := h.allocator.Allocate(ctx, inventoryRepo, o, skus, st.WarehouseID())
	if err != nil {
		return services.Allocation{}, err
	}

	if err = applyStock(ctx, inventoryRepo, st.WarehouseID(), result.Commands); err != nil {
		return services.Allocation{}, err
	}

	for _, sku := range result.PreOrBackOrdered {
		if err = skuRepo.Update(ctx, sku); err != nil {
			return services.Allocation{}, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return services.Allocation{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Allocation{}, err
	}

	h.logger.DebugContext(ctx, "inventory allocated",
		"order", o.Number(),
		"allocated", result.AllocatedLines,
		"pending", result.PendingLines,
	)
	return result, nil
}
