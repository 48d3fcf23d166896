package commands

import (
	"context"
	"fmt"
	"log/slog"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders.
//
// The order is inserted first so that it has a storage identity, then its shipments and lines
// are added and the aggregate is written again in the same transaction.
type CreateOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	stores     ports.StoreLookup
	notifier   notifier
}

func NewCreateOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	stores ports.StoreLookup,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		stores:     stores,
		notifier:   newNotifier(publisher, logger),
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	st, err := h.stores.Lookup(ctx, cmd.StoreCode())
	if err != nil {
		return err
	}

	currency := st.DefaultCurrency()
	if cmd.Currency() != "" {
		if currency, err = kernel.ParseCurrency(cmd.Currency()); err != nil {
			return err
		}
	}
	locale := st.DefaultLocale()
	if cmd.Locale() != "" {
		if locale, err = kernel.ParseLocale(cmd.Locale()); err != nil {
			return err
		}
	}

	o, err := order.NewOrder(cmd.OrderNumber(), st.Code(), currency, locale, cmd.CustomerRef())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	for _, request := range cmd.Shipments() {
		if err = addShipment(ctx, uow.ProductSkuRepository(), o, request); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventOrderPlaced, o, "", o.Status().String())
	return nil
}

// addShipment adds one shipment with its lines to a persisted order.
func addShipment(
	ctx context.Context,
	skuRepo ports.ProductSkuRepository,
	o *order.Order,
	request ShipmentRequest,
) error {
	guids := make([]kernel.UUID, 0, len(request.Lines))
	for _, line := range request.Lines {
		guids = append(guids, line.SkuGUID)
	}
	productSkus, err := skuRepo.GetByGUIDs(ctx, guids)
	if err != nil {
		return err
	}

	shipment, err := o.AddShipment(kernel.NewUUID(), request.Kind)
	if err != nil {
		return err
	}

	for _, line := range request.Lines {
		productSku, ok := productSkus[line.SkuGUID]
		if !ok {
			return errs.NewObjectNotFoundError("product sku", line.SkuGUID.String())
		}
		if err = checkKind(productSku, request.Kind); err != nil {
			return err
		}

		var sku *order.OrderSku
		sku, err = order.NewOrderSku(
			kernel.NewUUID(),
			productSku.GUID(),
			productSku.SkuCode(),
			line.Quantity,
			o.Currency().Amount(line.UnitPrice),
		)
		if err != nil {
			return err
		}
		if err = shipment.AddSku(sku); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(sku *catalog.ProductSku, kind order.Kind) error {
	if kind == order.Physical && !sku.IsShippable() {
		return errs.NewServiceError(fmt.Sprintf("sku %s is not shippable", sku.SkuCode()))
	}
	return nil
}
