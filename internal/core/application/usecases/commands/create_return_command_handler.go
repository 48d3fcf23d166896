package commands

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/orderreturn"
	"commerce/internal/core/ports"
)

// CreateReturnCommandHandler opens returns and exchanges.
//
// The requested quantities are checked against what earlier, non-cancelled returns of the same
// shipment already took back. Tax is refunded in proportion to what the shipment was charged.
type CreateReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   notifier
}

func NewCreateReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateReturnCommandHandler {
	return CreateReturnCommandHandler{uowFactory: uowFactory, notifier: newNotifier(publisher, logger)}
}

func (h *CreateReturnCommandHandler) Handle(ctx context.Context, cmd CreateReturnCommand) error {
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

	r, err := orderreturn.NewOrderReturn(
		cmd.RMACode(), cmd.Type(), o, cmd.ShipmentNumber(), cmd.PhysicalReturn(), cmd.CreatedBy(),
	)
	if err != nil {
		return err
	}
	if err = h.fill(r, o, cmd); err != nil {
		return err
	}

	shipment, err := o.Shipment(cmd.ShipmentNumber())
	if err != nil {
		return err
	}

	returnRepo := uow.ReturnRepository()
	others, err := returnRepo.ListByOrder(ctx, o.Number())
	if err != nil {
		return err
	}
	if err = r.UpdateReturnableQuantity(shipment, others); err != nil {
		return err
	}
	if err = r.Recalculate(r.ProportionalTax(shipment)); err != nil {
		return err
	}

	if number := cmd.ExchangeOrderNumber(); number != nil {
		var exchangeOrder *order.Order
		if exchangeOrder, err = orderRepo.Get(ctx, *number); err != nil {
			return err
		}
		if err = r.SetExchangeOrder(exchangeOrder.Number(), exchangeOrder.Total()); err != nil {
			return err
		}
		if err = exchangeOrder.AwaitExchangeCompletion(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, exchangeOrder); err != nil {
			return err
		}
	}

	if err = returnRepo.Add(ctx, r); err != nil {
		return err
	}

	if err = o.AttachReturn(r.RMACode()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.EventReturnCreated, o, r.RMACode(), r.Status().String())
	return nil
}

func (h *CreateReturnCommandHandler) fill(r *orderreturn.OrderReturn, o *order.Order, cmd CreateReturnCommand) error {
	for _, line := range cmd.Lines() {
		if err := r.SetReturnQuantity(line.OrderSkuGUID, line.Quantity, line.Reason); err != nil {
			return err
		}
	}
	r.Normalize()

	cur := o.Currency()
	adjustments := cmd.Adjustments()
	if err := r.SetShippingCost(cur.Amount(adjustments.ShippingCost)); err != nil {
		return err
	}
	if err := r.SetShipmentDiscount(cur.Amount(adjustments.ShipmentDiscount)); err != nil {
		return err
	}
	return r.SetLessRestockAmount(cur.Amount(adjustments.LessRestockAmount))
}
