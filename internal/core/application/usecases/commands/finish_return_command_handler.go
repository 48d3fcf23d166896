package commands

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/orderreturn"
)

// FinishReturnCommandHandler completes or cancels returns. Completing an exchange releases the
// replacement order; cancelling one cancels it.
type FinishReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
}

func NewFinishReturnCommandHandler(uowFactory ReturnUoWFactory) FinishReturnCommandHandler {
	return FinishReturnCommandHandler{uowFactory: uowFactory}
}

func (h *FinishReturnCommandHandler) Handle(ctx context.Context, cmd FinishReturnCommand) error {
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

	if cmd.IsCancel() {
		err = r.Cancel()
	} else {
		err = r.Complete()
	}
	if err != nil {
		return err
	}

	if r.Type() == orderreturn.Exchange && r.ExchangeOrderNumber() != "" {
		if err = h.finishExchangeOrder(ctx, uow, r.ExchangeOrderNumber(), cmd.IsCancel()); err != nil {
			return err
		}
	}

	if err = returnRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *FinishReturnCommandHandler) finishExchangeOrder(ctx context.Context, uow ReturnUoW, number string, cancel bool) error {
	guid, err := kernel.UUIDFromString(number)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, guid)
	if err != nil {
		return err
	}

	if cancel {
		err = o.Cancel()
	} else {
		err = o.Release()
	}
	if err != nil {
		return err
	}

	return orderRepo.Update(ctx, o)
}
