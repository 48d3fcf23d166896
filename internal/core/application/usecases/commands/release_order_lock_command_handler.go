package commands

import (
	"context"
	"errors"

	"commerce/internal/pkg/errs"
)

type ReleaseOrderLockCommandHandler struct {
	uowFactory OrderLockUoWFactory
}

func NewReleaseOrderLockCommandHandler(uowFactory OrderLockUoWFactory) ReleaseOrderLockCommandHandler {
	return ReleaseOrderLockCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.InvalidUnlockerError when a user other than the owner releases the lock.
// Releasing an unlocked order is a no-op.
func (h *ReleaseOrderLockCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderLockCommand) error {
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

	lockRepo := uow.OrderLockRepository()
	orderNumber := cmd.OrderNumber().String()

	if !cmd.IsForced() {
		lock, err := lockRepo.Get(ctx, orderNumber)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err = lock.CheckUnlocker(cmd.UserID()); err != nil {
			return err
		}
	}

	if err := lockRepo.Remove(ctx, orderNumber); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
