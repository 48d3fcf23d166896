package commands

import (
	"context"
	"errors"
	"time"

	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/core/domain/services"
)

// ErrOrderLockNotObtained means the order is locked by someone else or changed after the
// editor read it.
var ErrOrderLockNotObtained = errors.New("order lock not obtained")

// ObtainOrderLockCommandHandler locks orders for editing.
//
// Collisions are detected by the conditional insert of the lock repository, not by catching a
// unique violation.
type ObtainOrderLockCommandHandler struct {
	uowFactory OrderLockUoWFactory
	validator  services.OrderLockValidator
}

func NewObtainOrderLockCommandHandler(
	uowFactory OrderLockUoWFactory,
	validator services.OrderLockValidator,
) ObtainOrderLockCommandHandler {
	return ObtainOrderLockCommandHandler{uowFactory: uowFactory, validator: validator}
}

func (h *ObtainOrderLockCommandHandler) Handle(
	ctx context.Context,
	cmd ObtainOrderLockCommand,
) (*orderlock.OrderLock, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	if !h.validator.CanObtain(o.LastModified(), cmd.OpenEditorTimestamp()) {
		return nil, ErrOrderLockNotObtained
	}

	lock, err := orderlock.NewOrderLock(o.Number(), cmd.UserID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	added, err := uow.OrderLockRepository().AddIfAbsent(ctx, lock)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrOrderLockNotObtained
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return lock, nil
}
