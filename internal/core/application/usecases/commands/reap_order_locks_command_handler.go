package commands

import (
	"context"
	"time"
)

// ReapOrderLocksCommandHandler removes locks abandoned by editors that never released them.
type ReapOrderLocksCommandHandler struct {
	uowFactory OrderLockUoWFactory
	now        func() time.Time
}

func NewReapOrderLocksCommandHandler(uowFactory OrderLockUoWFactory) ReapOrderLocksCommandHandler {
	return ReapOrderLocksCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle returns the number of locks removed.
func (h *ReapOrderLocksCommandHandler) Handle(ctx context.Context, cmd ReapOrderLocksCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.OrderLockRepository().RemoveCreatedBefore(ctx, h.now().UTC().Add(-cmd.MaxAge()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
