package ports

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/orderlock"
)

// OrderLockRepository stores at most one lock per order.
type OrderLockRepository interface {
	// AddIfAbsent inserts the lock unless the order is already locked. It reports false,
	// without error, when another lock won.
	AddIfAbsent(ctx context.Context, lock *orderlock.OrderLock) (bool, error)

	// Get returns errs.ObjectNotFoundError when the order is not locked.
	Get(ctx context.Context, orderNumber string) (*orderlock.OrderLock, error)

	// Remove deletes the lock of an order; removing a missing lock is not an error.
	Remove(ctx context.Context, orderNumber string) error

	// RemoveCreatedBefore deletes every lock created before cutoff and returns how many.
	RemoveCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
