package orderlock

import (
	"errors"
	"strings"
	"time"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var ErrLockIsNotConstructed = errors.New("OrderLock must be created via NewOrderLock constructor")

// OrderLock keeps other editors away from an order while one user edits it. At most one lock
// exists per order; the storage layer enforces that with a conditional insert.
type OrderLock struct {
	orderNumber string
	ownerID     string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

func NewOrderLock(orderNumber, ownerID string, createdAt time.Time) (*OrderLock, error) {
	lock := &OrderLock{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		lock.setOrderNumber(orderNumber),
		lock.setOwnerID(ownerID),
		lock.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	return lock, nil
}

func (l *OrderLock) Validate() error {
	if l == nil {
		return ErrLockIsNotConstructed
	}
	return l.guard.Validate(ErrLockIsNotConstructed)
}

func (l *OrderLock) OrderNumber() string  { return l.orderNumber }
func (l *OrderLock) OwnerID() string      { return l.ownerID }
func (l *OrderLock) CreatedAt() time.Time { return l.createdAt }

// IsSameLock compares creation timestamps; a lock re-obtained by the same user is a different lock.
func (l *OrderLock) IsSameLock(other *OrderLock) bool {
	return other != nil && l.orderNumber == other.orderNumber && l.createdAt.Equal(other.createdAt)
}

// CheckUnlocker returns an InvalidUnlockerError unless userID owns the lock.
func (l *OrderLock) CheckUnlocker(userID string) error {
	if userID != l.ownerID {
		return errs.NewInvalidUnlockerError(l.orderNumber, l.ownerID, userID)
	}
	return nil
}

// IsOlderThan reports whether the lock was created more than maxAge before now.
func (l *OrderLock) IsOlderThan(maxAge time.Duration, now time.Time) bool {
	return now.Sub(l.createdAt) > maxAge
}

func (l *OrderLock) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	l.orderNumber = orderNumber
	return nil
}

func (l *OrderLock) setOwnerID(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return errs.NewValueIsRequiredError("lock owner")
	}
	l.ownerID = ownerID
	return nil
}

func (l *OrderLock) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("lock creation time")
	}
	// kept at the precision the lock store has
	l.createdAt = createdAt.UTC().Truncate(time.Microsecond)
	return nil
}
