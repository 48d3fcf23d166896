package services

import (
	"time"

	"commerce/internal/core/domain/model/orderlock"
)

// OrderLockValidator decides whether an editor may save an order.
type OrderLockValidator struct{}

func NewOrderLockValidator() OrderLockValidator {
	return OrderLockValidator{}
}

// CanObtain is false when the order changed after the editor read it.
func (v OrderLockValidator) CanObtain(orderLastModified, openEditorTimestamp time.Time) bool {
	return !orderLastModified.After(openEditorTimestamp)
}

// Validate checks the lock an editor presents against the persisted one, in this order:
//   - no presented lock: OrderIsLocked
//   - no persisted lock: OrderWasUnlocked
//   - persisted lock created at a different time: LockIsAlien
//   - order modified after the editor opened it: OrderWasModified
func (v OrderLockValidator) Validate(
	presented, persisted *orderlock.OrderLock,
	orderLastModified, openEditorTimestamp time.Time,
) orderlock.ValidationResult {
	switch {
	case presented == nil:
		return orderlock.OrderIsLocked
	case persisted == nil:
		return orderlock.OrderWasUnlocked
	case !persisted.IsSameLock(presented):
		return orderlock.LockIsAlien
	case !v.CanObtain(orderLastModified, openEditorTimestamp):
		return orderlock.OrderWasModified
	default:
		return orderlock.ValidatedSuccessfully
	}
}
