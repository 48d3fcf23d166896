package queries

import (
	"context"
	"database/sql"

	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/core/domain/services"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
)

type ValidateOrderLockQueryHandler struct {
	db        *gorm.DB
	validator services.OrderLockValidator
}

func NewValidateOrderLockQueryHandler(db *gorm.DB, validator services.OrderLockValidator) ValidateOrderLockQueryHandler {
	return ValidateOrderLockQueryHandler{db: db, validator: validator}
}

// Handle reads the order's last modification and its current lock in one statement and runs
// the lock validation rules against them.
func (h ValidateOrderLockQueryHandler) Handle(
	ctx context.Context,
	query ValidateOrderLockQuery,
) (ValidateOrderLockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateOrderLockQueryResponse{}, err
	}

	number := query.orderNumber.String()

	var (
		lastModified  sql.NullTime
		lockOwner     sql.NullString
		lockCreatedAt sql.NullTime
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.last_modified,
			l.owner_id,
			l.created_at
		FROM orders o
		LEFT JOIN order_locks l ON l.order_number = ?
		WHERE o.guid = ?
	`, number, query.orderNumber.Bytes()).Row()
	if err := row.Scan(&lastModified, &lockOwner, &lockCreatedAt); err != nil {
		if isNoRows(err) {
			return ValidateOrderLockQueryResponse{}, errs.NewObjectNotFoundError("order", number)
		}
		return ValidateOrderLockQueryResponse{}, err
	}

	var presented, persisted *orderlock.OrderLock
	if !query.lockCreatedAt.IsZero() {
		lock, err := orderlock.NewOrderLock(number, query.ownerID, query.lockCreatedAt)
		if err != nil {
			return ValidateOrderLockQueryResponse{}, err
		}
		presented = lock
	}
	if lockOwner.Valid && lockCreatedAt.Valid {
		lock, err := orderlock.NewOrderLock(number, lockOwner.String, lockCreatedAt.Time)
		if err != nil {
			return ValidateOrderLockQueryResponse{}, err
		}
		persisted = lock
	}

	result := h.validator.Validate(presented, persisted, lastModified.Time, query.openedEditorTime)
	return ValidateOrderLockQueryResponse{Result: result.String(), Success: result.IsSuccess()}, nil
}
