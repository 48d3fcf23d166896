// Package lockrepo stores order locks, one row per locked order.
package lockrepo

import (
	"time"

	"commerce/internal/core/domain/model/orderlock"
)

type OrderLockDTO struct {
	OrderNumber string    `gorm:"primaryKey;size:64"`
	OwnerID     string    `gorm:"size:255;not null"`
	CreatedAt   time.Time `gorm:"index;not null"`
}

func (OrderLockDTO) TableName() string {
	return "order_locks"
}

func fromDomain(lock *orderlock.OrderLock) OrderLockDTO {
	return OrderLockDTO{
		OrderNumber: lock.OrderNumber(),
		OwnerID:     lock.OwnerID(),
		CreatedAt:   lock.CreatedAt(),
	}
}

func toDomain(dto OrderLockDTO) (*orderlock.OrderLock, error) {
	return orderlock.NewOrderLock(dto.OrderNumber, dto.OwnerID, dto.CreatedAt)
}
