package lockrepo

import (
	"context"
	"errors"
	"time"

	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderLockRepository implements OrderLockRepository using GORM.
type GormOrderLockRepository struct {
	db *gorm.DB
}

func NewGormOrderLockRepository(db *gorm.DB) *GormOrderLockRepository {
	return &GormOrderLockRepository{db: db}
}

// AddIfAbsent inserts with ON CONFLICT DO NOTHING; no inserted row means the order was
// already locked.
func (r *GormOrderLockRepository) AddIfAbsent(ctx context.Context, lock *orderlock.OrderLock) (bool, error) {
	if err := lock.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(lock)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormOrderLockRepository) Get(ctx context.Context, orderNumber string) (*orderlock.OrderLock, error) {
	var dto OrderLockDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order lock", orderNumber)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderLockRepository) Remove(ctx context.Context, orderNumber string) error {
	return r.db.WithContext(ctx).Where("order_number = ?", orderNumber).Delete(&OrderLockDTO{}).Error
}

func (r *GormOrderLockRepository) RemoveCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&OrderLockDTO{})
	return result.RowsAffected, result.Error
}
