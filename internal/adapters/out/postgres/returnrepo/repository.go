package returnrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"commerce/internal/core/domain/model/orderreturn"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{db: db, tracker: tracker}
}

// Add inserts a return with its lines at version 1.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *orderreturn.OrderReturn) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	dto := fromDomain(aggregate)
	if dto.CreatedAt.IsZero() {
		dto.CreatedAt = now
	}
	dto.LastModified = now
	dto.Version = 1

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.UID, now, dto.Version)
	r.tracker.TrackAggregate(aggregate.RMACode(), aggregate)
	return nil
}

// Update writes the return under an optimistic version check and replaces its lines.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *orderreturn.OrderReturn) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsPersisted() {
		return errs.NewObjectNotFoundError("return", aggregate.RMACode())
	}

	now := time.Now().UTC()
	dto := fromDomain(aggregate)
	dto.LastModified = now
	dto.Version = aggregate.Version() + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&dto).
		Where("version = ?", aggregate.Version()).
		Select("*").
		Omit("uid", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("return " + aggregate.RMACode())
	}

	stale := db.Where("return_uid = ?", dto.UID)
	if len(dto.Skus) > 0 {
		kept := make([]any, 0, len(dto.Skus))
		for _, s := range dto.Skus {
			kept = append(kept, s.GUID)
		}
		stale = stale.Where("guid NOT IN ?", kept)
	}
	if err := stale.Delete(&ReturnSkuDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Skus) > 0 {
		if err := db.Save(&dto.Skus).Error; err != nil {
			return err
		}
	}

	aggregate.MarkPersisted(dto.UID, now, dto.Version)
	r.tracker.TrackAggregate(aggregate.RMACode(), aggregate)
	return nil
}

// Get retrieves a return by RMA code.
func (r *GormReturnRepository) Get(ctx context.Context, rmaCode string) (*orderreturn.OrderReturn, error) {
	if strings.TrimSpace(rmaCode) == "" {
		return nil, errs.NewValueIsRequiredError("rma code")
	}

	var dto ReturnDTO
	if err := r.db.WithContext(ctx).Scopes(withSkus).First(&dto, "rma_code = ?", rmaCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", rmaCode)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOrder retrieves every return of an order in creation order.
func (r *GormReturnRepository) ListByOrder(ctx context.Context, orderNumber string) ([]*orderreturn.OrderReturn, error) {
	var dtos []ReturnDTO
	if err := r.db.WithContext(ctx).
		Scopes(withSkus).
		Where("order_number = ?", orderNumber).
		Order("uid").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	returns := make([]*orderreturn.OrderReturn, 0, len(dtos))
	for _, dto := range dtos {
		ret, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		returns = append(returns, ret)
	}
	return returns, nil
}

func withSkus(db *gorm.DB) *gorm.DB {
	return db.Preload("Skus", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") })
}
