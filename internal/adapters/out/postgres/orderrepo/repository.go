package orderrepo

import (
	"context"
	"errors"
	"time"

	"commerce/internal/adapters/out/postgres/sqlerr"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with everything it holds and marks it persisted at version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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
		return sqlerr.TranslateError(err, aggregate.Number())
	}

	aggregate.MarkPersisted(dto.UID, now, dto.Version)
	r.tracker.TrackAggregate(aggregate.Number(), aggregate)
	return nil
}

// Update writes the order row under an optimistic version check, then upserts shipments,
// lines, payments and events. Children are never removed from an order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsPersisted() {
		return errs.NewOrderNotPersistedError(aggregate.Number())
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
		return r.missingOrStale(ctx, aggregate)
	}

	if len(dto.Shipments) > 0 {
		if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto.Shipments).Error; err != nil {
			return err
		}
	}
	if len(dto.Payments) > 0 {
		if err := db.Save(&dto.Payments).Error; err != nil {
			return err
		}
	}
	if len(dto.Events) > 0 {
		if err := db.Save(&dto.Events).Error; err != nil {
			return err
		}
	}

	aggregate.MarkPersisted(dto.UID, now, dto.Version)
	r.tracker.TrackAggregate(aggregate.Number(), aggregate)
	return nil
}

// Get retrieves an order by its number.
func (r *GormOrderRepository) Get(ctx context.Context, guid kernel.UUID) (*order.Order, error) {
	if err := guid.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Scopes(withChildren).First(&dto, "guid = ?", guid.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", guid.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAwaitingInventory retrieves in-progress orders with at least one shipment still waiting
// for stock, keyset-paged by uid.
func (r *GormOrderRepository) GetAwaitingInventory(
	ctx context.Context,
	afterUID int64,
	limit int,
) ([]*order.Order, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	db := r.db.WithContext(ctx)
	awaiting := db.Model(&ShipmentDTO{}).
		Select("order_uid").
		Where("status = ?", int(order.AwaitingInventory))

	var dtos []OrderDTO
	if err := db.Scopes(withChildren).
		Where("status = ? AND uid > ? AND uid IN (?)", int(order.InProgress), afterUID, awaiting).
		Order("uid").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("uid = ?", aggregate.UID()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.Number())
	}
	return errs.NewVersionIsInvalidError("order " + aggregate.Number())
}

func withChildren(db *gorm.DB) *gorm.DB {
	byPosition := func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }
	return db.
		Preload("Shipments", byPosition).
		Preload("Shipments.Skus", byPosition).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at") }).
		Preload("Events", byPosition)
}
