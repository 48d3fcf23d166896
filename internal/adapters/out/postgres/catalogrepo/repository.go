package catalogrepo

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductSkuRepository implements ProductSkuRepository using GORM.
type GormProductSkuRepository struct {
	db *gorm.DB
}

func NewGormProductSkuRepository(db *gorm.DB) *GormProductSkuRepository {
	return &GormProductSkuRepository{db: db}
}

func (r *GormProductSkuRepository) Add(ctx context.Context, sku *catalog.ProductSku) error {
	if err := sku.Validate(); err != nil {
		return err
	}
	dto := fromDomain(sku)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the whole sku; the running pre/back-ordered quantity is the field that changes.
func (r *GormProductSkuRepository) Update(ctx context.Context, sku *catalog.ProductSku) error {
	if err := sku.Validate(); err != nil {
		return err
	}

	dto := fromDomain(sku)
	result := r.db.WithContext(ctx).Model(&dto).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product sku", sku.GUID().String())
	}
	return nil
}

func (r *GormProductSkuRepository) Get(ctx context.Context, guid kernel.UUID) (*catalog.ProductSku, error) {
	if err := guid.Validate(); err != nil {
		return nil, err
	}

	var dto ProductSkuDTO
	if err := r.db.WithContext(ctx).First(&dto, "guid = ?", guid.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product sku", guid.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormProductSkuRepository) GetByGUIDs(
	ctx context.Context,
	guids []kernel.UUID,
) (map[kernel.UUID]*catalog.ProductSku, error) {
	skus := make(map[kernel.UUID]*catalog.ProductSku, len(guids))
	if len(guids) == 0 {
		return skus, nil
	}

	ids := make([]uuid.UUID, 0, len(guids))
	for _, g := range guids {
		ids = append(ids, g.Bytes())
	}

	var dtos []ProductSkuDTO
	if err := r.db.WithContext(ctx).Where("guid IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		sku, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		skus[sku.GUID()] = sku
	}
	return skus, nil
}
