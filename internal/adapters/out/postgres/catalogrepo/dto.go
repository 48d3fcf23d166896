// Package catalogrepo persists product skus, the targets of the weak references order lines hold.
package catalogrepo

import (
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductSkuDTO struct {
	GUID                     uuid.UUID     `gorm:"type:uuid;primaryKey"`
	SkuCode                  string        `gorm:"size:255;uniqueIndex;not null"`
	ProductCode              string        `gorm:"size:255;index;not null"`
	AvailabilityCriteria     int           `gorm:"not null"`
	Shippable                bool          `gorm:"not null"`
	Dimensions               DimensionsDTO `gorm:"embedded;embeddedPrefix:dimension_"`
	PreOrBackOrderLimit      int           `gorm:"not null"`
	PreOrBackOrderedQuantity int           `gorm:"not null"`
}

func (ProductSkuDTO) TableName() string {
	return "product_skus"
}

type DimensionsDTO struct {
	Weight decimal.Decimal `gorm:"type:numeric(12,4)"`
	Height decimal.Decimal `gorm:"type:numeric(12,4)"`
	Width  decimal.Decimal `gorm:"type:numeric(12,4)"`
	Length decimal.Decimal `gorm:"type:numeric(12,4)"`
}

func fromDomain(sku *catalog.ProductSku) ProductSkuDTO {
	d := sku.Dimensions()
	return ProductSkuDTO{
		GUID:                     sku.GUID().Bytes(),
		SkuCode:                  sku.SkuCode(),
		ProductCode:              sku.ProductCode(),
		AvailabilityCriteria:     int(sku.AvailabilityCriteria()),
		Shippable:                sku.IsShippable(),
		Dimensions:               DimensionsDTO(d),
		PreOrBackOrderLimit:      sku.PreOrBackOrderLimit(),
		PreOrBackOrderedQuantity: sku.PreOrBackOrderedQuantity(),
	}
}

func toDomain(dto ProductSkuDTO) (*catalog.ProductSku, error) {
	guid, err := kernel.UUIDFromBytes(dto.GUID[:])
	if err != nil {
		return nil, err
	}
	return catalog.RestoreProductSku(
		guid,
		dto.SkuCode,
		dto.ProductCode,
		catalog.AvailabilityCriteria(dto.AvailabilityCriteria),
		dto.Shippable,
		catalog.Dimensions(dto.Dimensions),
		dto.PreOrBackOrderLimit,
		dto.PreOrBackOrderedQuantity,
	)
}
