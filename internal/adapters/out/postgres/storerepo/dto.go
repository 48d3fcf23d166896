// Package storerepo persists storefront configuration.
package storerepo

import (
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/store"
)

type StoreDTO struct {
	Code            string `gorm:"primaryKey;size:64"`
	Name            string `gorm:"size:255"`
	WarehouseID     int64  `gorm:"not null"`
	DefaultCurrency string `gorm:"size:3;not null"`
	DefaultLocale   string `gorm:"size:35;not null"`
}

func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(s *store.Store) StoreDTO {
	return StoreDTO{
		Code:            s.Code(),
		Name:            s.Name(),
		WarehouseID:     s.WarehouseID(),
		DefaultCurrency: s.DefaultCurrency().Code(),
		DefaultLocale:   s.DefaultLocale().String(),
	}
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	currency, err := kernel.ParseCurrency(dto.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	locale, err := kernel.ParseLocale(dto.DefaultLocale)
	if err != nil {
		return nil, err
	}
	return store.NewStore(dto.Code, dto.Name, dto.WarehouseID, currency, locale)
}
