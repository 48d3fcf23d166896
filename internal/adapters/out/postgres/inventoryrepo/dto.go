// Package inventoryrepo keeps per-warehouse stock and answers the availability questions of
// the allocation rules.
package inventoryrepo

import (
	"commerce/internal/core/domain/model/inventory"
)

type StockDTO struct {
	SkuCode     string `gorm:"primaryKey;size:255"`
	WarehouseID int64  `gorm:"primaryKey;autoIncrement:false"`
	OnHand      int    `gorm:"not null"`
	Allocated   int    `gorm:"not null"`
	Reserved    int    `gorm:"not null"`
}

func (StockDTO) TableName() string {
	return "inventory_stock"
}

func fromDomain(s *inventory.Stock) StockDTO {
	return StockDTO{
		SkuCode:     s.SkuCode(),
		WarehouseID: s.WarehouseID(),
		OnHand:      s.QuantityOnHand(),
		Allocated:   s.AllocatedQuantity(),
		Reserved:    s.ReservedQuantity(),
	}
}

func toDomain(dto StockDTO) (*inventory.Stock, error) {
	return inventory.NewStock(dto.SkuCode, dto.WarehouseID, dto.OnHand, dto.Allocated, dto.Reserved)
}
