package postgres

import (
	"commerce/internal/adapters/out/postgres/catalogrepo"
	"commerce/internal/adapters/out/postgres/inventoryrepo"
	"commerce/internal/adapters/out/postgres/lockrepo"
	"commerce/internal/adapters/out/postgres/orderrepo"
	"commerce/internal/adapters/out/postgres/returnrepo"
	"commerce/internal/adapters/out/postgres/storerepo"

	"gorm.io/gorm"
)

// Models lists every table the module owns.
func Models() []any {
	models := []any{
		&storerepo.StoreDTO{},
		&catalogrepo.ProductSkuDTO{},
		&inventoryrepo.StockDTO{},
		&lockrepo.OrderLockDTO{},
	}
	models = append(models, orderrepo.Models()...)
	return append(models, returnrepo.Models()...)
}

// AutoMigrate creates or alters the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
