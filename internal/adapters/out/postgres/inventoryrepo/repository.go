package inventoryrepo

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/inventory"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements InventoryRepository using GORM. A sku without a stock
// row in a warehouse has no stock there.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// GetStock locks the stock row for update; a missing row yields empty stock.
func (r *GormInventoryRepository) GetStock(ctx context.Context, skuCode string, warehouseID int64) (*inventory.Stock, error) {
	var dto StockDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "sku_code = ? AND warehouse_id = ?", skuCode, warehouseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.NewStock(skuCode, warehouseID, 0, 0, 0)
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

// SaveStock upserts the stock row.
func (r *GormInventoryRepository) SaveStock(ctx context.Context, stock *inventory.Stock) error {
	if err := stock.Validate(); err != nil {
		return err
	}
	dto := fromDomain(stock)
	return r.db.WithContext(ctx).Save(&dto).Error
}

func (r *GormInventoryRepository) AvailableInStockQty(
	ctx context.Context,
	sku *catalog.ProductSku,
	warehouseID int64,
) (int, error) {
	var dto StockDTO
	err := r.db.WithContext(ctx).First(&dto, "sku_code = ? AND warehouse_id = ?", sku.SkuCode(), warehouseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	stock, err := toDomain(dto)
	if err != nil {
		return 0, err
	}
	return stock.AvailableQuantityInStock(), nil
}

func (r *GormInventoryRepository) HasSufficientInventory(
	ctx context.Context,
	sku *catalog.ProductSku,
	warehouseID int64,
	quantity int,
) (bool, error) {
	available, err := r.AvailableInStockQty(ctx, sku, warehouseID)
	if err != nil {
		return false, err
	}
	return available >= quantity, nil
}

// PreOrBackOrderDetails reads the limit and running quantity kept on the sku itself.
func (r *GormInventoryRepository) PreOrBackOrderDetails(
	_ context.Context,
	sku *catalog.ProductSku,
) (catalog.PreOrBackOrderDetails, error) {
	return sku.PreOrBackOrderDetails(), nil
}

func (r *GormInventoryRepository) Capabilities() catalog.Capabilities {
	return catalog.NewCapabilities(catalog.PreOrBackOrderLimit)
}
