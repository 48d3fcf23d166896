package ports

import (
	"context"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/kernel"
)

// ProductSkuRepository resolves the weak references order lines hold to product skus.
type ProductSkuRepository interface {
	Add(ctx context.Context, sku *catalog.ProductSku) error

	// Update persists the running pre/back-ordered quantity.
	Update(ctx context.Context, sku *catalog.ProductSku) error

	Get(ctx context.Context, guid kernel.UUID) (*catalog.ProductSku, error)

	// GetByGUIDs returns the skus found; missing GUIDs are simply absent from the map.
	GetByGUIDs(ctx context.Context, guids []kernel.UUID) (map[kernel.UUID]*catalog.ProductSku, error)
}

// InventoryRepository is the warehouse stock store. It also answers the availability
// questions allocation rules ask.
type InventoryRepository interface {
	catalog.InventoryManagement

	GetStock(ctx context.Context, skuCode string, warehouseID int64) (*inventory.Stock, error)
	SaveStock(ctx context.Context, stock *inventory.Stock) error
}
