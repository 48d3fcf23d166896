package catalog

import "context"

// Capability is a feature an inventory backend may advertise.
type Capability string

const PreOrBackOrderLimit Capability = "PRE_OR_BACK_ORDER_LIMIT"

// Capabilities is the set advertised by an InventoryManagement implementation.
type Capabilities struct {
	supported map[Capability]struct{}
}

func NewCapabilities(capabilities ...Capability) Capabilities {
	supported := make(map[Capability]struct{}, len(capabilities))
	for _, c := range capabilities {
		supported[c] = struct{}{}
	}
	return Capabilities{supported: supported}
}

func (c Capabilities) Supports(capability Capability) bool {
	_, ok := c.supported[capability]
	return ok
}

// PreOrBackOrderDetails is the configured limit and the quantity already pre/back-ordered for a sku.
// A negative Limit means unbounded.
type PreOrBackOrderDetails struct {
	SkuCode  string
	Limit    int
	Quantity int
}

// InventoryManagement is the product inventory backend consulted by allocation rules.
type InventoryManagement interface {
	AvailableInStockQty(ctx context.Context, sku *ProductSku, warehouseID int64) (int, error)
	HasSufficientInventory(ctx context.Context, sku *ProductSku, warehouseID int64, quantity int) (bool, error)
	PreOrBackOrderDetails(ctx context.Context, sku *ProductSku) (PreOrBackOrderDetails, error)
	Capabilities() Capabilities
}
