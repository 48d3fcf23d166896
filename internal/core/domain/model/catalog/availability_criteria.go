package catalog

import (
	"context"
	"fmt"

	"commerce/internal/pkg/errs"
)

// AvailabilityCriteria decides how much of a requested quantity can be allocated for a sku.
type AvailabilityCriteria int

const (
	UnknownAvailability AvailabilityCriteria = iota
	AlwaysAvailable
	AvailableWhenInStock
	AvailableForBackOrder
	AvailableForPreOrder
)

func getAvailabilityStrings() map[AvailabilityCriteria]string {
	return map[AvailabilityCriteria]string{
		UnknownAvailability:   "UNKNOWN",
		AlwaysAvailable:       "ALWAYS_AVAILABLE",
		AvailableWhenInStock:  "AVAILABLE_WHEN_IN_STOCK",
		AvailableForBackOrder: "AVAILABLE_FOR_BACK_ORDER",
		AvailableForPreOrder:  "AVAILABLE_FOR_PRE_ORDER",
	}
}

// ParseAvailabilityCriteria maps the persisted / exported name back to the enum.
func ParseAvailabilityCriteria(s string) (AvailabilityCriteria, error) {
	for c, name := range getAvailabilityStrings() {
		if c != UnknownAvailability && name == s {
			return c, nil
		}
	}
	return UnknownAvailability, errs.NewValueIsInvalidErrorWithCause(
		"availability criteria",
		fmt.Errorf("%q is not a known availability criteria", s),
	)
}

func (c AvailabilityCriteria) String() string {
	if s, ok := getAvailabilityStrings()[c]; ok {
		return s
	}
	return "UNKNOWN"
}

func (c AvailabilityCriteria) Validate() error {
	if c <= UnknownAvailability || c > AvailableForPreOrder {
		return errs.NewValueIsInvalidErrorWithCause(
			"availability criteria",
			fmt.Errorf("%d is not a valid availability criteria", c),
		)
	}
	return nil
}

// IsPreOrBackOrder reports whether allocation may run ahead of physical stock.
func (c AvailabilityCriteria) IsPreOrBackOrder() bool {
	return c == AvailableForBackOrder || c == AvailableForPreOrder
}

// HasSufficientUnallocatedQty reports whether quantity more units of sku can be allocated.
//
// Pre- and back-order skus are bounded by the pre/back-order limit only when the inventory
// backend advertises PreOrBackOrderLimit; a negative limit is unbounded.
func (c AvailabilityCriteria) HasSufficientUnallocatedQty(
	ctx context.Context,
	inventory InventoryManagement,
	sku *ProductSku,
	warehouseID int64,
	quantity int,
) (bool, error) {
	switch c {
	case AlwaysAvailable:
		return true, nil
	case AvailableWhenInStock:
		return inventory.HasSufficientInventory(ctx, sku, warehouseID, quantity)
	case AvailableForBackOrder, AvailableForPreOrder:
		if !inventory.Capabilities().Supports(PreOrBackOrderLimit) {
			return true, nil
		}
		details, err := inventory.PreOrBackOrderDetails(ctx, sku)
		if err != nil {
			return false, err
		}
		if details.Limit < 0 {
			return true, nil
		}
		return quantity <= details.Limit-details.Quantity, nil
	case UnknownAvailability:
	}
	return false, c.Validate()
}

// HandlePreOrBackOrderAllocation adds quantity to the sku's running pre/back-ordered quantity
// and returns it; other criteria allocate nothing here.
func (c AvailabilityCriteria) HandlePreOrBackOrderAllocation(sku *ProductSku, quantity int) int {
	if !c.IsPreOrBackOrder() {
		return 0
	}
	sku.addPreOrBackOrderedQuantity(quantity)
	return quantity
}

// HandlePreBackOrderStockAllocation returns how much of quantity is served from physical stock.
func (c AvailabilityCriteria) HandlePreBackOrderStockAllocation(
	ctx context.Context,
	inventory InventoryManagement,
	sku *ProductSku,
	warehouseID int64,
	quantity int,
) (int, error) {
	if !c.IsPreOrBackOrder() {
		return quantity, nil
	}
	inStock, err := inventory.AvailableInStockQty(ctx, sku, warehouseID)
	if err != nil {
		return 0, err
	}
	return min(quantity, max(inStock, 0)), nil
}
