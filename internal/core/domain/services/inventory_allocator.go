package services

import (
	"context"
	"fmt"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
)

// Allocation is the outcome of one allocation pass over an order.
//
// Commands must be applied to the warehouse stock; PreOrBackOrdered lists the product skus whose
// running pre/back-ordered quantity changed and must be saved.
type Allocation struct {
	Commands         []inventory.Command
	PreOrBackOrdered []*catalog.ProductSku
	AllocatedLines   int
	PendingLines     int
}

// InventoryAllocator allocates inventory to the open lines of an order.
//
// For every line that is not yet allocated, in a shipment still awaiting inventory:
//   - the availability criteria of the product sku decide whether the quantity can be allocated
//   - pre- and back-order skus take what is on hand from stock and pre/back-order the rest;
//     pre/back-ordered units stay unallocated until a later pass finds stock for them
//   - in-stock skus take everything from stock, or nothing
//   - always-available skus allocate without touching stock
//
// Stock taken by earlier lines of the same pass is not available to later ones. Setting the
// allocated quantity makes the shipment recompute its allocation status.
type InventoryAllocator struct{}

func NewInventoryAllocator() InventoryAllocator {
	return InventoryAllocator{}
}

// Allocate runs one allocation pass. skus maps product sku GUIDs to the product skus of the
// order lines; a missing entry is a ServiceError.
func (a InventoryAllocator) Allocate(
	ctx context.Context,
	inv catalog.InventoryManagement,
	o *order.Order,
	skus map[kernel.UUID]*catalog.ProductSku,
	warehouseID int64,
) (Allocation, error) {
	var result Allocation

	if err := o.Validate(); err != nil {
		return result, err
	}
	if o.Status().IsTerminal() || o.Status() == order.OnHold {
		return result, errs.NewServiceError(fmt.Sprintf("order %s is %s and cannot be allocated", o.Number(), o.Status()))
	}

	p := &allocationPass{
		inv:         newPassInventory(inv),
		warehouseID: warehouseID,
		result:      &result,
		touched:     make(map[kernel.UUID]*catalog.ProductSku),
	}
	for _, shipment := range o.Shipments() {
		if shipment.StoredStatus() != order.AwaitingInventory {
			continue
		}
		for _, line := range shipment.Skus() {
			if line.IsAllocated() {
				continue
			}

			productSku, ok := skus[line.SkuGUID()]
			if !ok {
				return result, errs.NewServiceError(fmt.Sprintf("product sku %s not found", line.SkuGUID()))
			}

			if err := p.allocateLine(ctx, shipment, line, productSku); err != nil {
				return result, err
			}
			if line.IsAllocated() {
				result.AllocatedLines++
			} else {
				result.PendingLines++
			}
		}
	}

	for _, sku := range p.touched {
		result.PreOrBackOrdered = append(result.PreOrBackOrdered, sku)
	}
	return result, nil
}

type allocationPass struct {
	inv         *passInventory
	warehouseID int64
	result      *Allocation
	touched     map[kernel.UUID]*catalog.ProductSku
}

func (p *allocationPass) allocateLine(
	ctx context.Context,
	shipment *order.Shipment,
	line *order.OrderSku,
	productSku *catalog.ProductSku,
) error {
	criteria := productSku.AvailabilityCriteria()
	if err := criteria.Validate(); err != nil {
		return err
	}

	outstanding := line.UnallocatedQuantity()
	preOrBackOrdered := line.PreOrBackOrderQuantity()

	switch criteria {
	case catalog.AlwaysAvailable:
		return shipment.AllocateSku(line.GUID(), line.Quantity(), line.StockQuantity(), 0)

	case catalog.AvailableWhenInStock:
		sufficient, err := criteria.HasSufficientUnallocatedQty(ctx, p.inv, productSku, p.warehouseID, outstanding)
		if err != nil || !sufficient {
			return err
		}
		if err = p.takeStock(productSku, outstanding); err != nil {
			return err
		}
		return shipment.AllocateSku(line.GUID(), line.Quantity(), line.StockQuantity()+outstanding, 0)

	case catalog.AvailableForBackOrder, catalog.AvailableForPreOrder:
		fromStock, err := criteria.HandlePreBackOrderStockAllocation(ctx, p.inv, productSku, p.warehouseID, outstanding)
		if err != nil {
			return err
		}
		stillPending := outstanding - fromStock
		delta := stillPending - preOrBackOrdered
		if fromStock == 0 && delta == 0 {
			return nil
		}
		if delta > 0 {
			sufficient, err := criteria.HasSufficientUnallocatedQty(ctx, p.inv, productSku, p.warehouseID, delta)
			if err != nil || !sufficient {
				return err
			}
		}
		if delta != 0 {
			criteria.HandlePreOrBackOrderAllocation(productSku, delta)
			p.touched[productSku.GUID()] = productSku
		}
		if err = p.takeStock(productSku, fromStock); err != nil {
			return err
		}
		return shipment.AllocateSku(line.GUID(), line.AllocatedQuantity()+fromStock,
			line.StockQuantity()+fromStock, stillPending)

	case catalog.UnknownAvailability:
	}
	return nil
}

func (p *allocationPass) takeStock(productSku *catalog.ProductSku, quantity int) error {
	if quantity == 0 {
		return nil
	}
	cmd, err := inventory.NewCommand(inventory.OrderPlaced, productSku.SkuCode(), quantity)
	if err != nil {
		return err
	}
	p.result.Commands = append(p.result.Commands, cmd)
	p.inv.take(productSku.SkuCode(), p.warehouseID, quantity)
	return nil
}

type stockKey struct {
	skuCode     string
	warehouseID int64
}

// passInventory reports stock net of what earlier lines of the same pass have taken.
type passInventory struct {
	catalog.InventoryManagement
	taken map[stockKey]int
}

func newPassInventory(inv catalog.InventoryManagement) *passInventory {
	return &passInventory{InventoryManagement: inv, taken: make(map[stockKey]int)}
}

func (p *passInventory) AvailableInStockQty(
	ctx context.Context,
	sku *catalog.ProductSku,
	warehouseID int64,
) (int, error) {
	available, err := p.InventoryManagement.AvailableInStockQty(ctx, sku, warehouseID)
	if err != nil {
		return 0, err
	}
	return max(available-p.taken[stockKey{sku.SkuCode(), warehouseID}], 0), nil
}

func (p *passInventory) HasSufficientInventory(
	ctx context.Context,
	sku *catalog.ProductSku,
	warehouseID int64,
	quantity int,
) (bool, error) {
	available, err := p.AvailableInStockQty(ctx, sku, warehouseID)
	if err != nil {
		return false, err
	}
	return available >= quantity, nil
}

func (p *passInventory) take(skuCode string, warehouseID int64, quantity int) {
	p.taken[stockKey{skuCode, warehouseID}] += quantity
}
