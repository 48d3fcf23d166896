package services_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventory struct {
	inStock map[string]int
	caps    catalog.Capabilities
}

func (f fakeInventory) AvailableInStockQty(_ context.Context, sku *catalog.ProductSku, _ int64) (int, error) {
	return f.inStock[sku.SkuCode()], nil
}

func (f fakeInventory) HasSufficientInventory(_ context.Context, sku *catalog.ProductSku, _ int64, qty int) (bool, error) {
	return f.inStock[sku.SkuCode()] >= qty, nil
}

func (f fakeInventory) PreOrBackOrderDetails(_ context.Context, sku *catalog.ProductSku) (catalog.PreOrBackOrderDetails, error) {
	return sku.PreOrBackOrderDetails(), nil
}

func (f fakeInventory) Capabilities() catalog.Capabilities {
	return f.caps
}

type allocationFixture struct {
	order    *order.Order
	shipment *order.Shipment
	skus     map[kernel.UUID]*catalog.ProductSku
	backSku  *catalog.ProductSku
}

func newProductSku(t *testing.T, code string, criteria catalog.AvailabilityCriteria, limit int) *catalog.ProductSku {
	t.Helper()
	sku, err := catalog.NewProductSku(kernel.NewUUID(), code, "P-"+code, criteria, true, catalog.Dimensions{}, limit)
	require.NoError(t, err)
	return sku
}

// newAllocationFixture builds an in-progress order with one shipment holding
// 2 x IN-STOCK, 3 x BACK-ORDER and 1 x DIGITAL (always available).
func newAllocationFixture(t *testing.T) allocationFixture {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "SNAPITUP", kernel.MustParseCurrency("USD"),
		kernel.MustParseLocale("en_US"), "customer-1")
	require.NoError(t, err)
	o.MarkPersisted(1, time.Now().UTC(), 1)
	shipment, err := o.AddShipment(kernel.NewUUID(), order.Physical)
	require.NoError(t, err)

	price, err := kernel.ParseMoney("1.00", "USD")
	require.NoError(t, err)

	fixture := allocationFixture{order: o, shipment: shipment, skus: map[kernel.UUID]*catalog.ProductSku{}}
	for _, line := range []struct {
		code     string
		criteria catalog.AvailabilityCriteria
		qty      int
	}{
		{"IN-STOCK", catalog.AvailableWhenInStock, 2},
		{"BACK-ORDER", catalog.AvailableForBackOrder, 3},
		{"DIGITAL", catalog.AlwaysAvailable, 1},
	} {
		productSku := newProductSku(t, line.code, line.criteria, 10)
		fixture.skus[productSku.GUID()] = productSku
		if line.criteria == catalog.AvailableForBackOrder {
			fixture.backSku = productSku
		}
		orderSku, err := order.NewOrderSku(kernel.NewUUID(), productSku.GUID(), line.code, line.qty, price)
		require.NoError(t, err)
		require.NoError(t, shipment.AddSku(orderSku))
	}
	require.NoError(t, o.Release())
	return fixture
}

func TestInventoryAllocator_Allocate(t *testing.T) {
	allocator := services.NewInventoryAllocator()
	inv := fakeInventory{
		inStock: map[string]int{"IN-STOCK": 5, "BACK-ORDER": 1},
		caps:    catalog.NewCapabilities(catalog.PreOrBackOrderLimit),
	}

	t.Run("should allocate in-stock lines and back-order what is not on hand", func(t *testing.T) {
		f := newAllocationFixture(t)

		result, err := allocator.Allocate(t.Context(), inv, f.order, f.skus, 1)

		require.NoError(t, err)
		assert.Equal(t, 2, result.AllocatedLines)
		assert.Equal(t, 1, result.PendingLines)
		assert.ElementsMatch(t, []inventory.Command{
			{Type: inventory.StockAllocate, SkuCode: "IN-STOCK", Quantity: 2},
			{Type: inventory.StockAllocate, SkuCode: "BACK-ORDER", Quantity: 1},
		}, result.Commands)
		require.Len(t, result.PreOrBackOrdered, 1)
		assert.Equal(t, 2, f.backSku.PreOrBackOrderedQuantity())
		assert.Equal(t, order.AwaitingInventory, f.shipment.Status())

		type lineState struct{ allocated, stock, backOrdered int }
		lines := map[string]lineState{}
		for _, line := range f.shipment.Skus() {
			lines[line.SkuCode()] = lineState{line.AllocatedQuantity(), line.StockQuantity(), line.PreOrBackOrderQuantity()}
		}
		assert.Equal(t, map[string]lineState{
			"IN-STOCK":   {2, 2, 0},
			"BACK-ORDER": {1, 1, 2},
			"DIGITAL":    {1, 0, 0},
		}, lines)
	})

	t.Run("should leave lines pending when stock is short", func(t *testing.T) {
		f := newAllocationFixture(t)
		short := fakeInventory{inStock: map[string]int{"IN-STOCK": 1}, caps: inv.caps}

		result, err := allocator.Allocate(t.Context(), short, f.order, f.skus, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, result.AllocatedLines)
		assert.Equal(t, 2, result.PendingLines)
		assert.Empty(t, result.Commands)
		assert.Equal(t, 3, f.backSku.PreOrBackOrderedQuantity())
		assert.Equal(t, order.AwaitingInventory, f.shipment.Status())
	})

	t.Run("should fail on unknown product sku", func(t *testing.T) {
		f := newAllocationFixture(t)

		_, err := allocator.Allocate(t.Context(), inv, f.order, map[kernel.UUID]*catalog.ProductSku{}, 1)

		assert.ErrorIs(t, err, errs.ErrService)
	})

	t.Run("should refuse held orders", func(t *testing.T) {
		f := newAllocationFixture(t)
		require.NoError(t, f.order.Hold())

		_, err := allocator.Allocate(t.Context(), inv, f.order, f.skus, 1)

		assert.ErrorIs(t, err, errs.ErrService)
	})
}

func TestInventoryAllocator_BackOrderedLinesWaitForStock(t *testing.T) {
	allocator := services.NewInventoryAllocator()
	caps := catalog.NewCapabilities(catalog.PreOrBackOrderLimit)
	f := newAllocationFixture(t)
	everythingElse := map[string]int{"IN-STOCK": 2}

	_, err := allocator.Allocate(t.Context(), fakeInventory{inStock: everythingElse, caps: caps}, f.order, f.skus, 1)
	require.NoError(t, err)

	require.Equal(t, order.AwaitingInventory, f.shipment.Status())
	assert.Error(t, f.shipment.Release(), "a shipment with back-ordered units cannot be released")
	assert.Equal(t, 3, f.backSku.PreOrBackOrderedQuantity())

	arrived := fakeInventory{inStock: map[string]int{"BACK-ORDER": 3}, caps: caps}
	result, err := allocator.Allocate(t.Context(), arrived, f.order, f.skus, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.AllocatedLines)
	assert.Zero(t, result.PendingLines)
	assert.Equal(t, []inventory.Command{{Type: inventory.StockAllocate, SkuCode: "BACK-ORDER", Quantity: 3}},
		result.Commands)
	assert.Zero(t, f.backSku.PreOrBackOrderedQuantity())
	assert.Equal(t, order.InventoryAssigned, f.shipment.Status())
	require.NoError(t, f.shipment.Release())
}

func TestInventoryAllocator_BackOrderLimit(t *testing.T) {
	allocator := services.NewInventoryAllocator()
	f := newAllocationFixture(t)
	limited := newProductSku(t, "BACK-ORDER", catalog.AvailableForBackOrder, 2)
	for guid, sku := range f.skus {
		if sku == f.backSku {
			f.skus[guid] = limited
		}
	}
	inv := fakeInventory{inStock: map[string]int{"IN-STOCK": 2}, caps: catalog.NewCapabilities(catalog.PreOrBackOrderLimit)}

	result, err := allocator.Allocate(t.Context(), inv, f.order, f.skus, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.PendingLines)
	assert.Zero(t, limited.PreOrBackOrderedQuantity())
	assert.Empty(t, result.PreOrBackOrdered)
	for _, line := range f.shipment.Skus() {
		if line.SkuCode() == "BACK-ORDER" {
			assert.Zero(t, line.PreOrBackOrderQuantity())
			assert.Zero(t, line.AllocatedQuantity())
		}
	}
}

func TestInventoryAllocator_SharesStockAcrossLinesOfOnePass(t *testing.T) {
	allocator := services.NewInventoryAllocator()
	o, err := order.NewOrder(kernel.NewUUID(), "SNAPITUP", kernel.MustParseCurrency("USD"),
		kernel.MustParseLocale("en_US"), "customer-1")
	require.NoError(t, err)
	o.MarkPersisted(1, time.Now().UTC(), 1)
	price, err := kernel.ParseMoney("1.00", "USD")
	require.NoError(t, err)

	camera := newProductSku(t, "CAMERA", catalog.AvailableWhenInStock, 0)
	var shipments []*order.Shipment
	for range 2 {
		shipment, err := o.AddShipment(kernel.NewUUID(), order.Physical)
		require.NoError(t, err)
		line, err := order.NewOrderSku(kernel.NewUUID(), camera.GUID(), "CAMERA", 3, price)
		require.NoError(t, err)
		require.NoError(t, shipment.AddSku(line))
		shipments = append(shipments, shipment)
	}
	require.NoError(t, o.Release())
	inv := fakeInventory{inStock: map[string]int{"CAMERA": 5}, caps: catalog.NewCapabilities()}

	result, err := allocator.Allocate(t.Context(), inv, o, map[kernel.UUID]*catalog.ProductSku{camera.GUID(): camera}, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.AllocatedLines)
	assert.Equal(t, 1, result.PendingLines)
	taken := 0
	for _, cmd := range result.Commands {
		taken += cmd.Quantity
	}
	assert.LessOrEqual(t, taken, 5)
	assert.Equal(t, order.InventoryAssigned, shipments[0].Status())
	assert.Equal(t, order.AwaitingInventory, shipments[1].Status())
}
