package inventory_test

import (
	"testing"

	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStock_Apply(t *testing.T) {
	newStock := func(t *testing.T) *inventory.Stock {
		t.Helper()
		s, err := inventory.NewStock("SKU-1", 1, 10, 2, 1)
		require.NoError(t, err)
		return s
	}

	t.Run("available excludes reserved and allocated", func(t *testing.T) {
		assert.Equal(t, 7, newStock(t).AvailableQuantityInStock())
	})

	t.Run("allocate", func(t *testing.T) {
		s := newStock(t)
		require.NoError(t, s.Apply(inventory.Command{Type: inventory.StockAllocate, SkuCode: "SKU-1", Quantity: 7}, false))
		assert.Equal(t, 9, s.AllocatedQuantity())
		assert.Zero(t, s.AvailableQuantityInStock())
	})

	t.Run("allocate beyond stock", func(t *testing.T) {
		s := newStock(t)
		err := s.Apply(inventory.Command{Type: inventory.StockAllocate, SkuCode: "SKU-1", Quantity: 8}, false)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		require.NoError(t, s.Apply(inventory.Command{Type: inventory.StockAllocate, SkuCode: "SKU-1", Quantity: 8}, true))
		assert.Equal(t, 10, s.AllocatedQuantity())
	})

	t.Run("release ships allocated stock", func(t *testing.T) {
		s := newStock(t)
		require.NoError(t, s.Apply(inventory.Command{Type: inventory.StockRelease, SkuCode: "SKU-1", Quantity: 2}, false))
		assert.Equal(t, 8, s.QuantityOnHand())
		assert.Zero(t, s.AllocatedQuantity())
	})

	t.Run("deallocate floors at zero", func(t *testing.T) {
		s := newStock(t)
		require.NoError(t, s.Apply(inventory.Command{Type: inventory.StockDeallocate, SkuCode: "SKU-1", Quantity: 5}, false))
		assert.Zero(t, s.AllocatedQuantity())
	})

	t.Run("wrong sku", func(t *testing.T) {
		err := newStock(t).Apply(inventory.Command{Type: inventory.StockAllocate, SkuCode: "SKU-2", Quantity: 1}, false)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewStock_Invalid(t *testing.T) {
	_, err := inventory.NewStock("", 0, -1, 0, 0)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
