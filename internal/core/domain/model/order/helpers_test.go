package order_test

import (
	"testing"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	usd  = kernel.MustParseCurrency("USD")
	enUS = kernel.MustParseLocale("en_US")
)

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "SNAPITUP", usd, enUS, "customer-1")
	require.NoError(t, err)
	return o
}

func newPersistedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newOrder(t)
	o.MarkPersisted(1, time.Now().UTC(), 1)
	return o
}

func newSku(t *testing.T, quantity int, unitPrice string) *order.OrderSku {
	t.Helper()
	sku, err := order.NewOrderSku(kernel.NewUUID(), kernel.NewUUID(), "SKU-1", quantity, money(t, unitPrice))
	require.NoError(t, err)
	return sku
}

// addShipment adds a shipment of kind holding one line item of quantity 1 at 10.00.
func addShipment(t *testing.T, o *order.Order, kind order.Kind) (*order.Shipment, *order.OrderSku) {
	t.Helper()
	s, err := o.AddShipment(kernel.NewUUID(), kind)
	require.NoError(t, err)
	sku := newSku(t, 1, "10.00")
	require.NoError(t, s.AddSku(sku))
	return s, sku
}

func allocateAll(t *testing.T, s *order.Shipment) {
	t.Helper()
	for _, sku := range s.Skus() {
		require.NoError(t, s.AllocateSku(sku.GUID(), sku.Quantity(), sku.Quantity(), 0))
	}
}
