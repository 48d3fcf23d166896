package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/inventory"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/core/domain/model/orderreturn"
	"commerce/internal/core/domain/model/store"
	"commerce/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, guid kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, guid)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAwaitingInventory(
	ctx context.Context,
	afterUID int64,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, afterUID, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, r *orderreturn.OrderReturn) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReturnRepository) Update(ctx context.Context, r *orderreturn.OrderReturn) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReturnRepository) Get(ctx context.Context, rmaCode string) (*orderreturn.OrderReturn, error) {
	args := m.Called(ctx, rmaCode)
	r, _ := args.Get(0).(*orderreturn.OrderReturn)
	return r, args.Error(1)
}

func (m *MockReturnRepository) ListByOrder(ctx context.Context, orderNumber string) ([]*orderreturn.OrderReturn, error) {
	args := m.Called(ctx, orderNumber)
	returns, _ := args.Get(0).([]*orderreturn.OrderReturn)
	return returns, args.Error(1)
}

type MockOrderLockRepository struct{ mock.Mock }

func (m *MockOrderLockRepository) AddIfAbsent(ctx context.Context, lock *orderlock.OrderLock) (bool, error) {
	args := m.Called(ctx, lock)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderLockRepository) Get(ctx context.Context, orderNumber string) (*orderlock.OrderLock, error) {
	args := m.Called(ctx, orderNumber)
	lock, _ := args.Get(0).(*orderlock.OrderLock)
	return lock, args.Error(1)
}

func (m *MockOrderLockRepository) Remove(ctx context.Context, orderNumber string) error {
	return m.Called(ctx, orderNumber).Error(0)
}

func (m *MockOrderLockRepository) RemoveCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductSkuRepository struct{ mock.Mock }

func (m *MockProductSkuRepository) Add(ctx context.Context, sku *catalog.ProductSku) error {
	return m.Called(ctx, sku).Error(0)
}

func (m *MockProductSkuRepository) Update(ctx context.Context, sku *catalog.ProductSku) error {
	return m.Called(ctx, sku).Error(0)
}

func (m *MockProductSkuRepository) Get(ctx context.Context, guid kernel.UUID) (*catalog.ProductSku, error) {
	args := m.Called(ctx, guid)
	sku, _ := args.Get(0).(*catalog.ProductSku)
	return sku, args.Error(1)
}

func (m *MockProductSkuRepository) GetByGUIDs(
	ctx context.Context, guids []kernel.UUID,
) (map[kernel.UUID]*catalog.ProductSku, error) {
	args := m.Called(ctx, guids)
	skus, _ := args.Get(0).(map[kernel.UUID]*catalog.ProductSku)
	return skus, args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) AvailableInStockQty(
	ctx context.Context, sku *catalog.ProductSku, warehouseID int64,
) (int, error) {
	args := m.Called(ctx, sku, warehouseID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) HasSufficientInventory(
	ctx context.Context, sku *catalog.ProductSku, warehouseID int64, quantity int,
) (bool, error) {
	args := m.Called(ctx, sku, warehouseID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) PreOrBackOrderDetails(
	ctx context.Context, sku *catalog.ProductSku,
) (catalog.PreOrBackOrderDetails, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).(catalog.PreOrBackOrderDetails), args.Error(1)
}

func (m *MockInventoryRepository) Capabilities() catalog.Capabilities {
	return m.Called().Get(0).(catalog.Capabilities)
}

func (m *MockInventoryRepository) GetStock(
	ctx context.Context, skuCode string, warehouseID int64,
) (*inventory.Stock, error) {
	args := m.Called(ctx, skuCode, warehouseID)
	stock, _ := args.Get(0).(*inventory.Stock)
	return stock, args.Error(1)
}

func (m *MockInventoryRepository) SaveStock(ctx context.Context, stock *inventory.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

// MockUoW covers every unit-of-work shape. Repositories are plain fields; only the
// transaction calls are recorded.
type MockUoW struct {
	mock.Mock

	Orders    *MockOrderRepository
	Returns   *MockReturnRepository
	Locks     *MockOrderLockRepository
	Skus      *MockProductSkuRepository
	Inventory *MockInventoryRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		Orders:    new(MockOrderRepository),
		Returns:   new(MockReturnRepository),
		Locks:     new(MockOrderLockRepository),
		Skus:      new(MockProductSkuRepository),
		Inventory: new(MockInventoryRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.Orders }
func (m *MockUoW) ReturnRepository() ports.ReturnRepository         { return m.Returns }
func (m *MockUoW) OrderLockRepository() ports.OrderLockRepository   { return m.Locks }
func (m *MockUoW) ProductSkuRepository() ports.ProductSkuRepository { return m.Skus }
func (m *MockUoW) InventoryRepository() ports.InventoryRepository   { return m.Inventory }

// expectTx expects a committed transaction; the deferred rollback always runs.
func (m *MockUoW) expectTx(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Commit", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

// expectAbortedTx expects a transaction that is rolled back without commit.
func (m *MockUoW) expectAbortedTx(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.Orders.AssertExpectations(t)
	m.Returns.AssertExpectations(t)
	m.Locks.AssertExpectations(t)
	m.Skus.AssertExpectations(t)
	m.Inventory.AssertExpectations(t)
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type fulfillmentUoWFactory struct{ uow *MockUoW }

func (f fulfillmentUoWFactory) Create() commands.FulfillmentUoW { return f.uow }

type returnUoWFactory struct{ uow *MockUoW }

func (f returnUoWFactory) Create() commands.ReturnUoW { return f.uow }

type lockUoWFactory struct{ uow *MockUoW }

func (f lockUoWFactory) Create() commands.OrderLockUoW { return f.uow }

type MockStoreLookup struct{ mock.Mock }

func (m *MockStoreLookup) Lookup(ctx context.Context, code string) (*store.Store, error) {
	args := m.Called(ctx, code)
	st, _ := args.Get(0).(*store.Store)
	return st, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.LifecycleEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) expect(eventType string) {
	m.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.LifecycleEvent) bool {
		return e.Type == eventType
	})).Return(nil).Once()
}

const (
	storeCode   = "SNAPITUP"
	warehouseID = int64(7)
)

var discard = slog.New(slog.DiscardHandler)

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewStore(storeCode, "Snap It Up", warehouseID,
		kernel.MustParseCurrency("USD"), kernel.MustParseLocale("en_US"))
	require.NoError(t, err)
	return st
}

func storeLookup(t *testing.T) *MockStoreLookup {
	t.Helper()
	stores := new(MockStoreLookup)
	stores.On("Lookup", mock.Anything, storeCode).Return(newStore(t), nil)
	return stores
}

func newProductSku(t *testing.T, criteria catalog.AvailabilityCriteria, shippable bool) *catalog.ProductSku {
	t.Helper()
	sku, err := catalog.NewProductSku(kernel.NewUUID(), "SKU-1", "PROD-1", criteria, shippable, catalog.Dimensions{}, -1)
	require.NoError(t, err)
	return sku
}

// placedOrder is a persisted order with one physical shipment of 2 x 44.00 of sku.
func placedOrder(t *testing.T, sku *catalog.ProductSku) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), storeCode, kernel.MustParseCurrency("USD"),
		kernel.MustParseLocale("en_US"), "customer-1")
	require.NoError(t, err)
	o.MarkPersisted(1, time.Now().UTC().Add(-time.Hour), 1)

	shipment, err := o.AddShipment(kernel.NewUUID(), order.Physical)
	require.NoError(t, err)
	line, err := order.NewOrderSku(kernel.NewUUID(), sku.GUID(), sku.SkuCode(), 2, usd(t, "44.00"))
	require.NoError(t, err)
	require.NoError(t, shipment.AddSku(line))
	return o
}

// allocatedOrder is a placed order released to in progress with its line taken from stock.
func allocatedOrder(t *testing.T, sku *catalog.ProductSku) *order.Order {
	t.Helper()
	o := placedOrder(t, sku)
	require.NoError(t, o.Release())
	shipment := o.Shipments()[0]
	line := shipment.Skus()[0]
	require.NoError(t, shipment.AllocateSku(line.GUID(), line.Quantity(), line.Quantity(), 0))
	return o
}

func shippedOrder(t *testing.T, sku *catalog.ProductSku) *order.Order {
	t.Helper()
	o := allocatedOrder(t, sku)
	shipment := o.Shipments()[0]
	require.NoError(t, shipment.Release())
	require.NoError(t, shipment.Ship("1Z999"))
	return o
}

func newStock(t *testing.T, onHand, allocated int) *inventory.Stock {
	t.Helper()
	stock, err := inventory.NewStock("SKU-1", warehouseID, onHand, allocated, 0)
	require.NoError(t, err)
	return stock
}
