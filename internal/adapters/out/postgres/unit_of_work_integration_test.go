package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	postgres_adapter "commerce/internal/adapters/out/postgres"
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/core/domain/model/store"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	tables := []string{
		"orders", "order_returns", "order_locks", "product_skus", "inventory_stock", "stores",
	}
	err := suite.db.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ReturnRepository())
	suite.NotNil(uow1.OrderLockRepository())
	suite.NotNil(uow1.ProductSkuRepository())
	suite.NotNil(uow1.InventoryRepository())
	suite.NotNil(uow1.StoreRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.CreateGorm()
	o := createTestOrder(suite)
	sku := createTestSku(suite)
	s := createTestStore(suite)
	lock, err := orderlock.NewOrderLock(o.Number(), "csr-1", time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.StoreRepository().Add(ctx, s))
	suite.Require().NoError(uow.ProductSkuRepository().Add(ctx, sku))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	obtained, err := uow.OrderLockRepository().AddIfAbsent(ctx, lock)
	suite.Require().NoError(err)
	suite.True(obtained)
	suite.Require().NoError(uow.Commit(ctx))

	tracked := uow.TrackedAggregates()
	suite.Require().Len(tracked, 1)
	suite.Equal(o.Number(), tracked[0].Key)
	suite.Same(o, tracked[0].Aggregate)

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, o.GUID())
	suite.Require().NoError(err)
	_, err = fresh.ProductSkuRepository().Get(ctx, sku.GUID())
	suite.Require().NoError(err)
	_, err = fresh.StoreRepository().Get(ctx, s.Code())
	suite.Require().NoError(err)
	persisted, err := fresh.OrderLockRepository().Get(ctx, o.Number())
	suite.Require().NoError(err)
	suite.True(persisted.IsSameLock(lock))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder(suite)
	sku := createTestSku(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.ProductSkuRepository().Add(ctx, sku))

	_, err := uow.OrderRepository().Get(ctx, o.GUID())
	suite.Require().NoError(err, "visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, o.GUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.ProductSkuRepository().Get(ctx, sku.GUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolationBetweenInstances() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := createTestOrder(suite)
	order2 := createTestOrder(suite)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.GUID())
	suite.Require().Error(err, "uncommitted order of another unit of work")
	_, err = uow2.OrderRepository().Get(ctx, order1.GUID())
	suite.Require().Error(err, "uncommitted order of another unit of work")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, order1.GUID())
	suite.Require().NoError(err)
	_, err = fresh.OrderRepository().Get(ctx, order2.GUID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction_WritesImmediately() {
	ctx := context.Background()
	o := createTestOrder(suite)

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.GUID())
	suite.Require().NoError(err)
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "SNAPITUP", kernel.MustParseCurrency("USD"),
		kernel.MustParseLocale("en_US"), "customer-1")
	suite.Require().NoError(err)
	return o
}

func createTestSku(suite *UnitOfWorkIntegrationTestSuite) *catalog.ProductSku {
	sku, err := catalog.NewProductSku(kernel.NewUUID(), "SKU-"+kernel.NewUUID().String()[:8], "PRODUCT-1",
		catalog.AvailableWhenInStock, true, catalog.Dimensions{}, 0)
	suite.Require().NoError(err)
	return sku
}

func createTestStore(suite *UnitOfWorkIntegrationTestSuite) *store.Store {
	s, err := store.NewStore("SNAPITUP", "Snap It Up", 1,
		kernel.MustParseCurrency("USD"), kernel.MustParseLocale("en_US"))
	suite.Require().NoError(err)
	return s
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
