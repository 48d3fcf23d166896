package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "commerce/internal/adapters/out/postgres"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
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

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_locks CASCADE").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ReadsPersistedOrder() {
	ctx := context.Background()
	o := suite.persistOrderWithShipment()

	query, err := queries.NewGetOrderQuery(o.Number())
	suite.Require().NoError(err)

	resp, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("CREATED", resp.Status)
	suite.Equal("SNAPITUP", resp.StoreCode)
	suite.Require().Len(resp.Shipments, 1)
	suite.Equal("AWAITING_INVENTORY", resp.Shipments[0].Status)
	suite.Require().Len(resp.Shipments[0].Lines, 1)
	suite.Equal(3, resp.Shipments[0].Lines[0].Quantity)
	suite.True(resp.Shipments[0].Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
}

func (suite *QueryHandlersIntegrationTestSuite) TestValidateOrderLock_AgainstStoredLock() {
	ctx := context.Background()
	o := suite.persistOrderWithShipment()

	lock, err := orderlock.NewOrderLock(o.Number(), "csr-1", time.Now())
	suite.Require().NoError(err)
	obtained, err := suite.factory.Create().OrderLockRepository().AddIfAbsent(ctx, lock)
	suite.Require().NoError(err)
	suite.Require().True(obtained)

	handler := queries.NewValidateOrderLockQueryHandler(suite.db, services.NewOrderLockValidator())

	query, err := queries.NewValidateOrderLockQuery(o.Number(), "csr-1", lock.CreatedAt(), time.Now())
	suite.Require().NoError(err)
	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(resp.Success, resp.Result)

	suite.Require().NoError(suite.factory.Create().OrderLockRepository().Remove(ctx, o.Number()))

	resp, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("ORDER_WAS_UNLOCKED", resp.Result)
}

func (suite *QueryHandlersIntegrationTestSuite) persistOrderWithShipment() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "SNAPITUP", kernel.MustParseCurrency("USD"),
		kernel.MustParseLocale("en_US"), "customer-1")
	suite.Require().NoError(err)
	shipment, err := o.AddShipment(kernel.NewUUID(), order.Physical)
	suite.Require().NoError(err)
	line, err := order.NewOrderSku(kernel.NewUUID(), kernel.NewUUID(), "SKU-1", 3,
		o.Currency().Amount(decimal.NewFromInt(10)))
	suite.Require().NoError(err)
	suite.Require().NoError(shipment.AddSku(line))

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
