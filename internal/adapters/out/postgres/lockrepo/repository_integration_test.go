package lockrepo_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/lockrepo"
	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderLockRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *lockrepo.GormOrderLockRepository
}

func (suite *OrderLockRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&lockrepo.OrderLockDTO{}))
	suite.repository = lockrepo.NewGormOrderLockRepository(db)
}

func (suite *OrderLockRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_locks").Error)
}

func (suite *OrderLockRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderLockRepositoryIntegrationTestSuite) TestAddIfAbsent_SecondLockLoses() {
	ctx := context.Background()
	first := suite.newLock("ORDER-1", "editor-1", time.Now())
	second := suite.newLock("ORDER-1", "editor-2", time.Now().Add(time.Second))

	added, err := suite.repository.AddIfAbsent(ctx, first)
	suite.Require().NoError(err)
	suite.True(added)

	added, err = suite.repository.AddIfAbsent(ctx, second)
	suite.Require().NoError(err)
	suite.False(added)

	stored, err := suite.repository.Get(ctx, "ORDER-1")
	suite.Require().NoError(err)
	suite.Equal("editor-1", stored.OwnerID())
	suite.True(stored.IsSameLock(first))
}

func (suite *OrderLockRepositoryIntegrationTestSuite) TestGet_Unlocked_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), "ORDER-404")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderLockRepositoryIntegrationTestSuite) TestRemove() {
	ctx := context.Background()
	_, err := suite.repository.AddIfAbsent(ctx, suite.newLock("ORDER-1", "editor-1", time.Now()))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Remove(ctx, "ORDER-1"))
	suite.Require().NoError(suite.repository.Remove(ctx, "ORDER-1"))

	added, err := suite.repository.AddIfAbsent(ctx, suite.newLock("ORDER-1", "editor-2", time.Now()))
	suite.Require().NoError(err)
	suite.True(added)
}

func (suite *OrderLockRepositoryIntegrationTestSuite) TestRemoveCreatedBefore() {
	ctx := context.Background()
	now := time.Now().UTC()
	for i, age := range []time.Duration{2 * time.Hour, 90 * time.Minute, time.Minute} {
		lock := suite.newLock([]string{"ORDER-1", "ORDER-2", "ORDER-3"}[i], "editor-1", now.Add(-age))
		_, err := suite.repository.AddIfAbsent(ctx, lock)
		suite.Require().NoError(err)
	}

	removed, err := suite.repository.RemoveCreatedBefore(ctx, now.Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(2), removed)

	_, err = suite.repository.Get(ctx, "ORDER-3")
	suite.Require().NoError(err)
}

func (suite *OrderLockRepositoryIntegrationTestSuite) newLock(orderNumber, owner string, at time.Time) *orderlock.OrderLock {
	lock, err := orderlock.NewOrderLock(orderNumber, owner, at)
	suite.Require().NoError(err)
	return lock
}

func TestOrderLockRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLockRepositoryIntegrationTestSuite))
}
