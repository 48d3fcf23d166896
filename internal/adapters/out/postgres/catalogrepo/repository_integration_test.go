package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/catalogrepo"
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ProductSkuRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *catalogrepo.GormProductSkuRepository
}

func (suite *ProductSkuRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&catalogrepo.ProductSkuDTO{}))
	suite.repository = catalogrepo.NewGormProductSkuRepository(db)
}

func (suite *ProductSkuRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE product_skus").Error)
}

func (suite *ProductSkuRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductSkuRepositoryIntegrationTestSuite) TestAddGetUpdate() {
	ctx := context.Background()
	sku := suite.newSku("SKU-1")
	suite.Require().NoError(suite.repository.Add(ctx, sku))

	loaded, err := suite.repository.Get(ctx, sku.GUID())
	suite.Require().NoError(err)
	suite.Equal("SKU-1", loaded.SkuCode())
	suite.Equal(catalog.AvailableForPreOrder, loaded.AvailabilityCriteria())
	suite.True(loaded.Dimensions().Weight.Equal(decimal.RequireFromString("1.25")))

	restored, err := catalog.RestoreProductSku(sku.GUID(), "SKU-1", "PRODUCT-1", catalog.AvailableForPreOrder,
		true, sku.Dimensions(), 5, 3)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, restored))

	loaded, err = suite.repository.Get(ctx, sku.GUID())
	suite.Require().NoError(err)
	suite.Equal(3, loaded.PreOrBackOrderedQuantity())
}

func (suite *ProductSkuRepositoryIntegrationTestSuite) TestGetByGUIDs_SkipsMissing() {
	ctx := context.Background()
	a, b := suite.newSku("SKU-A"), suite.newSku("SKU-B")
	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.Require().NoError(suite.repository.Add(ctx, b))

	skus, err := suite.repository.GetByGUIDs(ctx, []kernel.UUID{a.GUID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Len(skus, 1)
	suite.Equal("SKU-A", skus[a.GUID()].SkuCode())

	empty, err := suite.repository.GetByGUIDs(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *ProductSkuRepositoryIntegrationTestSuite) TestErrorScenarios() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Update(ctx, suite.newSku("SKU-404"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductSkuRepositoryIntegrationTestSuite) newSku(code string) *catalog.ProductSku {
	sku, err := catalog.NewProductSku(kernel.NewUUID(), code, "PRODUCT-1", catalog.AvailableForPreOrder, true,
		catalog.Dimensions{Weight: decimal.RequireFromString("1.25")}, 5)
	suite.Require().NoError(err)
	return sku
}

func TestProductSkuRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductSkuRepositoryIntegrationTestSuite))
}
