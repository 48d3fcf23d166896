package cmd

import (
	"context"
	"log/slog"

	httpadapter "commerce/internal/adapters/in/http"
	"commerce/internal/adapters/out/cache"
	"commerce/internal/adapters/out/kafka"
	"commerce/internal/adapters/out/postgres"
	"commerce/internal/adapters/out/postgres/storerepo"
	"commerce/internal/core/application/storectx"
	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/services"
	"commerce/internal/core/ports"
	"commerce/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	serviceName   = "commerce"
	localCacheCap = 256
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	stores     ports.StoreLookup
	publisher  ports.EventPublisher
	closers    []func() error
}

// NewCompositionRoot wires the store cache and the event publisher. A redis cache is used when
// REDIS_ADDR is set and a Kafka publisher when brokers are configured.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	var storeCache ports.StoreCache
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		c.closers = append(c.closers, client.Close)
		storeCache = cache.NewRedisStoreCache(client, serviceName, config.StoreCacheTTL)
	} else {
		storeCache = cache.NewLRUStoreCache(localCacheCap, config.StoreCacheTTL)
	}
	c.stores = storectx.NewLookup(storerepo.NewGormStoreRepository(gormDB), storeCache, logger)

	if len(config.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(config.KafkaBrokers, config.KafkaOrderEventsTopic, logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, publisher.Close)
		c.publisher = publisher
	} else {
		c.publisher = kafka.NewLogPublisher(logger)
	}

	return c, nil
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close(ctx context.Context) {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.logger.WarnContext(ctx, "failed to close resource", "error", err)
		}
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) returnUoWFactory() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderLockUoWFactory() commands.OrderLockUoWFactory {
	return FuncOrderLockUoWFactory(func() commands.OrderLockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fulfillmentUoWFactory(), c.stores, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAddShipmentCommandHandler() commands.AddShipmentCommandHandler {
	return commands.NewAddShipmentCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateHoldOrderCommandHandler() commands.HoldOrderCommandHandler {
	return commands.NewHoldOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	return commands.NewReleaseOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fulfillmentUoWFactory(), c.stores, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateFailOrderCommandHandler() commands.FailOrderCommandHandler {
	return commands.NewFailOrderCommandHandler(c.fulfillmentUoWFactory(), c.stores, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAllocateInventoryCommandHandler() commands.AllocateInventoryCommandHandler {
	return commands.NewAllocateInventoryCommandHandler(c.fulfillmentUoWFactory(), c.stores,
		services.NewInventoryAllocator(), c.logger)
}

func (c *CompositionRoot) CreateReleaseShipmentCommandHandler() commands.ReleaseShipmentCommandHandler {
	return commands.NewReleaseShipmentCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateShipShipmentCommandHandler() commands.ShipShipmentCommandHandler {
	return commands.NewShipShipmentCommandHandler(c.fulfillmentUoWFactory(), c.stores, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRecalculateShipmentTaxesCommandHandler() commands.RecalculateShipmentTaxesCommandHandler {
	return commands.NewRecalculateShipmentTaxesCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCreateReturnCommandHandler() commands.CreateReturnCommandHandler {
	return commands.NewCreateReturnCommandHandler(c.returnUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReceiveReturnCommandHandler() commands.ReceiveReturnCommandHandler {
	return commands.NewReceiveReturnCommandHandler(c.returnUoWFactory(), c.stores, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateFinishReturnCommandHandler() commands.FinishReturnCommandHandler {
	return commands.NewFinishReturnCommandHandler(c.returnUoWFactory())
}

func (c *CompositionRoot) CreateObtainOrderLockCommandHandler() commands.ObtainOrderLockCommandHandler {
	return commands.NewObtainOrderLockCommandHandler(c.orderLockUoWFactory(), services.NewOrderLockValidator())
}

func (c *CompositionRoot) CreateReleaseOrderLockCommandHandler() commands.ReleaseOrderLockCommandHandler {
	return commands.NewReleaseOrderLockCommandHandler(c.orderLockUoWFactory())
}

func (c *CompositionRoot) CreateReapOrderLocksCommandHandler() commands.ReapOrderLocksCommandHandler {
	return commands.NewReapOrderLocksCommandHandler(c.orderLockUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateValidateOrderLockQueryHandler() queries.ValidateOrderLockQueryHandler {
	return queries.NewValidateOrderLockQueryHandler(c.gormDB, services.NewOrderLockValidator())
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		AddShipment:       c.CreateAddShipmentCommandHandler(),
		HoldOrder:         c.CreateHoldOrderCommandHandler(),
		ReleaseOrder:      c.CreateReleaseOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		FailOrder:         c.CreateFailOrderCommandHandler(),
		AllocateInventory: c.CreateAllocateInventoryCommandHandler(),
		ReleaseShipment:   c.CreateReleaseShipmentCommandHandler(),
		ShipShipment:      c.CreateShipShipmentCommandHandler(),
		RecalculateTaxes:  c.CreateRecalculateShipmentTaxesCommandHandler(),
		CreateReturn:      c.CreateCreateReturnCommandHandler(),
		ReceiveReturn:     c.CreateReceiveReturnCommandHandler(),
		FinishReturn:      c.CreateFinishReturnCommandHandler(),
		ObtainOrderLock:   c.CreateObtainOrderLockCommandHandler(),
		ReleaseOrderLock:  c.CreateReleaseOrderLockCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ValidateOrderLock: c.CreateValidateOrderLockQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateRouterConfig() httpadapter.RouterConfig {
	return httpadapter.RouterConfig{
		JWTSecret:      []byte(c.config.JWTSecret),
		RateLimitRPS:   c.config.RateLimitRPS,
		RateLimitBurst: c.config.RateLimitBurst,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	allocateHandler := c.CreateAllocateInventoryCommandHandler()
	reapHandler := c.CreateReapOrderLocksCommandHandler()

	return jobs.NewJobManager(
		c.uowFactory.Create().OrderRepository(),
		&allocateHandler,
		&reapHandler,
		jobs.Schedules{
			BackOrderAllocation: c.config.BackOrderAllocationSchedule,
			LockReaper:          c.config.LockReaperSchedule,
			LockMaxAge:          c.config.OrderLockMaxAge,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncOrderLockUoWFactory func() commands.OrderLockUoW

func (f FuncOrderLockUoWFactory) Create() commands.OrderLockUoW {
	return f()
}
