package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	httpin "menuorder/internal/adapters/in/http"
	"menuorder/internal/adapters/out/events"
	"menuorder/internal/adapters/out/kafka"
	"menuorder/internal/adapters/out/memory"
	"menuorder/internal/adapters/out/postgres"
	"menuorder/internal/adapters/out/postgres/notify"
	redisout "menuorder/internal/adapters/out/redis"
	"menuorder/internal/core/application/usecases/commands"
	"menuorder/internal/core/application/usecases/queries"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/ports"
	"menuorder/internal/jobs"
	"menuorder/internal/pkg/metrics"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters and use cases of one process.
type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	carts      ports.CartRepository
	lock       ports.CheckoutLock
	hub        *events.Hub
	metrics    *metrics.Metrics
	origin     string
	listener   *notify.Listener
	closers    []func() error
}

// NewCompositionRoot builds the order change pipeline and the cart store.
//
// Committed changes go to the live feed hub and the metrics, and, stamped
// with this instance's origin, to Kafka and pg_notify when configured. The
// pg_notify listener feeds changes of other instances into the hub only.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		gormDB:  gormDB,
		hub:     events.NewHub(cfg.Events.FeedBuffer, logger.With(slog.String("component", "order_feed"))),
		metrics: metrics.New(),
		origin:  cfg.App.Origin,
	}
	if c.origin == "" {
		c.origin = kernel.NewUUID().String()
	}

	var remote events.Fanout
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		remote = append(remote, publisher)
		c.closers = append(c.closers, publisher.Close)
	}
	if cfg.Events.Notify {
		remote = append(remote, notify.NewPublisher(gormDB, cfg.Events.Channel))
		c.listener = notify.NewListener(cfg.DB.DSN, cfg.Events.Channel, c.origin, c.hub, logger)
	}

	publisher := events.Fanout{c.hub, c.metrics}
	if len(remote) > 0 {
		publisher = append(publisher, events.Stamped{Origin: c.origin, Next: remote})
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	switch cfg.Carts.Store {
	case CartStoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, err
		}
		c.carts = redisout.NewCartRepository(client, cfg.Redis.Prefix, cfg.Carts.TTL)
		c.lock = redisout.NewCheckoutLock(client, cfg.Redis.Prefix, logger)
		c.closers = append(c.closers, client.Close)
	default:
		c.carts = memory.NewCartRepository()
		c.lock = memory.NewCheckoutLock()
	}

	return c, nil
}

// Close releases the connections the root opened. The database belongs to
// the caller.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return c.uowFactory
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

// Listener is nil unless events.notify is on.
func (c *CompositionRoot) Listener() *notify.Listener {
	return c.listener
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.uowFactory.Create().ProductRepository(), c.carts)
}

func (c *CompositionRoot) CreateUpdateCartItemQuantityCommandHandler() commands.UpdateCartItemQuantityCommandHandler {
	return commands.NewUpdateCartItemQuantityCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.carts, c.lock, commands.CheckoutOptions{
		Delay:   c.cfg.Checkout.Delay,
		LockTTL: c.cfg.Checkout.LockTTL,
	})
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveOrderCommandHandler() commands.RemoveOrderCommandHandler {
	return commands.NewRemoveOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateClearOrdersCommandHandler() commands.ClearOrdersCommandHandler {
	return commands.NewClearOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePurgeTerminalOrdersCommandHandler() commands.PurgeTerminalOrdersCommandHandler {
	return commands.NewPurgeTerminalOrdersCommandHandler(c.orderUoWFactory(), time.Now)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.carts)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB, time.Now)
}

// CreateHTTPServer assembles the API server with every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		AddCartItem:            c.CreateAddCartItemCommandHandler(),
		UpdateCartItemQuantity: c.CreateUpdateCartItemQuantityCommandHandler(),
		RemoveCartItem:         c.CreateRemoveCartItemCommandHandler(),
		ClearCart:              c.CreateClearCartCommandHandler(),
		Checkout:               c.CreateCheckoutCommandHandler(),
		AdvanceOrderStatus:     c.CreateAdvanceOrderStatusCommandHandler(),
		CancelOrder:            c.CreateCancelOrderCommandHandler(),
		UpdateOrderStatus:      c.CreateUpdateOrderStatusCommandHandler(),
		RemoveOrder:            c.CreateRemoveOrderCommandHandler(),
		ClearOrders:            c.CreateClearOrdersCommandHandler(),
		GetMenu:                c.CreateGetMenuQueryHandler(),
		GetCart:                c.CreateGetCartQueryHandler(),
		ListOrders:             c.CreateListOrdersQueryHandler(),
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetOrderStats:          c.CreateGetOrderStatsQueryHandler(),
	}, c.hub, c.metrics, c.logger.With(slog.String("component", "http")))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeTerminalOrdersCommandHandler(),
		c.cfg.Retention.Schedule,
		c.cfg.Retention.Keep,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
