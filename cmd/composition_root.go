package cmd

import (
	"context"
	"fmt"

	"warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/amqpnotify"
	"warehouse/internal/adapters/out/deeplink"
	"warehouse/internal/adapters/out/extractor"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/adapters/out/redisfeed"
	"warehouse/internal/core/application/ordersync"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"
	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot owns every long-lived dependency of the service and builds the
// HTTP handlers and the background jobs on top of them.
//
// Example:
//
// 	root, err := NewCompositionRoot(ctx, cfg, log)
// 	if err != nil {
// 	    return err
// 	}
// 	defer root.Close()
// 	router := root.CreateRouter()
type CompositionRoot struct {
	cfg      Config
	log      *logger.Logger
	gormDB   *gorm.DB
	registry *prometheus.Registry

	engine     *ordersync.Engine
	resolver   services.DispatchResolver
	composer   services.NotificationComposer
	notifier   ports.Notifier
	publisher  ports.NotificationPublisher
	extractor  ports.Extractor
	changeFeed ports.ChangeFeed

	closers []func() error
}

// NewCompositionRoot connects to every configured collaborator. On error, whatever
// was already opened is closed again.
func NewCompositionRoot(ctx context.Context, cfg Config, log *logger.Logger) (_ *CompositionRoot, err error) {
	c := &CompositionRoot{
		cfg:      cfg,
		log:      log,
		registry: prometheus.NewRegistry(),
		resolver: services.NewDispatchResolver(services.Roster{
			TravelingAgents: cfg.TravelingAgents,
			Salespeople:     cfg.Salespeople,
		}),
		composer: services.NewNotificationComposer(cfg.Location()),
		notifier: deeplink.NewNotifier(cfg.SupportPhone),
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, c.Close())
		}
	}()

	if _, err = http.LoadAPIDocument(); err != nil {
		return nil, err
	}

	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err = c.openDatabase(ctx); err != nil {
		return nil, err
	}

	changePublisher, err := c.openChangeFeed(ctx)
	if err != nil {
		return nil, err
	}

	if err = c.openNotificationPublisher(); err != nil {
		return nil, err
	}

	if err = c.openExtractor(); err != nil {
		return nil, err
	}

	policy, err := orderrepo.ParseConflictPolicy(cfg.ConflictPolicy)
	if err != nil {
		return nil, err
	}

	syncMetrics := metrics.NewSyncMetrics(c.registry)
	uowFactory := postgres.NewGormUnitOfWorkFactory(c.gormDB, postgres.UnitOfWorkOptions{
		Repository: orderrepo.Options{
			Policy:  policy,
			Logger:  log.Named("orderrepo"),
			Metrics: syncMetrics,
		},
		Publisher: changePublisher,
		Logger:    log,
	})
	c.engine, err = ordersync.NewEngine(uowFactory, ordersync.Options{
		Logger:  log,
		Metrics: syncMetrics,
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) openDatabase(ctx context.Context) error {
	var dialector gorm.Dialector
	switch c.cfg.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(c.cfg.DSN())
	default:
		dialector = gormpostgres.Open(c.cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	c.gormDB = db
	c.closers = append(c.closers, sqlDB.Close)

	if err = db.WithContext(ctx).AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return fmt.Errorf("migrating orders table: %w", err)
	}
	return nil
}

// openChangeFeed sets up the configured feed and returns the publisher the unit of
// work should announce commits on. The postgres feed needs none: the trigger notifies.
func (c *CompositionRoot) openChangeFeed(ctx context.Context) (ports.ChangePublisher, error) {
	switch c.cfg.ChangeFeed {
	case FeedPostgres:
		channel := c.cfg.ChangeChannel
		if channel == "" {
			channel = postgres.DefaultChangeChannel
		}
		if err := postgres.InstallChangeTrigger(ctx, c.gormDB, channel); err != nil {
			return nil, fmt.Errorf("installing change trigger: %w", err)
		}
		c.changeFeed = postgres.NewChangeListener(c.cfg.DSN(), postgres.ChangeListenerOptions{
			Channel: channel,
			Logger:  c.log,
		})
		return nil, nil

	case FeedRedis:
		client, err := redisfeed.Connect(ctx, c.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		c.closers = append(c.closers, client.Close)
		c.changeFeed = redisfeed.NewFeed(client, c.cfg.ChangeChannel, c.log)
		return redisfeed.NewPublisher(client, c.cfg.ChangeChannel), nil

	default:
		return nil, nil
	}
}

func (c *CompositionRoot) openNotificationPublisher() error {
	if c.cfg.AMQPURL == "" {
		return nil
	}

	publisher, err := amqpnotify.Dial(c.cfg.AMQPURL, c.cfg.AMQPExchange)
	if err != nil {
		return fmt.Errorf("connecting to amqp: %w", err)
	}
	c.closers = append(c.closers, publisher.Close)
	c.publisher = publisher
	return nil
}

func (c *CompositionRoot) openExtractor() error {
	if c.cfg.ExtractorURL == "" {
		c.extractor = extractor.Disabled{}
		return nil
	}

	client, err := extractor.NewClient(c.cfg.ExtractorURL, c.cfg.ExtractorTimeout)
	if err != nil {
		return err
	}
	c.extractor = client
	return nil
}

// Engine exposes the order snapshot owner, e.g. for the initial refresh.
func (c *CompositionRoot) Engine() *ordersync.Engine {
	return c.engine
}

// CreateHTTPHandlers wires one use case handler per HTTP operation.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		CreateOrder:          commands.NewCreateOrderCommandHandler(c.engine),
		OpenOrder:            commands.NewOpenOrderCommandHandler(c.engine),
		UpdateOrder:          commands.NewUpdateOrderCommandHandler(c.engine),
		DeleteOrder:          commands.NewDeleteOrderCommandHandler(c.engine),
		AdvanceOrder:         commands.NewAdvanceOrderCommandHandler(c.engine),
		AddPackagingEntry:    commands.NewAddPackagingEntryCommandHandler(c.engine),
		RemovePackagingEntry: commands.NewRemovePackagingEntryCommandHandler(c.engine),
		AssignDispatch:       commands.NewAssignDispatchCommandHandler(c.engine, c.resolver),
		AddCollaborator:      commands.NewAddCollaboratorCommandHandler(c.engine),
		LinkOrderNumber:      commands.NewLinkOrderNumberCommandHandler(c.engine),
		NotifyOrder: commands.NewNotifyOrderCommandHandler(
			c.engine, c.resolver, c.composer, c.notifier, c.publisher,
		),
		RefreshOrders: commands.NewRefreshOrdersCommandHandler(c.engine),

		ListOrders:          queries.NewListOrdersQueryHandler(c.engine, services.NewSearchFilter()),
		GetOrder:            queries.NewGetOrderQueryHandler(c.engine),
		GetSelectedOrder:    queries.NewGetSelectedOrderQueryHandler(c.engine),
		PreviewNotification: queries.NewPreviewNotificationQueryHandler(c.engine, c.resolver, c.composer),
		GetDispatchOptions:  queries.NewGetDispatchOptionsQueryHandler(c.resolver),
		GetStatusCounts:     queries.NewGetStatusCountsQueryHandler(c.gormDB),
		ExtractOrderDetails: queries.NewExtractOrderDetailsQueryHandler(c.extractor),
	}
}

// CreateRouter builds the echo router serving the API, metrics and docs.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := http.NewServer(c.CreateHTTPHandlers(), c.resolver)
	return http.NewRouter(server, http.RouterOptions{
		Logger:   c.log,
		Gatherer: c.registry,
		LogLevel: c.cfg.LogLevel,
	})
}

// CreateJobManager builds the scheduled resync and, when a change feed is configured,
// the job that listens to it.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	resync := jobs.NewResyncJob(commands.NewRefreshOrdersCommandHandler(c.engine), c.cfg.ResyncSchedule, c.log)

	var feed *jobs.ChangeFeedJob
	if c.changeFeed != nil {
		feed = jobs.NewChangeFeedJob(c.engine, c.changeFeed, c.log)
	}
	return jobs.NewJobManager(resync, feed)
}

// Close releases every connection in reverse opening order.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, c.closers[i]())
	}
	c.closers = nil
	return err
}
