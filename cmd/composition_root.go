package cmd

import (
	"log/slog"

	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/cache"
	"lastmile/internal/adapters/out/notify"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/postgres/earningrepo"
	"lastmile/internal/adapters/out/postgres/zonerepo"
	"lastmile/internal/adapters/out/routing"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/zone"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
// It is the only place that knows concrete implementations.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	notifier    ports.Notifier
	ledger      ports.EarningLedger
	quoteEngine  *services.QuoteEngine
	quoteHandler queries.GetPriceQuoteQueryHandler
	logger       *slog.Logger
}

// NewCompositionRoot assembles the object graph from the configuration and
// an open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var routeClient services.RouteClient
	if config.RoutingBaseURL != "" {
		client, err := routing.NewClient(config.RoutingBaseURL, config.RoutingTimeout, cache.NewMemoryCache())
		if err != nil {
			return nil, err
		}
		routeClient = client
	}

	estimator, err := services.NewDistanceEstimator(routeClient, config.RoutingTimeout, logger)
	if err != nil {
		return nil, err
	}

	zoneRepo := zonerepo.NewGormZoneRepository(gormDB)
	zones, err := services.NewZoneDirectory(zoneRepo)
	if err != nil {
		return nil, err
	}

	quoteEngine, err := services.NewQuoteEngine(zones, zoneRepo, estimator, zone.Rates{
		Base:             config.DefaultBaseRate,
		PerKg:            config.DefaultPerKgRate,
		PerKm:            config.DefaultPerKmRate,
		IncludedWeightKg: config.DefaultIncludedWeightKg,
	})
	if err != nil {
		return nil, err
	}

	quoteHandler, err := queries.NewGetPriceQuoteQueryHandler(quoteEngine)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:     notify.NewSlogNotifier(logger),
		ledger:       earningrepo.NewGormEarningLedger(gormDB),
		quoteEngine:  quoteEngine,
		quoteHandler: quoteHandler,
		logger:       logger,
	}, nil
}

// NewHTTPServer builds the inbound REST adapter with every handler wired.
func (c *CompositionRoot) NewHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateDelivery:  c.CreateCreateDeliveryCommandHandler(),
		AssignCourier:   c.CreateAssignCourierCommandHandler(),
		AutoAssign:      c.CreateAutoAssignCourierCommandHandler(),
		AcceptDelivery:  c.CreateAcceptDeliveryCommandHandler(),
		RejectDelivery:  c.CreateRejectDeliveryCommandHandler(),
		ConfirmPickup:   c.CreateConfirmPickupCommandHandler(),
		ConfirmDelivery: c.CreateConfirmDeliveryCommandHandler(),
		CancelDelivery:  c.CreateCancelDeliveryCommandHandler(),
		ReassignCourier: c.CreateReassignDeliveryCommandHandler(),

		GetPriceQuote:         c.CreateGetPriceQuoteQueryHandler(),
		GetActiveDeliveries:   c.CreateGetActiveDeliveriesQueryHandler(),
		GetAvailableCouriers:  c.CreateGetAvailableCouriersQueryHandler(),
		GetDeliveryByTracking: c.CreateGetDeliveryByTrackingQueryHandler(),
	})
}

// NewJobManager builds the background job manager.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAutoAssignCourierCommandHandler(),
		c.config.AutoAssignSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.quoteEngine)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.crossAggregateUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAutoAssignCourierCommandHandler() commands.AutoAssignCourierCommandHandler {
	return commands.NewAutoAssignCourierCommandHandler(c.crossAggregateUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.crossAggregateUoWFactory())
}

func (c *CompositionRoot) CreateRejectDeliveryCommandHandler() commands.RejectDeliveryCommandHandler {
	return commands.NewRejectDeliveryCommandHandler(c.crossAggregateUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(
		c.crossAggregateUoWFactory(), c.notifier, c.config.PickupProximityKm)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.crossAggregateUoWFactory(), c.notifier, c.ledger)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.crossAggregateUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReassignDeliveryCommandHandler() commands.ReassignDeliveryCommandHandler {
	return commands.NewReassignDeliveryCommandHandler(c.crossAggregateUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetPriceQuoteQueryHandler() queries.GetPriceQuoteQueryHandler {
	return c.quoteHandler
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryByTrackingQueryHandler() queries.GetDeliveryByTrackingQueryHandler {
	return queries.NewGetDeliveryByTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) crossAggregateUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
