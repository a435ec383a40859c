package cmd

import (
	"log/slog"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/incidentrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Infrastructure holds the outbound adapters main managed to connect.
// Locker and Publisher stay nil when their backends are not configured.
type Infrastructure struct {
	Gateway   ports.PaymentGateway
	Locker    ports.OrderLocker
	Publisher ports.OrderEventPublisher
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	Clock     func() time.Time
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	incidents  *incidentrepo.GormRefundIncidentRecorder
	infra      Infrastructure
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, infra Infrastructure) CompositionRoot {
	if infra.Logger == nil {
		infra.Logger = slog.Default()
	}
	if infra.Clock == nil {
		infra.Clock = time.Now
	}
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		incidents:  incidentrepo.NewGormRefundIncidentRecorder(gormDB),
		infra:      infra,
	}
}

func (c *CompositionRoot) Policy() order.TransitionPolicy {
	if c.cfg.StrictTransitions {
		return order.StrictPolicy()
	}
	return order.PermissivePolicy()
}

func (c *CompositionRoot) lifecycleDeps() commands.LifecycleDeps {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	deps := commands.LifecycleDeps{
		UoWFactory: f,
		Policy:     c.Policy(),
		Locker:     c.infra.Locker,
		Publisher:  c.infra.Publisher,
		Logger:     c.infra.Logger,
		Clock:      c.infra.Clock,
	}
	if c.infra.Metrics != nil {
		deps.Observer = c.infra.Metrics
	}
	return deps
}

func (c *CompositionRoot) CreateAdvanceToProcessingCommandHandler() commands.AdvanceToProcessingCommandHandler {
	return commands.NewAdvanceToProcessingCommandHandler(c.lifecycleDeps())
}

func (c *CompositionRoot) CreateMarkShippedCommandHandler() commands.MarkShippedCommandHandler {
	return commands.NewMarkShippedCommandHandler(c.lifecycleDeps())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.lifecycleDeps(), c.infra.Gateway, c.incidents)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveRefundIncidentCommandHandler() commands.ResolveRefundIncidentCommandHandler {
	return commands.NewResolveRefundIncidentCommandHandler(c.incidents, c.infra.Clock, c.infra.Logger)
}

func (c *CompositionRoot) CreateGetUnresolvedRefundIncidentsQueryHandler() queries.GetUnresolvedRefundIncidentsQueryHandler {
	return queries.NewGetUnresolvedRefundIncidentsQueryHandler(c.incidents)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.incidents, c.cfg.IncidentReportSchedule, c.infra.Logger)
}

// CreateRouter assembles the echo instance with every route of the service.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server, err := httpin.NewServer(
		c.CreateAdvanceToProcessingCommandHandler(),
		c.CreateMarkShippedCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderDetailsQueryHandler(),
		c.CreateResolveRefundIncidentCommandHandler(),
		c.CreateGetUnresolvedRefundIncidentsQueryHandler(),
		c.infra.Logger,
	)
	if err != nil {
		return nil, err
	}

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	routerCfg := httpin.RouterConfig{
		Server:  server,
		Logger:  c.infra.Logger,
		Swagger: swagger,
	}
	if c.infra.Metrics != nil {
		routerCfg.Metrics = c.infra.Metrics
	}
	return httpin.NewRouter(routerCfg), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
