package cmd

import (
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/badgerjournal"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	journal    *badgerjournal.Journal
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *lifecycle.Registry
	engine     *services.NegotiationEngine
	scheduler  *payment.Scheduler
	logger     *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	journal *badgerjournal.Journal,
	logger *slog.Logger,
) (CompositionRoot, error) {
	scheduler, err := payment.NewScheduler(payment.Policy{
		ProgressPercent: cfg.ProgressPercent,
		DepositDueDays:  cfg.DepositDueDays,
	})
	if err != nil {
		return CompositionRoot{}, err
	}
	registry := lifecycle.Default()

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		journal:    journal,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, journal, logger),
		registry:   registry,
		engine:     services.NewNegotiationEngine(registry, cfg.NegotiationTTL),
		scheduler:  scheduler,
		logger:     logger,
	}, nil
}

// Unit of work factories narrowed to what each handler needs.

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) negotiationUoWs() commands.NegotiationUoWFactory {
	return FuncNegotiationUoWFactory(func() commands.NegotiationUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) changeUoWs() commands.ChangeUoWFactory {
	return FuncChangeUoWFactory(func() commands.ChangeUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) productionUoWs() commands.ProductionUoWFactory {
	return FuncProductionUoWFactory(func() commands.ProductionUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) paymentUoWs() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

// Command handlers

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs(), c.cfg.DepositPercent)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.uows(), c.registry)
}

func (c *CompositionRoot) CreateOverrideStatusCommandHandler() commands.OverrideStatusCommandHandler {
	return commands.NewOverrideStatusCommandHandler(c.orderUoWs(), c.registry)
}

func (c *CompositionRoot) CreateProposeNegotiationCommandHandler() commands.ProposeNegotiationCommandHandler {
	return commands.NewProposeNegotiationCommandHandler(c.negotiationUoWs(), c.engine)
}

func (c *CompositionRoot) CreateRespondNegotiationCommandHandler() commands.RespondNegotiationCommandHandler {
	return commands.NewRespondNegotiationCommandHandler(c.negotiationUoWs(), c.engine)
}

func (c *CompositionRoot) CreateExpireNegotiationsCommandHandler() commands.ExpireNegotiationsCommandHandler {
	return commands.NewExpireNegotiationsCommandHandler(c.negotiationUoWs(), c.engine)
}

func (c *CompositionRoot) CreateRecordChangeCommandHandler() commands.RecordChangeCommandHandler {
	return commands.NewRecordChangeCommandHandler(c.changeUoWs(), services.NewChangeAuditor(c.engine))
}

func (c *CompositionRoot) CreateReviewChangeCommandHandler() commands.ReviewChangeCommandHandler {
	return commands.NewReviewChangeCommandHandler(c.changeUoWs(), services.NewChangeAuditor(c.engine))
}

func (c *CompositionRoot) CreateCreateProductionTrackingCommandHandler() commands.CreateProductionTrackingCommandHandler {
	return commands.NewCreateProductionTrackingCommandHandler(c.productionUoWs(), c.registry)
}

func (c *CompositionRoot) CreateProductionPlanCommandHandler() commands.ProductionPlanCommandHandler {
	return commands.NewProductionPlanCommandHandler(c.productionUoWs(), c.registry)
}

func (c *CompositionRoot) CreateAdvanceProductionCommandHandler() commands.AdvanceProductionCommandHandler {
	return commands.NewAdvanceProductionCommandHandler(c.productionUoWs(), c.registry)
}

func (c *CompositionRoot) CreateRevertProductionCommandHandler() commands.RevertProductionCommandHandler {
	return commands.NewRevertProductionCommandHandler(c.productionUoWs(), c.registry)
}

func (c *CompositionRoot) CreateCompleteProductionCommandHandler() commands.CompleteProductionCommandHandler {
	return commands.NewCompleteProductionCommandHandler(c.productionUoWs(), c.registry)
}

func (c *CompositionRoot) CreateChangeProductionStatusCommandHandler() commands.ChangeProductionStatusCommandHandler {
	return commands.NewChangeProductionStatusCommandHandler(c.productionUoWs())
}

func (c *CompositionRoot) CreateSchedulePaymentsCommandHandler() commands.SchedulePaymentsCommandHandler {
	return commands.NewSchedulePaymentsCommandHandler(c.paymentUoWs(), c.scheduler, c.registry)
}

func (c *CompositionRoot) CreateUploadReceiptCommandHandler() commands.UploadReceiptCommandHandler {
	return commands.NewUploadReceiptCommandHandler(c.paymentUoWs())
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.paymentUoWs(), c.registry)
}

func (c *CompositionRoot) CreateRejectPaymentCommandHandler() commands.RejectPaymentCommandHandler {
	return commands.NewRejectPaymentCommandHandler(c.paymentUoWs())
}

func (c *CompositionRoot) CreateMarkOverduePaymentsCommandHandler() commands.MarkOverduePaymentsCommandHandler {
	return commands.NewMarkOverduePaymentsCommandHandler(c.paymentUoWs())
}

// Query handlers

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.registry)
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListChangeLogsQueryHandler() queries.ListChangeLogsQueryHandler {
	return queries.NewListChangeLogsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductionTrackingQueryHandler() queries.GetProductionTrackingQueryHandler {
	return queries.NewGetProductionTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPaymentsQueryHandler() queries.ListPaymentsQueryHandler {
	return queries.NewListPaymentsQueryHandler(c.gormDB)
}

// Inbound adapters and jobs

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		TransitionOrder:        c.CreateTransitionOrderCommandHandler(),
		OverrideStatus:         c.CreateOverrideStatusCommandHandler(),
		ProposeNegotiation:     c.CreateProposeNegotiationCommandHandler(),
		RespondNegotiation:     c.CreateRespondNegotiationCommandHandler(),
		RecordChange:           c.CreateRecordChangeCommandHandler(),
		ReviewChange:           c.CreateReviewChangeCommandHandler(),
		CreateTracking:         c.CreateCreateProductionTrackingCommandHandler(),
		ProductionPlan:         c.CreateProductionPlanCommandHandler(),
		AdvanceProduction:      c.CreateAdvanceProductionCommandHandler(),
		RevertProduction:       c.CreateRevertProductionCommandHandler(),
		CompleteProduction:     c.CreateCompleteProductionCommandHandler(),
		ChangeProductionStatus: c.CreateChangeProductionStatusCommandHandler(),
		SchedulePayments:       c.CreateSchedulePaymentsCommandHandler(),
		UploadReceipt:          c.CreateUploadReceiptCommandHandler(),
		ConfirmPayment:         c.CreateConfirmPaymentCommandHandler(),
		RejectPayment:          c.CreateRejectPaymentCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListActiveOrders:      c.CreateListActiveOrdersQueryHandler(),
		ListChangeLogs:        c.CreateListChangeLogsQueryHandler(),
		GetProductionTracking: c.CreateGetProductionTrackingQueryHandler(),
		ListPayments:          c.CreateListPaymentsQueryHandler(),
	}, c.journal, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireNegotiationsCommandHandler(),
		c.CreateMarkOverduePaymentsCommandHandler(),
		c.cfg.SweepSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNegotiationUoWFactory func() commands.NegotiationUoW

func (f FuncNegotiationUoWFactory) Create() commands.NegotiationUoW {
	return f()
}

type FuncChangeUoWFactory func() commands.ChangeUoW

func (f FuncChangeUoWFactory) Create() commands.ChangeUoW {
	return f()
}

type FuncProductionUoWFactory func() commands.ProductionUoW

func (f FuncProductionUoWFactory) Create() commands.ProductionUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
