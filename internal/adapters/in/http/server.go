package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/production"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 50

// EventLister reads the journaled events of one order.
type EventLister interface {
	ListByAggregate(ctx context.Context, aggregateID kernel.UUID) ([]kernel.Event, error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	// Command handlers
	CreateOrder            commands.CreateOrderCommandHandler
	TransitionOrder        commands.TransitionOrderCommandHandler
	OverrideStatus         commands.OverrideStatusCommandHandler
	ProposeNegotiation     commands.ProposeNegotiationCommandHandler
	RespondNegotiation     commands.RespondNegotiationCommandHandler
	RecordChange           commands.RecordChangeCommandHandler
	ReviewChange           commands.ReviewChangeCommandHandler
	CreateTracking         commands.CreateProductionTrackingCommandHandler
	ProductionPlan         commands.ProductionPlanCommandHandler
	AdvanceProduction      commands.AdvanceProductionCommandHandler
	RevertProduction       commands.RevertProductionCommandHandler
	CompleteProduction     commands.CompleteProductionCommandHandler
	ChangeProductionStatus commands.ChangeProductionStatusCommandHandler
	SchedulePayments       commands.SchedulePaymentsCommandHandler
	UploadReceipt          commands.UploadReceiptCommandHandler
	ConfirmPayment         commands.ConfirmPaymentCommandHandler
	RejectPayment          commands.RejectPaymentCommandHandler

	// Query handlers
	GetOrder              queries.GetOrderQueryHandler
	ListActiveOrders      queries.ListActiveOrdersQueryHandler
	ListChangeLogs        queries.ListChangeLogsQueryHandler
	GetProductionTracking queries.GetProductionTrackingQueryHandler
	ListPayments          queries.ListPaymentsQueryHandler
}

// Server exposes the lifecycle use cases over REST.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	events EventLister
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, events EventLister, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, events: events, logger: logger.With("component", "http")}
}

// Register mounts the API on e behind the OpenAPI request validator.
func (s *Server) Register(e *echo.Echo, validator echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", serveOpenAPI)

	api := e.Group("/api/v1")
	if validator != nil {
		api.Use(validator)
	}

	api.GET("/orders", s.ListActiveOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/actions", s.TransitionOrder)
	api.POST("/orders/:orderId/override", s.OverrideStatus)
	api.GET("/orders/:orderId/events", s.ListOrderEvents)

	api.POST("/orders/:orderId/negotiations", s.ProposeNegotiation)
	api.POST("/negotiations/:negotiationId/response", s.RespondNegotiation)

	api.GET("/orders/:orderId/changes", s.ListChangeLogs)
	api.POST("/orders/:orderId/changes", s.RecordChange)
	api.POST("/changes/:changeLogId/review", s.ReviewChange)

	api.GET("/orders/:orderId/production", s.GetProductionTracking)
	api.POST("/orders/:orderId/production", s.CreateProductionTracking)
	api.POST("/production/:trackingId/plan", s.ProductionPlan)
	api.POST("/production/:trackingId/advance", s.AdvanceProduction)
	api.POST("/production/:trackingId/revert", s.RevertProduction)
	api.POST("/production/:trackingId/complete", s.CompleteProduction)
	api.POST("/production/:trackingId/status", s.ChangeProductionStatus)

	api.GET("/orders/:orderId/payments", s.ListPayments)
	api.POST("/orders/:orderId/payments", s.SchedulePayments)
	api.POST("/payments/:paymentId/receipt", s.UploadReceipt)
	api.POST("/payments/:paymentId/confirm", s.ConfirmPayment)
	api.POST("/payments/:paymentId/reject", s.RejectPayment)
}

// CreateOrder handles POST /api/v1/orders - opens a PENDING order or sample.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := lifecycle.ParseEntityKind(req.Kind)
	if err != nil {
		return s.writeError(ctx, err)
	}
	customerID, err := kernel.UUIDFromGoogle(req.CustomerID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	manufacturerID, err := kernel.UUIDFromGoogle(req.ManufacturerID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	currency, err := kernel.NewCurrency(req.Currency)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kind, customerID, manufacturerID, order.Terms{
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		Currency:       currency,
		ProductionDays: req.ProductionDays,
		Deadline:       req.Deadline,
		Specifications: req.Specifications,
		Notes:          req.Notes,
	}, req.DepositPercent)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, presentOrder(o))
}

// ListActiveOrders handles GET /api/v1/orders - the acting party's open orders.
func (s *Server) ListActiveOrders(ctx echo.Context) error {
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	limit := defaultListLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return badRequest(ctx, "limit must be an integer")
		}
	}

	query, err := queries.NewListActiveOrdersQuery(a.role, a.accountID(), limit)
	if err != nil {
		return s.writeError(ctx, err)
	}
	orders, err := s.h.ListActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	type item struct {
		ID         string          `json:"id"`
		Kind       string          `json:"kind"`
		Status     string          `json:"status"`
		Quantity   int             `json:"quantity"`
		TotalPrice decimal.Decimal `json:"totalPrice"`
		Currency   string          `json:"currency"`
		UpdatedAt  time.Time       `json:"updatedAt"`
	}
	response := make([]item, len(orders))
	for i, o := range orders {
		response[i] = item{
			ID:         o.ID.String(),
			Kind:       o.Kind.String(),
			Status:     o.Status.String(),
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice,
			Currency:   o.Currency.String(),
			UpdatedAt:  o.UpdatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	resp, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/actions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	action, err := lifecycle.ParseAction(req.Action)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, action, a.role, a.id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	o, err := s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentOrder(o))
}

// OverrideStatus handles POST /api/v1/orders/{orderId}/override - admin only.
func (s *Server) OverrideStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req OverrideRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	target, err := lifecycle.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewOverrideStatusCommand(orderID, target, a.role)
	if err != nil {
		return s.writeError(ctx, err)
	}
	o, err := s.h.OverrideStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentOrder(o))
}

// ListOrderEvents handles GET /api/v1/orders/{orderId}/events.
func (s *Server) ListOrderEvents(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	if s.events == nil {
		return ctx.JSON(http.StatusOK, []EventView{})
	}
	events, err := s.events.ListByAggregate(ctx.Request().Context(), orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentEvents(events))
}

// ProposeNegotiation handles POST /api/v1/orders/{orderId}/negotiations.
func (s *Server) ProposeNegotiation(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req ProposalRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewProposeNegotiationCommand(orderID, a.role, a.accountID(), negotiation.Proposal{
		UnitPrice:      req.UnitPrice,
		ProductionDays: req.ProductionDays,
		Quantity:       req.Quantity,
		Message:        req.Message,
	})
	if err != nil {
		return s.writeError(ctx, err)
	}
	n, err := s.h.ProposeNegotiation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, presentNegotiation(n))
}

// RespondNegotiation handles POST /api/v1/negotiations/{negotiationId}/response.
func (s *Server) RespondNegotiation(ctx echo.Context) error {
	negotiationID, err := pathUUID(ctx, "negotiationId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req DecisionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	decision, err := negotiation.ParseDecision(req.Decision)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewRespondNegotiationCommand(negotiationID, a.role, a.accountID(), decision)
	if err != nil {
		return s.writeError(ctx, err)
	}
	o, err := s.h.RespondNegotiation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentOrder(o))
}

// ListChangeLogs handles GET /api/v1/orders/{orderId}/changes.
func (s *Server) ListChangeLogs(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewListChangeLogsQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	logs, err := s.h.ListChangeLogs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, logs)
}

// RecordChange handles POST /api/v1/orders/{orderId}/changes.
func (s *Server) RecordChange(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req NewChange
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	changeType, err := changelog.ParseChangeType(req.ChangeType)
	if err != nil {
		return s.writeError(ctx, err)
	}
	change, err := changelog.FromValues(changeType, req.PreviousValues, req.NewValues)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewRecordChangeCommand(orderID, a.role, a.accountID(), change, req.Reason)
	if err != nil {
		return s.writeError(ctx, err)
	}
	log, err := s.h.RecordChange.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.writeChangeLog(ctx, http.StatusCreated, log)
}

// ReviewChange handles POST /api/v1/changes/{changeLogId}/review.
func (s *Server) ReviewChange(ctx echo.Context) error {
	changeLogID, err := pathUUID(ctx, "changeLogId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req ReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	decision, err := changelog.ParseReviewStatus(req.Decision)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewReviewChangeCommand(changeLogID, a.role, a.accountID(), decision, req.Response,
		req.TriggerNegotiation)
	if err != nil {
		return s.writeError(ctx, err)
	}
	log, err := s.h.ReviewChange.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.writeChangeLog(ctx, http.StatusOK, log)
}

func (s *Server) writeChangeLog(ctx echo.Context, status int, log *changelog.ChangeLog) error {
	view, err := presentChangeLog(log)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(status, view)
}

// GetProductionTracking handles GET /api/v1/orders/{orderId}/production.
func (s *Server) GetProductionTracking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetProductionTrackingQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	tracking, err := s.h.GetProductionTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, tracking)
}

// CreateProductionTracking handles POST /api/v1/orders/{orderId}/production.
func (s *Server) CreateProductionTracking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCreateProductionTrackingCommand(kernel.NewUUID(), orderID, a.accountID())
	if err != nil {
		return s.writeError(ctx, err)
	}
	tracking, err := s.h.CreateTracking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, presentTracking(tracking))
}

// ProductionPlan handles POST /api/v1/production/{trackingId}/plan.
func (s *Server) ProductionPlan(ctx echo.Context) error {
	trackingID, err := pathUUID(ctx, "trackingId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req PlanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewProductionPlanCommand(trackingID, commands.PlanStep(req.Step), a.accountID(), req.Text)
	if err != nil {
		return s.writeError(ctx, err)
	}
	tracking, err := s.h.ProductionPlan.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentTracking(tracking))
}

// AdvanceProduction handles POST /api/v1/production/{trackingId}/advance.
func (s *Server) AdvanceProduction(ctx echo.Context) error {
	trackingID, err := pathUUID(ctx, "trackingId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req AdvanceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	stage, err := production.ParseStage(req.ToStage)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceProductionCommand(trackingID, stage, a.accountID(), req.toDomain(), req.Override)
	if err != nil {
		return s.writeError(ctx, err)
	}
	tracking, err := s.h.AdvanceProduction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentTracking(tracking))
}

// RevertProduction handles POST /api/v1/production/{trackingId}/revert.
func (s *Server) RevertProduction(ctx echo.Context) error {
	trackingID, err := pathUUID(ctx, "trackingId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req RevertRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	stage, err := production.ParseStage(req.ToStage)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewRevertProductionCommand(trackingID, stage, req.Reason, a.role, a.id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	tracking, err := s.h.RevertProduction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentTracking(tracking))
}

// CompleteProduction handles POST /api/v1/production/{trackingId}/complete.
func (s *Server) CompleteProduction(ctx echo.Context) error {
	trackingID, err := pathUUID(ctx, "trackingId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req StageReport
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteProductionCommand(trackingID, a.accountID(), req.toDomain())
	if err != nil {
		return s.writeError(ctx, err)
	}
	tracking, err := s.h.CompleteProduction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentTracking(tracking))
}

// ChangeProductionStatus handles POST /api/v1/production/{trackingId}/status.
func (s *Server) ChangeProductionStatus(ctx echo.Context) error {
	trackingID, err := pathUUID(ctx, "trackingId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req ProductionStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	target, err := production.ParseOverallStatus(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeProductionStatusCommand(trackingID, target, req.Reason, a.role, a.id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	tracking, err := s.h.ChangeProductionStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentTracking(tracking))
}

// ListPayments handles GET /api/v1/orders/{orderId}/payments.
func (s *Server) ListPayments(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewListPaymentsQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	resp, err := s.h.ListPayments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// SchedulePayments handles POST /api/v1/orders/{orderId}/payments.
func (s *Server) SchedulePayments(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSchedulePaymentsCommand(orderID, a.role, a.id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	scheduled, err := s.h.SchedulePayments.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	response := make([]queries.PaymentView, len(scheduled))
	for i, p := range scheduled {
		response[i] = presentPayment(p)
	}
	return ctx.JSON(http.StatusCreated, response)
}

// UploadReceipt handles POST /api/v1/payments/{paymentId}/receipt.
func (s *Server) UploadReceipt(ctx echo.Context) error {
	paymentID, err := pathUUID(ctx, "paymentId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req ReceiptRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUploadReceiptCommand(paymentID, req.ReceiptURL, payment.Method(req.Method), a.accountID())
	if err != nil {
		return s.writeError(ctx, err)
	}
	p, err := s.h.UploadReceipt.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentPayment(p))
}

// ConfirmPayment handles POST /api/v1/payments/{paymentId}/confirm.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	paymentID, err := pathUUID(ctx, "paymentId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(paymentID, a.role, a.accountID())
	if err != nil {
		return s.writeError(ctx, err)
	}
	p, err := s.h.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentPayment(p))
}

// RejectPayment handles POST /api/v1/payments/{paymentId}/reject.
func (s *Server) RejectPayment(ctx echo.Context) error {
	paymentID, err := pathUUID(ctx, "paymentId")
	if err != nil {
		return s.writeError(ctx, err)
	}
	a, err := actorFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req RejectPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectPaymentCommand(paymentID, a.role, a.accountID(), req.Reason)
	if err != nil {
		return s.writeError(ctx, err)
	}
	p, err := s.h.RejectPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, presentPayment(p))
}
