package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/production"
)

// ProductionPlanCommandHandler runs the plan approval workflow. The order
// follows the plan: PRODUCTION_PLAN_SENT, _APPROVED or _REJECTED. Approving an
// order's plan needs the deposit confirmed.
type ProductionPlanCommandHandler struct {
	uowFactory ProductionUoWFactory
	registry   *lifecycle.Registry
}

func NewProductionPlanCommandHandler(uowFactory ProductionUoWFactory, registry *lifecycle.Registry) ProductionPlanCommandHandler {
	return ProductionPlanCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h ProductionPlanCommandHandler) Handle(ctx context.Context, cmd ProductionPlanCommand) (*production.Tracking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, tracking, err := loadProduction(ctx, uow, cmd.TrackingID())
	if err != nil {
		return nil, err
	}
	actor := cmd.ActorID()
	role := cmd.Step().Role()
	if err = authorize(o, role, &actor, string(cmd.Step())+"_PLAN"); err != nil {
		return nil, err
	}

	t := now()
	switch cmd.Step() {
	case PlanStepSend:
		err = tracking.SendPlan(cmd.Text(), t)
	case PlanStepApprove:
		err = tracking.ApprovePlan(t)
	case PlanStepReject:
		err = tracking.RejectPlan(cmd.Text(), t)
	}
	if err != nil {
		return nil, err
	}
	if err = transitionGated(ctx, uow, h.registry, o, cmd.Step().action(), role, t); err != nil {
		return nil, err
	}

	if err = saveProduction(ctx, uow, o, tracking); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tracking, nil
}
