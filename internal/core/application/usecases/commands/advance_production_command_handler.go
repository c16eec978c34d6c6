package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/pkg/errs"
)

// AdvanceProductionCommandHandler moves production forward.
//
// The order follows: the first advance after plan approval starts production
// (START_PRODUCTION, deposit-gated for orders), and an advance after a
// revision resumes it (RESUME_PRODUCTION).
type AdvanceProductionCommandHandler struct {
	uowFactory ProductionUoWFactory
	registry   *lifecycle.Registry
}

func NewAdvanceProductionCommandHandler(uowFactory ProductionUoWFactory, registry *lifecycle.Registry) AdvanceProductionCommandHandler {
	return AdvanceProductionCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h AdvanceProductionCommandHandler) Handle(ctx context.Context, cmd AdvanceProductionCommand) (*production.Tracking, error) {
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
	if err = authorize(o, lifecycle.RoleManufacturer, &actor, "ADVANCE"); err != nil {
		return nil, err
	}

	t := now()
	if err = tracking.Advance(cmd.ToStage(), actor, cmd.Report(), cmd.Override(), t); err != nil {
		return nil, err
	}
	if err = resumeProduction(ctx, uow, h.registry, o, t); err != nil {
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

// resumeProduction brings the order to IN_PRODUCTION before a forward stage
// move. Stage moves are refused while the order is anywhere else.
func resumeProduction(ctx context.Context, uow ProductionUoW, registry *lifecycle.Registry, o *order.Order, t time.Time) error {
	switch o.Status() { //nolint:exhaustive // production statuses only
	case lifecycle.StatusProductionPlanApproved:
		return transitionGated(ctx, uow, registry, o, lifecycle.ActionStartProduction, lifecycle.RoleManufacturer, t)
	case lifecycle.StatusProductionRevision:
		return o.Transition(registry, lifecycle.ActionResumeProduction, lifecycle.RoleManufacturer, nil, t)
	case lifecycle.StatusInProduction:
		o.Touch(t)
		return nil
	}
	return errs.NewIllegalTransitionError(o.Kind().String(), o.Status().String(), "MOVE_PRODUCTION")
}
