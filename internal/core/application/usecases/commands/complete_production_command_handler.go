package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/production"
)

// CompleteProductionCommandHandler finishes production and moves the order to
// PRODUCTION_COMPLETE, which stamps its actual production end.
type CompleteProductionCommandHandler struct {
	uowFactory ProductionUoWFactory
	registry   *lifecycle.Registry
}

func NewCompleteProductionCommandHandler(
	uowFactory ProductionUoWFactory,
	registry *lifecycle.Registry,
) CompleteProductionCommandHandler {
	return CompleteProductionCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h CompleteProductionCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteProductionCommand,
) (*production.Tracking, error) {
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
	if err = authorize(o, lifecycle.RoleManufacturer, &actor, "COMPLETE"); err != nil {
		return nil, err
	}

	t := now()
	if err = tracking.Complete(actor, cmd.Report(), t); err != nil {
		return nil, err
	}
	if err = resumeProduction(ctx, uow, h.registry, o, t); err != nil {
		return nil, err
	}
	if err = o.Transition(h.registry, lifecycle.ActionCompleteProduction, lifecycle.RoleManufacturer, nil, t); err != nil {
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
