package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/production"
)

// RevertProductionCommandHandler records a revision: the tracking appends a
// revision update and the order moves IN_PRODUCTION -> PRODUCTION_REVISION.
// An order already in revision stays there.
type RevertProductionCommandHandler struct {
	uowFactory ProductionUoWFactory
	registry   *lifecycle.Registry
}

func NewRevertProductionCommandHandler(uowFactory ProductionUoWFactory, registry *lifecycle.Registry) RevertProductionCommandHandler {
	return RevertProductionCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h RevertProductionCommandHandler) Handle(ctx context.Context, cmd RevertProductionCommand) (*production.Tracking, error) {
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
	if err = authorize(o, cmd.Role(), cmd.ActorID(), "REVERT"); err != nil {
		return nil, err
	}

	t := now()
	if err = tracking.Revert(cmd.ToStage(), cmd.Reason(), cmd.ActorID(), t); err != nil {
		return nil, err
	}
	if o.Status() == lifecycle.StatusProductionRevision {
		o.Touch(t)
	} else if err = o.Transition(h.registry, lifecycle.ActionRequestRevision, cmd.Role(), nil, t); err != nil {
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
