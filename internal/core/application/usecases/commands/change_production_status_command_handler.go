package commands

import (
	"context"

	"marketplace/internal/core/domain/model/production"
)

// ChangeProductionStatusCommandHandler pauses, resumes or cancels production.
// The order status is not moved; order holds and cancellations are lifecycle
// actions of their own.
type ChangeProductionStatusCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewChangeProductionStatusCommandHandler(uowFactory ProductionUoWFactory) ChangeProductionStatusCommandHandler {
	return ChangeProductionStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ChangeProductionStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeProductionStatusCommand,
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
	if err = authorize(o, cmd.Role(), cmd.ActorID(), string(cmd.Target())); err != nil {
		return nil, err
	}

	t := now()
	switch cmd.Target() { //nolint:exhaustive // COMPLETED is refused by the constructor
	case production.OverallWaiting, production.OverallBlocked:
		err = tracking.Hold(cmd.Target(), cmd.Reason(), t)
	case production.OverallInProgress:
		err = tracking.Resume(t)
	case production.OverallCancelled:
		err = tracking.Cancel(cmd.Reason(), t)
	}
	if err != nil {
		return nil, err
	}
	o.Touch(t)

	if err = saveProduction(ctx, uow, o, tracking); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tracking, nil
}
