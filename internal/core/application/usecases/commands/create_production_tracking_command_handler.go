package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/pkg/errs"
)

// CreateProductionTrackingCommandHandler creates the tracking and moves the
// order to PRODUCTION_PLAN_PREPARING unless the manufacturer already did.
type CreateProductionTrackingCommandHandler struct {
	uowFactory ProductionUoWFactory
	registry   *lifecycle.Registry
}

func NewCreateProductionTrackingCommandHandler(
	uowFactory ProductionUoWFactory,
	registry *lifecycle.Registry,
) CreateProductionTrackingCommandHandler {
	return CreateProductionTrackingCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h CreateProductionTrackingCommandHandler) Handle(
	ctx context.Context,
	cmd CreateProductionTrackingCommand,
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

	orderRepo := uow.OrderRepository()
	trackingRepo := uow.TrackingRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	manufacturer := cmd.ManufacturerID()
	if err = authorize(o, lifecycle.RoleManufacturer, &manufacturer, "CREATE_TRACKING"); err != nil {
		return nil, err
	}

	existing, err := trackingRepo.GetByOrder(ctx, o.ID())
	switch {
	case err == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("order %s already has tracking %s", o.ID(), existing.ID()))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	t := now()
	if o.Status() != lifecycle.StatusProductionPlanPreparing {
		ledger, ledgerErr := loadLedger(ctx, uow.PaymentRepository(), o)
		if ledgerErr != nil {
			return nil, ledgerErr
		}
		if err = o.Transition(h.registry, lifecycle.ActionPreparePlan, lifecycle.RoleManufacturer, ledger, t); err != nil {
			return nil, err
		}
	}

	tracking, err := production.NewTracking(cmd.TrackingID(), o.ID(), o.Kind(), t)
	if err != nil {
		return nil, err
	}

	if err = trackingRepo.Add(ctx, tracking); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tracking, nil
}
