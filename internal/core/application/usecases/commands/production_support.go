package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/production"
)

// loadProduction reads a tracking and the order it belongs to. The tracking
// is read again once the order row is locked.
func loadProduction(ctx context.Context, uow ProductionUoW, trackingID kernel.UUID) (*order.Order, *production.Tracking, error) {
	tracking, err := uow.TrackingRepository().Get(ctx, trackingID)
	if err != nil {
		return nil, nil, err
	}
	o, err := uow.OrderRepository().Get(ctx, tracking.OrderID())
	if err != nil {
		return nil, nil, err
	}
	if tracking, err = uow.TrackingRepository().Get(ctx, trackingID); err != nil {
		return nil, nil, err
	}
	return o, tracking, nil
}

// saveProduction writes the tracking, then the order with its version check.
func saveProduction(ctx context.Context, uow ProductionUoW, o *order.Order, tracking *production.Tracking) error {
	if err := uow.TrackingRepository().Update(ctx, tracking); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}

// transitionGated takes a possibly payment-gated action on the order.
func transitionGated(
	ctx context.Context,
	uow ProductionUoW,
	registry *lifecycle.Registry,
	o *order.Order,
	action lifecycle.Action,
	role lifecycle.Role,
	t time.Time,
) error {
	ledger, err := loadLedger(ctx, uow.PaymentRepository(), o)
	if err != nil {
		return err
	}
	return o.Transition(registry, action, role, ledger, t)
}
