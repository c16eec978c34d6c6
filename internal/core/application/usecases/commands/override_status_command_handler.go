package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
)

// OverrideStatusCommandHandler lets an admin put an order in any status of
// its kind. The registry refuses every other role.
type OverrideStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   *lifecycle.Registry
}

func NewOverrideStatusCommandHandler(uowFactory OrderUoWFactory, registry *lifecycle.Registry) OverrideStatusCommandHandler {
	return OverrideStatusCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h OverrideStatusCommandHandler) Handle(ctx context.Context, cmd OverrideStatusCommand) (*order.Order, error) {
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
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Override(h.registry, cmd.Target(), cmd.Role(), now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
