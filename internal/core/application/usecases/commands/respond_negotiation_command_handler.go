package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// RespondNegotiationCommandHandler applies the counterparty's answer and
// returns the order as it stands afterwards.
type RespondNegotiationCommandHandler struct {
	uowFactory NegotiationUoWFactory
	engine     *services.NegotiationEngine
}

func NewRespondNegotiationCommandHandler(
	uowFactory NegotiationUoWFactory,
	engine *services.NegotiationEngine,
) RespondNegotiationCommandHandler {
	return RespondNegotiationCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h RespondNegotiationCommandHandler) Handle(ctx context.Context, cmd RespondNegotiationCommand) (*order.Order, error) {
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
	negotiationRepo := uow.NegotiationRepository()

	n, err := negotiationRepo.Get(ctx, cmd.NegotiationID())
	if err != nil {
		return nil, err
	}
	o, err := orderRepo.Get(ctx, n.OrderID())
	if err != nil {
		return nil, err
	}
	// the order row is locked now; read the round again under the lock
	if n, err = negotiationRepo.Get(ctx, n.ID()); err != nil {
		return nil, err
	}

	responder := cmd.ResponderID()
	if err = h.engine.Respond(o, n, cmd.Decision(), cmd.Role(), &responder, now()); err != nil {
		return nil, err
	}

	if err = negotiationRepo.Update(ctx, n); err != nil {
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
