package commands

import (
	"context"

	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/services"
)

// ProposeNegotiationCommandHandler opens a pricing round.
//
// The superseded round is written before the new one is inserted, so the
// single-pending index never sees two PENDING rows. The order row is written
// last with its version check.
type ProposeNegotiationCommandHandler struct {
	uowFactory NegotiationUoWFactory
	engine     *services.NegotiationEngine
}

func NewProposeNegotiationCommandHandler(
	uowFactory NegotiationUoWFactory,
	engine *services.NegotiationEngine,
) ProposeNegotiationCommandHandler {
	return ProposeNegotiationCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h ProposeNegotiationCommandHandler) Handle(
	ctx context.Context,
	cmd ProposeNegotiationCommand,
) (*negotiation.Negotiation, error) {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	active, err := negotiationRepo.FindPending(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	rounds, err := negotiationRepo.CountByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	n, err := h.engine.Propose(o, active, services.ProposeRequest{
		Role:     cmd.Role(),
		SenderID: cmd.SenderID(),
		Proposal: cmd.Proposal(),
		Round:    rounds + 1,
	}, now())
	if err != nil {
		return nil, err
	}

	if active != nil {
		if err = negotiationRepo.Update(ctx, active); err != nil {
			return nil, err
		}
	}
	if err = negotiationRepo.Add(ctx, n); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}
