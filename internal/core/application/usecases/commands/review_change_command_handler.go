package commands

import (
	"context"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/services"
)

// ReviewChangeCommandHandler stamps the review and, for NEEDS_NEGOTIATION
// with a trigger, opens the change-linked round in the same transaction.
//
// Write order: superseded round, new round, change log (which points at the
// new round), order.
type ReviewChangeCommandHandler struct {
	uowFactory ChangeUoWFactory
	auditor    *services.ChangeAuditor
}

func NewReviewChangeCommandHandler(uowFactory ChangeUoWFactory, auditor *services.ChangeAuditor) ReviewChangeCommandHandler {
	return ReviewChangeCommandHandler{
		uowFactory: uowFactory,
		auditor:    auditor,
	}
}

func (h ReviewChangeCommandHandler) Handle(ctx context.Context, cmd ReviewChangeCommand) (*changelog.ChangeLog, error) {
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
	changeLogRepo := uow.ChangeLogRepository()

	log, err := changeLogRepo.Get(ctx, cmd.ChangeLogID())
	if err != nil {
		return nil, err
	}
	o, err := orderRepo.Get(ctx, log.OrderID())
	if err != nil {
		return nil, err
	}
	if log, err = changeLogRepo.Get(ctx, log.ID()); err != nil {
		return nil, err
	}

	var active *negotiation.Negotiation
	rounds := 0
	spawns := cmd.Decision() == changelog.ReviewNeedsNegotiation && cmd.TriggerNegotiation()
	if spawns {
		if active, err = negotiationRepo.FindPending(ctx, o.ID()); err != nil {
			return nil, err
		}
		if rounds, err = negotiationRepo.CountByOrder(ctx, o.ID()); err != nil {
			return nil, err
		}
	}

	n, err := h.auditor.Review(o, log, active, services.ReviewRequest{
		Role:               cmd.Role(),
		ReviewerID:         cmd.ReviewerID(),
		Decision:           cmd.Decision(),
		Response:           cmd.Response(),
		TriggerNegotiation: cmd.TriggerNegotiation(),
		Round:              rounds + 1,
	}, now())
	if err != nil {
		return nil, err
	}

	if n != nil {
		if active != nil {
			if err = negotiationRepo.Update(ctx, active); err != nil {
				return nil, err
			}
		}
		if err = negotiationRepo.Add(ctx, n); err != nil {
			return nil, err
		}
	}
	if err = changeLogRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return log, nil
}
