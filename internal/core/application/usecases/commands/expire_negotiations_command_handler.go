package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ExpireNegotiationsCommandHandler expires overdue rounds.
//
// Each round is expired in its own transaction, so a round answered or
// superseded in the meantime (StaleNegotiationError, ConcurrentModificationError)
// is skipped without holding back the rest of the batch.
type ExpireNegotiationsCommandHandler struct {
	uowFactory NegotiationUoWFactory
	engine     *services.NegotiationEngine
}

func NewExpireNegotiationsCommandHandler(
	uowFactory NegotiationUoWFactory,
	engine *services.NegotiationEngine,
) ExpireNegotiationsCommandHandler {
	return ExpireNegotiationsCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle returns the number of rounds expired. Errors other than lost races
// are joined and returned after the whole batch was tried.
func (h ExpireNegotiationsCommandHandler) Handle(ctx context.Context, cmd ExpireNegotiationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.listExpired(ctx, cmd.At(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	expired := 0
	var failures []error
	for _, id := range ids {
		err = h.expire(ctx, id, cmd.At())
		switch {
		case err == nil:
			expired++
		case errors.Is(err, errs.ErrStaleNegotiation), errors.Is(err, errs.ErrConcurrentModification):
		default:
			failures = append(failures, err)
		}
	}
	return expired, errors.Join(failures...)
}

func (h ExpireNegotiationsCommandHandler) listExpired(ctx context.Context, at time.Time, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rounds, err := uow.NegotiationRepository().ListExpired(ctx, at, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.UUID, 0, len(rounds))
	for _, n := range rounds {
		ids = append(ids, n.ID())
	}
	return ids, nil
}

func (h ExpireNegotiationsCommandHandler) expire(ctx context.Context, id kernel.UUID, at time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	negotiationRepo := uow.NegotiationRepository()

	n, err := negotiationRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	o, err := orderRepo.Get(ctx, n.OrderID())
	if err != nil {
		return err
	}
	if n, err = negotiationRepo.Get(ctx, id); err != nil {
		return err
	}
	if !n.IsExpiredAt(at) {
		return errs.NewStaleNegotiationError(id.String(), n.Status().String())
	}

	if err = h.engine.Respond(o, n, negotiation.DecisionExpire, lifecycle.RoleSystem, nil, at); err != nil {
		return err
	}

	if err = negotiationRepo.Update(ctx, n); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
