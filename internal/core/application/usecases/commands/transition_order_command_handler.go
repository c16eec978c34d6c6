package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies a generic lifecycle action.
//
// Business rules:
//   - Party roles must be taken by the order's account for that role
//   - Payment-gated edges are checked against the order's payments
//   - A customer confirming a QUOTE_SENT order accepts the manufacturer's
//     pending round, so the order carries the quoted terms
//   - Rejecting or cancelling a negotiating order closes the pending round,
//     also when the order is on hold from a negotiating status; a hold keeps it
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	registry   *lifecycle.Registry
}

func NewTransitionOrderCommandHandler(uowFactory UoWFactory, registry *lifecycle.Registry) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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
	if err = authorize(o, cmd.Role(), cmd.ActorID(), cmd.Action().String()); err != nil {
		return nil, err
	}
	ledger, err := loadLedger(ctx, uow.PaymentRepository(), o)
	if err != nil {
		return nil, err
	}

	t := now()
	negotiating := o.Status().IsNegotiable() ||
		(o.Status() == lifecycle.StatusOnHold && o.PreviousStatus().IsNegotiable())
	if err = o.Transition(h.registry, cmd.Action(), cmd.Role(), ledger, t); err != nil {
		return nil, err
	}

	if negotiating && (o.Status().IsConfirmed() || o.Status().IsTerminal()) {
		pending, findErr := negotiationRepo.FindPending(ctx, o.ID())
		if findErr != nil {
			return nil, findErr
		}
		if pending != nil {
			if err = settlePending(o, pending, cmd, t); err != nil {
				return nil, err
			}
			if err = negotiationRepo.Update(ctx, pending); err != nil {
				return nil, err
			}
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// settlePending closes the round left open when the order leaves negotiation.
// Confirming accepts a manufacturer quote; any other exit rejects the round,
// or supersedes it when its own sender or a non-party withdraws.
func settlePending(o *order.Order, pending *negotiation.Negotiation, cmd TransitionOrderCommand, t time.Time) error {
	switch cmd.Action() { //nolint:exhaustive // confirm accepts, everything else withdraws
	case lifecycle.ActionConfirm:
		if pending.SenderRole() != lifecycle.RoleManufacturer {
			return pending.Supersede(t)
		}
		p := pending.Proposal()
		if err := pending.Respond(negotiation.DecisionAccept, cmd.Role(), cmd.ActorID(), t); err != nil {
			return err
		}
		return o.ApplyAgreedTerms(p.UnitPrice, p.ProductionDays, p.Quantity, t)
	}
	if !cmd.Role().IsParty() || cmd.Role() == pending.SenderRole() {
		return pending.Supersede(t)
	}
	return pending.Respond(negotiation.DecisionReject, cmd.Role(), cmd.ActorID(), t)
}
