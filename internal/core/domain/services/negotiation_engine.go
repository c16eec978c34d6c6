package services

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// NegotiationEngine runs the symmetric counter-offer protocol over an order
// and its single active round.
//
// Key responsibilities:
//   - Superseding the active round and opening the next one
//   - Moving the order to whose turn it is (QUOTE_SENT / CUSTOMER_QUOTE_SENT)
//   - Applying accepted terms and agreeing the quote
//   - Reverting the order when a round is rejected or expires
//
// The engine only mutates the aggregates it is given; the caller persists
// them in one transaction so the supersede, insert and status change are atomic.
type NegotiationEngine struct {
	registry *lifecycle.Registry
	ttl      time.Duration
}

// NewNegotiationEngine creates an engine. A zero ttl disables expiry.
func NewNegotiationEngine(registry *lifecycle.Registry, ttl time.Duration) *NegotiationEngine {
	return &NegotiationEngine{registry: registry, ttl: ttl}
}

// ProposeRequest is one party's offer.
type ProposeRequest struct {
	Role     lifecycle.Role
	SenderID kernel.UUID
	Proposal negotiation.Proposal
	// Round is the 1-based sequence number of the new round for the order.
	Round int
}

// Propose opens a pricing round.
//
// Parameters:
//   - o: the order, in a negotiable status
//   - active: the order's PENDING round, or nil
//   - req: the proposal
//
// The manufacturer's proposal moves the order to QUOTE_SENT and the customer's
// to CUSTOMER_QUOTE_SENT; the customer's also refreshes the counter-offer cache.
func (e *NegotiationEngine) Propose(
	o *order.Order,
	active *negotiation.Negotiation,
	req ProposeRequest,
	now time.Time,
) (*negotiation.Negotiation, error) {
	if err := e.checkSender(o, active, req); err != nil {
		return nil, err
	}

	action := lifecycle.ActionSendQuote
	if req.Role == lifecycle.RoleCustomer {
		action = lifecycle.ActionCounterQuote
	}
	if _, err := e.registry.Resolve(o.Kind(), o.Status(), action, req.Role); err != nil {
		return nil, err
	}

	n, err := e.open(o, active, req, now)
	if err != nil {
		return nil, err
	}
	if req.Role == lifecycle.RoleCustomer {
		if err = o.RecordCounterOffer(counterOffer(req.Proposal, order.QuoteTypeCounterOffer, now)); err != nil {
			return nil, err
		}
	}
	if err = o.Transition(e.registry, action, req.Role, nil, now); err != nil {
		return nil, err
	}
	return n, nil
}

// ProposeForChange opens a round tied to a change log on a confirmed order.
// The order status does not move; accepting the round only updates terms.
func (e *NegotiationEngine) ProposeForChange(
	o *order.Order,
	active *negotiation.Negotiation,
	req ProposeRequest,
	changeLogID kernel.UUID,
	now time.Time,
) (*negotiation.Negotiation, error) {
	if err := e.checkSender(o, active, req); err != nil {
		return nil, err
	}
	if !o.Status().IsConfirmed() {
		return nil, errs.NewIllegalTransitionError(o.Kind().String(), o.Status().String(), "PROPOSE_CHANGE")
	}

	n, err := e.open(o, active, req, now)
	if err != nil {
		return nil, err
	}
	if err = n.LinkChangeLog(changeLogID); err != nil {
		return nil, err
	}
	if req.Role == lifecycle.RoleCustomer {
		if err = o.RecordCounterOffer(counterOffer(req.Proposal, order.QuoteTypeChangeRequest, now)); err != nil {
			return nil, err
		}
	}
	o.Touch(now)
	return n, nil
}

// Respond applies a decision on the round.
//
// Business rules:
//   - ACCEPT copies price, lead time and quantity onto the order and moves it
//     to QUOTE_AGREED (change-linked rounds keep the status)
//   - REJECT and EXPIRE return the order to the status it had before the
//     round was proposed, if the order is still negotiating
//   - responderID must be the account of role on the order; nil for the system
func (e *NegotiationEngine) Respond(
	o *order.Order,
	n *negotiation.Negotiation,
	decision negotiation.Decision,
	role lifecycle.Role,
	responderID *kernel.UUID,
	now time.Time,
) error {
	if !n.OrderID().IsEqual(o.ID()) {
		return errs.NewValueIsInvalidError("negotiation does not belong to order")
	}
	if role.IsParty() {
		party, _ := o.PartyID(role)
		if responderID == nil || !party.IsEqual(*responderID) {
			return errs.NewUnauthorizedActorError(role.String(), n.Status().String(), decision.String())
		}
	}

	if err := n.Respond(decision, role, responderID, now); err != nil {
		return err
	}

	switch decision { //nolint:exhaustive // Respond rejected unknown decisions
	case negotiation.DecisionAccept:
		p := n.Proposal()
		if err := o.ApplyAgreedTerms(p.UnitPrice, p.ProductionDays, p.Quantity, now); err != nil {
			return err
		}
		if n.IsChangeLinked() {
			o.Touch(now)
			return nil
		}
		return o.Transition(e.registry, lifecycle.ActionAgreeQuote, role, nil, now)
	default:
		return e.revert(o, n, role, now)
	}
}

func (e *NegotiationEngine) revert(o *order.Order, n *negotiation.Negotiation, role lifecycle.Role, now time.Time) error {
	target := n.PreviousOrderStatus()
	if n.IsChangeLinked() || !o.Status().IsNegotiable() || !target.IsNegotiable() || o.Status() == target {
		o.Touch(now)
		return nil
	}
	return o.RevertNegotiation(e.registry, target, role, now)
}

func (e *NegotiationEngine) checkSender(o *order.Order, active *negotiation.Negotiation, req ProposeRequest) error {
	if err := o.Validate(); err != nil {
		return err
	}
	party, ok := o.PartyID(req.Role)
	if !ok || !party.IsEqual(req.SenderID) {
		return errs.NewUnauthorizedActorError(req.Role.String(), o.Status().String(), "PROPOSE")
	}
	if active != nil && !active.OrderID().IsEqual(o.ID()) {
		return errs.NewValueIsInvalidError("active negotiation does not belong to order")
	}
	return nil
}

func (e *NegotiationEngine) open(
	o *order.Order,
	active *negotiation.Negotiation,
	req ProposeRequest,
	now time.Time,
) (*negotiation.Negotiation, error) {
	n, err := negotiation.NewNegotiation(kernel.NewUUID(), o.ID(), req.SenderID, req.Role, req.Round,
		req.Proposal, o.Status(), now)
	if err != nil {
		return nil, err
	}
	if active != nil {
		if err = active.Supersede(now); err != nil {
			return nil, errs.NewInvariantViolationErrorWithCause("single pending negotiation",
				"active round "+active.ID().String()+" is not pending", err)
		}
	}
	n.ExpireAfter(e.ttl)
	return n, nil
}

func counterOffer(p negotiation.Proposal, typ order.QuoteType, now time.Time) order.CounterOffer {
	return order.CounterOffer{
		Price:  p.UnitPrice,
		Days:   p.ProductionDays,
		Note:   p.Message,
		Type:   typ,
		SentAt: now,
	}
}
