package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ChangeAuditor wraps post-confirmation term edits with an audit record and
// the counterparty's review.
type ChangeAuditor struct {
	engine *NegotiationEngine
}

func NewChangeAuditor(engine *NegotiationEngine) *ChangeAuditor {
	return &ChangeAuditor{engine: engine}
}

// Record applies the change to a confirmed order and returns the PENDING
// change log. The change's previous value must match the order.
func (a *ChangeAuditor) Record(
	o *order.Order,
	role lifecycle.Role,
	changedBy kernel.UUID,
	change changelog.Change,
	reason string,
	now time.Time,
) (*changelog.ChangeLog, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.Status().IsConfirmed() {
		return nil, errs.NewIllegalTransitionError(o.Kind().String(), o.Status().String(), "RECORD_CHANGE")
	}
	if party, ok := o.PartyID(role); !ok || !party.IsEqual(changedBy) {
		return nil, errs.NewUnauthorizedActorError(role.String(), o.Status().String(), "RECORD_CHANGE")
	}

	next, err := changelog.Apply(change, o.Terms())
	if err != nil {
		return nil, err
	}
	log, err := changelog.NewChangeLog(kernel.NewUUID(), o.ID(), changedBy, role, change, reason, now)
	if err != nil {
		return nil, err
	}
	if err = o.ReviseTerms(next, now); err != nil {
		return nil, err
	}
	return log, nil
}

// ReviewRequest is the counterparty's verdict on a change log.
type ReviewRequest struct {
	Role               lifecycle.Role
	ReviewerID         kernel.UUID
	Decision           changelog.ReviewStatus
	Response           string
	TriggerNegotiation bool
	// Round is the next negotiation round number, used when a round is spawned.
	Round int
}

// Review stamps the verdict. NEEDS_NEGOTIATION with TriggerNegotiation opens
// a change-linked round proposed by the reviewer, seeded from the current
// terms, and links it back. REJECTED leaves the changed terms in place.
func (a *ChangeAuditor) Review(
	o *order.Order,
	log *changelog.ChangeLog,
	active *negotiation.Negotiation,
	req ReviewRequest,
	now time.Time,
) (*negotiation.Negotiation, error) {
	if !log.OrderID().IsEqual(o.ID()) {
		return nil, errs.NewValueIsInvalidError("change log does not belong to order")
	}
	if party, ok := o.PartyID(req.Role); ok && !party.IsEqual(req.ReviewerID) {
		return nil, errs.NewUnauthorizedActorError(req.Role.String(), string(log.ReviewStatus()), string(req.Decision))
	}
	if err := log.Review(req.Decision, req.Role, req.ReviewerID, req.Response, now); err != nil {
		return nil, err
	}

	if req.Decision != changelog.ReviewNeedsNegotiation || !req.TriggerNegotiation {
		o.Touch(now)
		return nil, nil //nolint:nilnil // no round spawned
	}

	n, err := a.engine.ProposeForChange(o, active, ProposeRequest{
		Role:     req.Role,
		SenderID: req.ReviewerID,
		Proposal: SeedProposal(log.Change(), o.Terms(), req.Response),
		Round:    req.Round,
	}, log.ID(), now)
	if err != nil {
		return nil, err
	}
	if err = log.LinkNegotiation(n.ID()); err != nil {
		return nil, err
	}
	return n, nil
}

// SeedProposal builds the opening offer of a change-linked round from the
// terms as they stand after the change.
func SeedProposal(change changelog.Change, terms order.Terms, note string) negotiation.Proposal {
	p := negotiation.Proposal{
		UnitPrice:      terms.UnitPrice,
		ProductionDays: terms.ProductionDays,
		Message:        note,
	}
	if change != nil && change.Type() == changelog.ChangeTypeQuantity {
		qty := terms.Quantity
		p.Quantity = &qty
	}
	if p.Message == "" && change != nil {
		p.Message = fmt.Sprintf("negotiation on %s change", change.Type())
	}
	return p
}
