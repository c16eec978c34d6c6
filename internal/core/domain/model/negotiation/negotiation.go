package negotiation

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrNegotiationIsNotConstructed = errors.New("Negotiation must be created via NewNegotiation constructor")

const (
	EventProposed   = "negotiation.proposed"
	EventAccepted   = "negotiation.accepted"
	EventRejected   = "negotiation.rejected"
	EventSuperseded = "negotiation.superseded"
	EventExpired    = "negotiation.expired"
)

// Proposal is the offer carried by a round. Quantity is optional.
type Proposal struct {
	UnitPrice      decimal.Decimal
	ProductionDays int
	Quantity       *int
	Message        string
}

func (p Proposal) Validate() error {
	var qtyErr error
	if p.Quantity != nil && *p.Quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", *p.Quantity))
	}
	var daysErr error
	if p.ProductionDays <= 0 {
		daysErr = errs.NewValueIsInvalidErrorWithCause("production days is invalid",
			fmt.Errorf("%d is not greater than 0", p.ProductionDays))
	}
	return errors.Join(kernel.ValidatePositive("unit price is invalid", p.UnitPrice), daysErr, qtyErr)
}

// Negotiation is one round of the counter-offer protocol.
type Negotiation struct {
	kernel.EventRecorder

	id         kernel.UUID
	orderID    kernel.UUID
	senderID   kernel.UUID
	senderRole lifecycle.Role
	round      int
	proposal   Proposal
	status     Status

	// previousOrderStatus is where the order returns if this round is rejected or expires
	previousOrderStatus lifecycle.Status
	relatedChangeLogID  *kernel.UUID
	expiresAt           *time.Time

	respondedAt *time.Time
	respondedBy *kernel.UUID
	createdAt   time.Time

	isConstructed bool
}

// NewNegotiation opens a PENDING round sent by a customer or manufacturer.
func NewNegotiation(
	id, orderID, senderID kernel.UUID,
	senderRole lifecycle.Role,
	round int,
	proposal Proposal,
	previousOrderStatus lifecycle.Status,
	now time.Time,
) (*Negotiation, error) {
	n := &Negotiation{
		id:                  id,
		orderID:             orderID,
		senderID:            senderID,
		senderRole:          senderRole,
		round:               round,
		proposal:            proposal,
		status:              StatusPending,
		previousOrderStatus: previousOrderStatus,
		createdAt:           now,
		isConstructed:       true,
	}
	if err := n.validate(); err != nil {
		return nil, err
	}

	n.Record(EventProposed, orderID, now, map[string]string{
		"negotiation": id.String(),
		"sender":      senderRole.String(),
		"round":       fmt.Sprint(round),
		"unitPrice":   proposal.UnitPrice.String(),
	})
	return n, nil
}

// Snapshot carries persisted state into RestoreNegotiation.
type Snapshot struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	SenderID            kernel.UUID
	SenderRole          lifecycle.Role
	Round               int
	Proposal            Proposal
	Status              Status
	PreviousOrderStatus lifecycle.Status
	RelatedChangeLogID  *kernel.UUID
	ExpiresAt           *time.Time
	RespondedAt         *time.Time
	RespondedBy         *kernel.UUID
	CreatedAt           time.Time
}

func RestoreNegotiation(s Snapshot) (*Negotiation, error) {
	n := &Negotiation{
		id:                  s.ID,
		orderID:             s.OrderID,
		senderID:            s.SenderID,
		senderRole:          s.SenderRole,
		round:               s.Round,
		proposal:            s.Proposal,
		status:              s.Status,
		previousOrderStatus: s.PreviousOrderStatus,
		relatedChangeLogID:  s.RelatedChangeLogID,
		expiresAt:           s.ExpiresAt,
		respondedAt:         s.RespondedAt,
		respondedBy:         s.RespondedBy,
		createdAt:           s.CreatedAt,
		isConstructed:       true,
	}
	if err := errors.Join(n.validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Negotiation) validate() error {
	var roleErr error
	if !n.senderRole.IsParty() {
		roleErr = errs.NewValueIsInvalidErrorWithCause("sender role",
			fmt.Errorf("%s cannot propose", n.senderRole))
	}
	var roundErr error
	if n.round <= 0 {
		roundErr = errs.NewValueIsOutOfRangeError("round", n.round, 1, "unbounded")
	}
	return errors.Join(
		n.id.Validate(),
		n.orderID.Validate(),
		n.senderID.Validate(),
		roleErr,
		roundErr,
		n.proposal.Validate(),
	)
}

func (n *Negotiation) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNegotiationIsNotConstructed
	}
	return nil
}

func (n *Negotiation) ID() kernel.UUID                       { return n.id }
func (n *Negotiation) OrderID() kernel.UUID                  { return n.orderID }
func (n *Negotiation) SenderID() kernel.UUID                 { return n.senderID }
func (n *Negotiation) SenderRole() lifecycle.Role            { return n.senderRole }
func (n *Negotiation) Round() int                            { return n.round }
func (n *Negotiation) Proposal() Proposal                    { return n.proposal }
func (n *Negotiation) Status() Status                        { return n.status }
func (n *Negotiation) PreviousOrderStatus() lifecycle.Status { return n.previousOrderStatus }
func (n *Negotiation) RelatedChangeLogID() *kernel.UUID      { return n.relatedChangeLogID }
func (n *Negotiation) ExpiresAt() *time.Time                 { return n.expiresAt }
func (n *Negotiation) RespondedAt() *time.Time               { return n.respondedAt }
func (n *Negotiation) RespondedBy() *kernel.UUID             { return n.respondedBy }
func (n *Negotiation) CreatedAt() time.Time                  { return n.createdAt }
func (n *Negotiation) IsPending() bool                       { return n.status == StatusPending }

// IsChangeLinked reports whether the round was spawned by a change review.
// Accepting such a round updates terms but leaves the order status alone.
func (n *Negotiation) IsChangeLinked() bool {
	return n.relatedChangeLogID != nil
}

// LinkChangeLog ties the round to the change log that triggered it.
func (n *Negotiation) LinkChangeLog(changeLogID kernel.UUID) error {
	if err := changeLogID.Validate(); err != nil {
		return err
	}
	n.relatedChangeLogID = &changeLogID
	return nil
}

// ExpireAfter sets the deadline used by the expiry sweep.
func (n *Negotiation) ExpireAfter(ttl time.Duration) {
	if ttl <= 0 {
		n.expiresAt = nil
		return
	}
	at := n.createdAt.Add(ttl)
	n.expiresAt = &at
}

// IsExpiredAt reports whether a pending round has passed its deadline.
func (n *Negotiation) IsExpiredAt(now time.Time) bool {
	return n.IsPending() && n.expiresAt != nil && !now.Before(*n.expiresAt)
}

// Supersede retires the round because a newer one was proposed.
func (n *Negotiation) Supersede(now time.Time) error {
	if !n.IsPending() {
		return errs.NewStaleNegotiationError(n.id.String(), n.status.String())
	}
	n.status = StatusSuperseded
	n.respondedAt = &now
	n.Record(EventSuperseded, n.orderID, now, map[string]string{"negotiation": n.id.String()})
	return nil
}

// Respond answers the round.
//
// Business rules:
//   - The round must still be PENDING (StaleNegotiationError otherwise)
//   - ACCEPT and REJECT are reserved for the counterparty of the sender; the
//     sender gets SelfResponseError, anyone else UnauthorizedActorError
//   - EXPIRE is reserved for the system
//
// responderID is nil for system decisions.
func (n *Negotiation) Respond(decision Decision, role lifecycle.Role, responderID *kernel.UUID, now time.Time) error {
	outcome := decision.outcome()
	if outcome == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%d is not a valid decision", decision))
	}
	if !n.IsPending() {
		return errs.NewStaleNegotiationError(n.id.String(), n.status.String())
	}

	if decision == DecisionExpire {
		if role != lifecycle.RoleSystem {
			return errs.NewUnauthorizedActorError(role.String(), n.status.String(), decision.String())
		}
	} else {
		switch role {
		case n.senderRole:
			return errs.NewSelfResponseError(n.id.String(), role.String())
		case n.senderRole.Counterparty():
		default:
			return errs.NewUnauthorizedActorError(role.String(), n.status.String(), decision.String())
		}
		if responderID == nil {
			return errs.NewValueIsRequiredError("responder")
		}
	}

	n.status = outcome
	n.respondedAt = &now
	if responderID != nil {
		by := *responderID
		n.respondedBy = &by
	}

	name := EventAccepted
	switch outcome { //nolint:exhaustive // outcomes of Respond only
	case StatusRejected:
		name = EventRejected
	case StatusExpired:
		name = EventExpired
	}
	n.Record(name, n.orderID, now, map[string]string{
		"negotiation": n.id.String(),
		"respondedBy": role.String(),
	})
	return nil
}
