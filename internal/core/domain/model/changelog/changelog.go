package changelog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
)

var ErrChangeLogIsNotConstructed = errors.New("ChangeLog must be created via NewChangeLog constructor")

const (
	EventRecorded = "changelog.recorded"
	EventReviewed = "changelog.reviewed"
)

// ReviewStatus is the counterparty's verdict on a change.
type ReviewStatus string

const (
	ReviewPending          ReviewStatus = "PENDING"
	ReviewApproved         ReviewStatus = "APPROVED"
	ReviewRejected         ReviewStatus = "REJECTED"
	ReviewNeedsNegotiation ReviewStatus = "NEEDS_NEGOTIATION"
)

func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch r := ReviewStatus(s); r {
	case ReviewPending, ReviewApproved, ReviewRejected, ReviewNeedsNegotiation:
		return r, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("review status", fmt.Errorf("%q is not a valid review status", s))
}

// ChangeLog is the audit record of one term mutation. Only the review fields
// change after creation.
type ChangeLog struct {
	kernel.EventRecorder

	id            kernel.UUID
	orderID       kernel.UUID
	changedBy     kernel.UUID
	changedByRole lifecycle.Role
	change        Change
	reason        string
	createdAt     time.Time

	reviewStatus   ReviewStatus
	reviewResponse string
	reviewedAt     *time.Time
	reviewedBy     *kernel.UUID

	negotiationTriggered bool
	negotiationID        *kernel.UUID

	isConstructed bool
}

// NewChangeLog records a change made by one of the parties, pending review.
func NewChangeLog(
	id, orderID, changedBy kernel.UUID,
	changedByRole lifecycle.Role,
	change Change,
	reason string,
	now time.Time,
) (*ChangeLog, error) {
	c := &ChangeLog{
		id:            id,
		orderID:       orderID,
		changedBy:     changedBy,
		changedByRole: changedByRole,
		change:        change,
		reason:        strings.TrimSpace(reason),
		createdAt:     now,
		reviewStatus:  ReviewPending,
		isConstructed: true,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.Record(EventRecorded, orderID, now, map[string]string{
		"changeLog":  id.String(),
		"changeType": string(change.Type()),
		"changedBy":  changedByRole.String(),
	})
	return c, nil
}

type Snapshot struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	ChangedBy            kernel.UUID
	ChangedByRole        lifecycle.Role
	Change               Change
	Reason               string
	CreatedAt            time.Time
	ReviewStatus         ReviewStatus
	ReviewResponse       string
	ReviewedAt           *time.Time
	ReviewedBy           *kernel.UUID
	NegotiationTriggered bool
	NegotiationID        *kernel.UUID
}

func RestoreChangeLog(s Snapshot) (*ChangeLog, error) {
	c := &ChangeLog{
		id:                   s.ID,
		orderID:              s.OrderID,
		changedBy:            s.ChangedBy,
		changedByRole:        s.ChangedByRole,
		change:               s.Change,
		reason:               s.Reason,
		createdAt:            s.CreatedAt,
		reviewStatus:         s.ReviewStatus,
		reviewResponse:       s.ReviewResponse,
		reviewedAt:           s.ReviewedAt,
		reviewedBy:           s.ReviewedBy,
		negotiationTriggered: s.NegotiationTriggered,
		negotiationID:        s.NegotiationID,
		isConstructed:        true,
	}
	if _, err := ParseReviewStatus(string(s.ReviewStatus)); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ChangeLog) validate() error {
	var roleErr, changeErr error
	if !c.changedByRole.IsParty() {
		roleErr = errs.NewValueIsInvalidErrorWithCause("changed by role", fmt.Errorf("%s cannot change terms", c.changedByRole))
	}
	if c.change == nil {
		changeErr = errs.NewValueIsRequiredError("change")
	}
	return errors.Join(c.id.Validate(), c.orderID.Validate(), c.changedBy.Validate(), roleErr, changeErr)
}

func (c *ChangeLog) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChangeLogIsNotConstructed
	}
	return nil
}

func (c *ChangeLog) ID() kernel.UUID               { return c.id }
func (c *ChangeLog) OrderID() kernel.UUID          { return c.orderID }
func (c *ChangeLog) ChangedBy() kernel.UUID        { return c.changedBy }
func (c *ChangeLog) ChangedByRole() lifecycle.Role { return c.changedByRole }
func (c *ChangeLog) Change() Change                { return c.change }
func (c *ChangeLog) ChangeType() ChangeType        { return c.change.Type() }
func (c *ChangeLog) Reason() string                { return c.reason }
func (c *ChangeLog) CreatedAt() time.Time          { return c.createdAt }
func (c *ChangeLog) ReviewStatus() ReviewStatus    { return c.reviewStatus }
func (c *ChangeLog) ReviewResponse() string        { return c.reviewResponse }
func (c *ChangeLog) ReviewedAt() *time.Time        { return c.reviewedAt }
func (c *ChangeLog) ReviewedBy() *kernel.UUID      { return c.reviewedBy }
func (c *ChangeLog) NegotiationTriggered() bool    { return c.negotiationTriggered }
func (c *ChangeLog) NegotiationID() *kernel.UUID   { return c.negotiationID }

// Review stamps the counterparty's verdict. A change is reviewed once; the
// changed terms are not rolled back on REJECTED.
func (c *ChangeLog) Review(
	decision ReviewStatus,
	reviewerRole lifecycle.Role,
	reviewerID kernel.UUID,
	response string,
	now time.Time,
) error {
	if decision != ReviewApproved && decision != ReviewRejected && decision != ReviewNeedsNegotiation {
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not a review decision", string(decision)))
	}
	if c.reviewStatus != ReviewPending {
		return errs.NewIllegalTransitionError("CHANGE_LOG", string(c.reviewStatus), string(decision))
	}
	switch reviewerRole {
	case c.changedByRole:
		return errs.NewSelfResponseError(c.id.String(), reviewerRole.String())
	case c.changedByRole.Counterparty():
	default:
		return errs.NewUnauthorizedActorError(reviewerRole.String(), string(c.reviewStatus), string(decision))
	}
	if err := reviewerID.Validate(); err != nil {
		return err
	}

	c.reviewStatus = decision
	c.reviewResponse = strings.TrimSpace(response)
	c.reviewedAt = &now
	c.reviewedBy = &reviewerID
	c.Record(EventReviewed, c.orderID, now, map[string]string{
		"changeLog": c.id.String(),
		"decision":  string(decision),
	})
	return nil
}

// LinkNegotiation records the round spawned by a NEEDS_NEGOTIATION review.
func (c *ChangeLog) LinkNegotiation(negotiationID kernel.UUID) error {
	if c.reviewStatus != ReviewNeedsNegotiation {
		return errs.NewIllegalTransitionError("CHANGE_LOG", string(c.reviewStatus), "LINK_NEGOTIATION")
	}
	if err := negotiationID.Validate(); err != nil {
		return err
	}
	c.negotiationTriggered = true
	c.negotiationID = &negotiationID
	return nil
}
