package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrReviewChangeCommandIsNotConstructed = errors.New(
	"ReviewChangeCommand must be created via NewReviewChangeCommand constructor",
)

// ReviewChangeCommand is the counterparty's verdict on a recorded change.
// TriggerNegotiation only matters with NEEDS_NEGOTIATION.
type ReviewChangeCommand struct { //nolint:recvcheck //using for validation
	changeLogID        kernel.UUID
	role               lifecycle.Role
	reviewerID         kernel.UUID
	decision           changelog.ReviewStatus
	response           string
	triggerNegotiation bool

	guard guard.ConstructorGuard
}

func NewReviewChangeCommand(
	changeLogID kernel.UUID,
	role lifecycle.Role,
	reviewerID kernel.UUID,
	decision changelog.ReviewStatus,
	response string,
	triggerNegotiation bool,
) (ReviewChangeCommand, error) {
	var decisionErr error
	if decision == changelog.ReviewPending {
		decisionErr = errs.NewValueIsInvalidError("decision")
	} else if _, err := changelog.ParseReviewStatus(string(decision)); err != nil {
		decisionErr = err
	}
	if err := errors.Join(changeLogID.Validate(), reviewerID.Validate(), validateRole(role), decisionErr); err != nil {
		return ReviewChangeCommand{}, err
	}
	return ReviewChangeCommand{
		changeLogID:        changeLogID,
		role:               role,
		reviewerID:         reviewerID,
		decision:           decision,
		response:           response,
		triggerNegotiation: triggerNegotiation,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewChangeCommand) Validate() error {
	return c.guard.Validate(ErrReviewChangeCommandIsNotConstructed)
}

func (c ReviewChangeCommand) ChangeLogID() kernel.UUID         { return c.changeLogID }
func (c ReviewChangeCommand) Role() lifecycle.Role             { return c.role }
func (c ReviewChangeCommand) ReviewerID() kernel.UUID          { return c.reviewerID }
func (c ReviewChangeCommand) Decision() changelog.ReviewStatus { return c.decision }
func (c ReviewChangeCommand) Response() string                 { return c.response }
func (c ReviewChangeCommand) TriggerNegotiation() bool         { return c.triggerNegotiation }
