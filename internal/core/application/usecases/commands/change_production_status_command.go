package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeProductionStatusCommandIsNotConstructed = errors.New(
	"ChangeProductionStatusCommand must be created via NewChangeProductionStatusCommand constructor",
)

// ChangeProductionStatusCommand pauses, resumes or cancels a tracking.
// Target is WAITING or BLOCKED to pause, IN_PROGRESS to resume and CANCELLED
// to cancel; pausing and cancelling need a reason.
type ChangeProductionStatusCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.UUID
	target     production.OverallStatus
	reason     string
	role       lifecycle.Role
	actorID    *kernel.UUID

	guard guard.ConstructorGuard
}

func NewChangeProductionStatusCommand(
	trackingID kernel.UUID,
	target production.OverallStatus,
	reason string,
	role lifecycle.Role,
	actorID *kernel.UUID,
) (ChangeProductionStatusCommand, error) {
	var targetErr error
	if target == production.OverallCompleted {
		targetErr = errs.NewValueIsInvalidErrorWithCause("overall status",
			fmt.Errorf("%s is reached by completing production", target))
	} else if _, err := production.ParseOverallStatus(string(target)); err != nil {
		targetErr = err
	}
	if err := errors.Join(trackingID.Validate(), validateRole(role), validateOptionalUUID(actorID), targetErr); err != nil {
		return ChangeProductionStatusCommand{}, err
	}
	return ChangeProductionStatusCommand{
		trackingID: trackingID,
		target:     target,
		reason:     reason,
		role:       role,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeProductionStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeProductionStatusCommandIsNotConstructed)
}

func (c ChangeProductionStatusCommand) TrackingID() kernel.UUID          { return c.trackingID }
func (c ChangeProductionStatusCommand) Target() production.OverallStatus { return c.target }
func (c ChangeProductionStatusCommand) Reason() string                   { return c.reason }
func (c ChangeProductionStatusCommand) Role() lifecycle.Role             { return c.role }
func (c ChangeProductionStatusCommand) ActorID() *kernel.UUID            { return c.actorID }
