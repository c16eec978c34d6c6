package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRevertProductionCommandIsNotConstructed = errors.New(
	"RevertProductionCommand must be created via NewRevertProductionCommand constructor",
)

// RevertProductionCommand sends production back to a stage already visited.
// Either party may ask for it; the system may too, without an actor.
type RevertProductionCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.UUID
	toStage    production.Stage
	reason     string
	role       lifecycle.Role
	actorID    *kernel.UUID

	guard guard.ConstructorGuard
}

func NewRevertProductionCommand(
	trackingID kernel.UUID,
	toStage production.Stage,
	reason string,
	role lifecycle.Role,
	actorID *kernel.UUID,
) (RevertProductionCommand, error) {
	reason = strings.TrimSpace(reason)
	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewEmptyReasonError("reason")
	}
	if err := errors.Join(
		trackingID.Validate(), toStage.Validate(), validateRole(role), validateOptionalUUID(actorID), reasonErr,
	); err != nil {
		return RevertProductionCommand{}, err
	}
	return RevertProductionCommand{
		trackingID: trackingID,
		toStage:    toStage,
		reason:     reason,
		role:       role,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RevertProductionCommand) Validate() error {
	return c.guard.Validate(ErrRevertProductionCommandIsNotConstructed)
}

func (c RevertProductionCommand) TrackingID() kernel.UUID   { return c.trackingID }
func (c RevertProductionCommand) ToStage() production.Stage { return c.toStage }
func (c RevertProductionCommand) Reason() string            { return c.reason }
func (c RevertProductionCommand) Role() lifecycle.Role      { return c.role }
func (c RevertProductionCommand) ActorID() *kernel.UUID     { return c.actorID }
