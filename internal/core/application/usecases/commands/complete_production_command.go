package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteProductionCommandIsNotConstructed = errors.New(
	"CompleteProductionCommand must be created via NewCompleteProductionCommand constructor",
)

// CompleteProductionCommand closes the SHIPPING stage and the tracking.
type CompleteProductionCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.UUID
	actorID    kernel.UUID
	report     production.StageReport

	guard guard.ConstructorGuard
}

func NewCompleteProductionCommand(
	trackingID, actorID kernel.UUID,
	report production.StageReport,
) (CompleteProductionCommand, error) {
	if err := errors.Join(trackingID.Validate(), actorID.Validate()); err != nil {
		return CompleteProductionCommand{}, err
	}
	return CompleteProductionCommand{
		trackingID: trackingID,
		actorID:    actorID,
		report:     report,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteProductionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteProductionCommandIsNotConstructed)
}

func (c CompleteProductionCommand) TrackingID() kernel.UUID        { return c.trackingID }
func (c CompleteProductionCommand) ActorID() kernel.UUID           { return c.actorID }
func (c CompleteProductionCommand) Report() production.StageReport { return c.report }
