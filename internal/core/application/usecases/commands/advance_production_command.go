package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/pkg/guard"
)

var ErrAdvanceProductionCommandIsNotConstructed = errors.New(
	"AdvanceProductionCommand must be created via NewAdvanceProductionCommand constructor",
)

// AdvanceProductionCommand closes the current stage with a report and opens
// the next one. Override allows a forward skip.
type AdvanceProductionCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.UUID
	toStage    production.Stage
	actorID    kernel.UUID
	report     production.StageReport
	override   bool

	guard guard.ConstructorGuard
}

func NewAdvanceProductionCommand(
	trackingID kernel.UUID,
	toStage production.Stage,
	actorID kernel.UUID,
	report production.StageReport,
	override bool,
) (AdvanceProductionCommand, error) {
	if err := errors.Join(trackingID.Validate(), toStage.Validate(), actorID.Validate()); err != nil {
		return AdvanceProductionCommand{}, err
	}
	return AdvanceProductionCommand{
		trackingID: trackingID,
		toStage:    toStage,
		actorID:    actorID,
		report:     report,
		override:   override,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceProductionCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceProductionCommandIsNotConstructed)
}

func (c AdvanceProductionCommand) TrackingID() kernel.UUID        { return c.trackingID }
func (c AdvanceProductionCommand) ToStage() production.Stage      { return c.toStage }
func (c AdvanceProductionCommand) ActorID() kernel.UUID           { return c.actorID }
func (c AdvanceProductionCommand) Report() production.StageReport { return c.report }
func (c AdvanceProductionCommand) Override() bool                 { return c.override }
