package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrProductionPlanCommandIsNotConstructed = errors.New(
	"ProductionPlanCommand must be created via NewProductionPlanCommand constructor",
)

// PlanStep is one move of the plan approval workflow.
type PlanStep string

const (
	// PlanStepSend is the manufacturer submitting (or resubmitting) the plan.
	PlanStepSend PlanStep = "SEND"
	// PlanStepApprove is the customer accepting the plan.
	PlanStepApprove PlanStep = "APPROVE"
	// PlanStepReject is the customer refusing the plan with a reason.
	PlanStepReject PlanStep = "REJECT"
)

// Role returns the party allowed to take the step.
func (s PlanStep) Role() lifecycle.Role {
	if s == PlanStepSend {
		return lifecycle.RoleManufacturer
	}
	return lifecycle.RoleCustomer
}

func (s PlanStep) action() lifecycle.Action {
	switch s {
	case PlanStepSend:
		return lifecycle.ActionSendPlan
	case PlanStepApprove:
		return lifecycle.ActionApprovePlan
	case PlanStepReject:
		return lifecycle.ActionRejectPlan
	}
	return lifecycle.ActionUnknown
}

// ProductionPlanCommand sends, approves or rejects the production plan.
// Text is the plan note for SEND and the reason for REJECT.
type ProductionPlanCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.UUID
	step       PlanStep
	actorID    kernel.UUID
	text       string

	guard guard.ConstructorGuard
}

func NewProductionPlanCommand(trackingID kernel.UUID, step PlanStep, actorID kernel.UUID, text string) (ProductionPlanCommand, error) {
	var stepErr error
	if step.action() == lifecycle.ActionUnknown {
		stepErr = errs.NewValueIsInvalidErrorWithCause("plan step", fmt.Errorf("%q is not a plan step", string(step)))
	}
	if err := errors.Join(trackingID.Validate(), actorID.Validate(), stepErr); err != nil {
		return ProductionPlanCommand{}, err
	}
	return ProductionPlanCommand{
		trackingID: trackingID,
		step:       step,
		actorID:    actorID,
		text:       text,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ProductionPlanCommand) Validate() error {
	return c.guard.Validate(ErrProductionPlanCommandIsNotConstructed)
}

func (c ProductionPlanCommand) TrackingID() kernel.UUID { return c.trackingID }
func (c ProductionPlanCommand) Step() PlanStep          { return c.step }
func (c ProductionPlanCommand) ActorID() kernel.UUID    { return c.actorID }
func (c ProductionPlanCommand) Text() string            { return c.text }
