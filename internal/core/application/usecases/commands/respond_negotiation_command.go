package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRespondNegotiationCommandIsNotConstructed = errors.New(
	"RespondNegotiationCommand must be created via NewRespondNegotiationCommand constructor",
)

// RespondNegotiationCommand answers a pending round as ACCEPT or REJECT.
// Expiry goes through ExpireNegotiationsCommand.
type RespondNegotiationCommand struct { //nolint:recvcheck //using for validation
	negotiationID kernel.UUID
	role          lifecycle.Role
	responderID   kernel.UUID
	decision      negotiation.Decision

	guard guard.ConstructorGuard
}

func NewRespondNegotiationCommand(
	negotiationID kernel.UUID,
	role lifecycle.Role,
	responderID kernel.UUID,
	decision negotiation.Decision,
) (RespondNegotiationCommand, error) {
	var decisionErr error
	if decision != negotiation.DecisionAccept && decision != negotiation.DecisionReject {
		decisionErr = errs.NewValueIsInvalidError("decision")
	}
	if err := errors.Join(negotiationID.Validate(), responderID.Validate(), validateRole(role), decisionErr); err != nil {
		return RespondNegotiationCommand{}, err
	}
	return RespondNegotiationCommand{
		negotiationID: negotiationID,
		role:          role,
		responderID:   responderID,
		decision:      decision,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RespondNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrRespondNegotiationCommandIsNotConstructed)
}

func (c RespondNegotiationCommand) NegotiationID() kernel.UUID     { return c.negotiationID }
func (c RespondNegotiationCommand) Role() lifecycle.Role           { return c.role }
func (c RespondNegotiationCommand) ResponderID() kernel.UUID       { return c.responderID }
func (c RespondNegotiationCommand) Decision() negotiation.Decision { return c.decision }
