package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand takes a lifecycle action that has no side effect
// beyond the status change: review, confirm, deposit request, plan
// preparation, quality, shipping and the universal exits.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  lifecycle.Action
	role    lifecycle.Role
	actorID *kernel.UUID

	guard guard.ConstructorGuard
}

// genericActions are the edges without a side effect owned by another
// handler. Quotes go through the negotiation engine, plans and stages through
// the production tracker, explicit-target moves through their own commands.
var genericActions = map[lifecycle.Action]bool{
	lifecycle.ActionReview:                true,
	lifecycle.ActionReviewQuote:           true,
	lifecycle.ActionConfirm:               true,
	lifecycle.ActionRequestDeposit:        true,
	lifecycle.ActionRecordDeposit:         true,
	lifecycle.ActionStartQualityCheck:     true,
	lifecycle.ActionPassQuality:           true,
	lifecycle.ActionFailQuality:           true,
	lifecycle.ActionRework:                true,
	lifecycle.ActionRequestBalance:        true,
	lifecycle.ActionMarkReady:             true,
	lifecycle.ActionShip:                  true,
	lifecycle.ActionDispatch:              true,
	lifecycle.ActionDeliver:               true,
	lifecycle.ActionConfirmReceipt:        true,
	lifecycle.ActionRequestSampleRevision: true,
	lifecycle.ActionReviseSample:          true,
	lifecycle.ActionHold:                  true,
	lifecycle.ActionResume:                true,
	lifecycle.ActionReject:                true,
	lifecycle.ActionCancel:                true,
}

// NewTransitionOrderCommand validates the request. actorID is required for
// customer and manufacturer and ignored for admin and system. Actions owned
// by another handler are refused as illegal transitions.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	action lifecycle.Action,
	role lifecycle.Role,
	actorID *kernel.UUID,
) (TransitionOrderCommand, error) {
	var actionErr error
	switch {
	case action == lifecycle.ActionUnknown:
		actionErr = errs.NewValueIsInvalidError("action")
	case !genericActions[action]:
		actionErr = errs.NewIllegalTransitionError("order", "any status", action.String())
	}
	if err := errors.Join(orderID.Validate(), validateRole(role), validateOptionalUUID(actorID), actionErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		action:  action,
		role:    role,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c TransitionOrderCommand) Action() lifecycle.Action { return c.action }
func (c TransitionOrderCommand) Role() lifecycle.Role     { return c.role }
func (c TransitionOrderCommand) ActorID() *kernel.UUID    { return c.actorID }
