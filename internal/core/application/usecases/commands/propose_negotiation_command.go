package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrProposeNegotiationCommandIsNotConstructed = errors.New(
	"ProposeNegotiationCommand must be created via NewProposeNegotiationCommand constructor",
)

// ProposeNegotiationCommand is one party's price / lead time / quantity offer.
//
// Example:
//
//	qty := 450
//	cmd, err := NewProposeNegotiationCommand(orderID, lifecycle.RoleCustomer, customerID, negotiation.Proposal{
//	    UnitPrice: decimal.RequireFromString("9.50"), ProductionDays: 25, Quantity: &qty,
//	})
type ProposeNegotiationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	role     lifecycle.Role
	senderID kernel.UUID
	proposal negotiation.Proposal

	guard guard.ConstructorGuard
}

func NewProposeNegotiationCommand(
	orderID kernel.UUID,
	role lifecycle.Role,
	senderID kernel.UUID,
	proposal negotiation.Proposal,
) (ProposeNegotiationCommand, error) {
	var roleErr error
	if !role.IsParty() {
		roleErr = errs.NewValueIsInvalidError("role")
	}
	if err := errors.Join(orderID.Validate(), senderID.Validate(), roleErr, proposal.Validate()); err != nil {
		return ProposeNegotiationCommand{}, err
	}
	return ProposeNegotiationCommand{
		orderID:  orderID,
		role:     role,
		senderID: senderID,
		proposal: proposal,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ProposeNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrProposeNegotiationCommandIsNotConstructed)
}

func (c ProposeNegotiationCommand) OrderID() kernel.UUID           { return c.orderID }
func (c ProposeNegotiationCommand) Role() lifecycle.Role           { return c.role }
func (c ProposeNegotiationCommand) SenderID() kernel.UUID          { return c.senderID }
func (c ProposeNegotiationCommand) Proposal() negotiation.Proposal { return c.proposal }
