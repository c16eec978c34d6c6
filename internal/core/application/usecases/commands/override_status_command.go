package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrOverrideStatusCommandIsNotConstructed = errors.New(
	"OverrideStatusCommand must be created via NewOverrideStatusCommand constructor",
)

// OverrideStatusCommand is the administrative escape hatch: it sets any
// status of the order's kind, terminal ones included.
type OverrideStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  lifecycle.Status
	role    lifecycle.Role

	guard guard.ConstructorGuard
}

func NewOverrideStatusCommand(orderID kernel.UUID, target lifecycle.Status, role lifecycle.Role) (OverrideStatusCommand, error) {
	var targetErr error
	if target == lifecycle.StatusUnknown {
		targetErr = errs.NewValueIsRequiredError("target status")
	}
	if err := errors.Join(orderID.Validate(), validateRole(role), targetErr); err != nil {
		return OverrideStatusCommand{}, err
	}
	return OverrideStatusCommand{
		orderID: orderID,
		target:  target,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c OverrideStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideStatusCommandIsNotConstructed)
}

func (c OverrideStatusCommand) OrderID() kernel.UUID     { return c.orderID }
func (c OverrideStatusCommand) Target() lifecycle.Status { return c.target }
func (c OverrideStatusCommand) Role() lifecycle.Role     { return c.role }
