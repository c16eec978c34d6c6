package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/guard"
)

var ErrSchedulePaymentsCommandIsNotConstructed = errors.New(
	"SchedulePaymentsCommand must be created via NewSchedulePaymentsCommand constructor",
)

// SchedulePaymentsCommand derives and stores the payment milestones of a
// confirmed order.
type SchedulePaymentsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	role    lifecycle.Role
	actorID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewSchedulePaymentsCommand(orderID kernel.UUID, role lifecycle.Role, actorID *kernel.UUID) (SchedulePaymentsCommand, error) {
	if err := errors.Join(orderID.Validate(), validateRole(role), validateOptionalUUID(actorID)); err != nil {
		return SchedulePaymentsCommand{}, err
	}
	return SchedulePaymentsCommand{
		orderID: orderID,
		role:    role,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SchedulePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrSchedulePaymentsCommandIsNotConstructed)
}

func (c SchedulePaymentsCommand) OrderID() kernel.UUID  { return c.orderID }
func (c SchedulePaymentsCommand) Role() lifecycle.Role  { return c.role }
func (c SchedulePaymentsCommand) ActorID() *kernel.UUID { return c.actorID }
