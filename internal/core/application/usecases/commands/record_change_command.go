package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRecordChangeCommandIsNotConstructed = errors.New(
	"RecordChangeCommand must be created via NewRecordChangeCommand constructor",
)

// RecordChangeCommand edits the terms of a confirmed order. The change
// carries both the value the editor saw and the new one.
type RecordChangeCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	role      lifecycle.Role
	changedBy kernel.UUID
	change    changelog.Change
	reason    string

	guard guard.ConstructorGuard
}

func NewRecordChangeCommand(
	orderID kernel.UUID,
	role lifecycle.Role,
	changedBy kernel.UUID,
	change changelog.Change,
	reason string,
) (RecordChangeCommand, error) {
	var roleErr, changeErr error
	if !role.IsParty() {
		roleErr = errs.NewValueIsInvalidError("role")
	}
	if change == nil {
		changeErr = errs.NewValueIsRequiredError("change")
	}
	if err := errors.Join(orderID.Validate(), changedBy.Validate(), roleErr, changeErr); err != nil {
		return RecordChangeCommand{}, err
	}
	return RecordChangeCommand{
		orderID:   orderID,
		role:      role,
		changedBy: changedBy,
		change:    change,
		reason:    strings.TrimSpace(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordChangeCommand) Validate() error {
	return c.guard.Validate(ErrRecordChangeCommandIsNotConstructed)
}

func (c RecordChangeCommand) OrderID() kernel.UUID     { return c.orderID }
func (c RecordChangeCommand) Role() lifecycle.Role     { return c.role }
func (c RecordChangeCommand) ChangedBy() kernel.UUID   { return c.changedBy }
func (c RecordChangeCommand) Change() changelog.Change { return c.change }
func (c RecordChangeCommand) Reason() string           { return c.reason }
