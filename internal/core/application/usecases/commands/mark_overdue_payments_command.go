package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/guard"
)

// MarkOverduePaymentsCommand flags PENDING payments whose due date passed before At.
type MarkOverduePaymentsCommand struct {
	at    time.Time
	limit int

	guard guard.ConstructorGuard
}

var ErrMarkOverduePaymentsCommandIsNotConstructed = errors.New(
	"MarkOverduePaymentsCommand must be created via NewMarkOverduePaymentsCommand constructor",
)

func NewMarkOverduePaymentsCommand(at time.Time, limit int) (MarkOverduePaymentsCommand, error) {
	if err := validateSweep(at, limit); err != nil {
		return MarkOverduePaymentsCommand{}, err
	}
	return MarkOverduePaymentsCommand{
		at:    at,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c *MarkOverduePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrMarkOverduePaymentsCommandIsNotConstructed)
}

func (c *MarkOverduePaymentsCommand) At() time.Time { return c.at }
func (c *MarkOverduePaymentsCommand) Limit() int    { return c.limit }
