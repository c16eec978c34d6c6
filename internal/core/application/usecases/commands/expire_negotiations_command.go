package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// DefaultSweepBatch bounds the rows one sweep run picks up.
const DefaultSweepBatch = 100

// ExpireNegotiationsCommand answers EXPIRE, as the system, to every pending
// round whose deadline is not after At.
//
// Example:
//
//	cmd, _ := NewExpireNegotiationsCommand(time.Now(), DefaultSweepBatch)
//	handler := NewExpireNegotiationsCommandHandler(uowFactory, engine)
//
//	// Run periodically from the scheduler
//	expired, err := handler.Handle(ctx, cmd)
type ExpireNegotiationsCommand struct {
	at    time.Time
	limit int

	guard guard.ConstructorGuard
}

var ErrExpireNegotiationsCommandIsNotConstructed = errors.New(
	"ExpireNegotiationsCommand must be created via NewExpireNegotiationsCommand constructor",
)

func NewExpireNegotiationsCommand(at time.Time, limit int) (ExpireNegotiationsCommand, error) {
	if err := validateSweep(at, limit); err != nil {
		return ExpireNegotiationsCommand{}, err
	}
	return ExpireNegotiationsCommand{
		at:    at,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c *ExpireNegotiationsCommand) Validate() error {
	return c.guard.Validate(ErrExpireNegotiationsCommandIsNotConstructed)
}

func (c *ExpireNegotiationsCommand) At() time.Time { return c.at }
func (c *ExpireNegotiationsCommand) Limit() int    { return c.limit }

func validateSweep(at time.Time, limit int) error {
	var atErr, limitErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("sweep time")
	}
	if limit <= 0 {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return errors.Join(atErr, limitErr)
}
