package payment

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Intent is a payment milestone that has not been persisted yet.
type Intent struct {
	Type       Type
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	DueDate    time.Time
}

func (i Intent) Validate() error {
	_, typeErr := ParseType(string(i.Type))
	var dueErr error
	if i.DueDate.IsZero() {
		dueErr = errs.NewValueIsRequiredError("due date")
	}
	return errors.Join(
		typeErr,
		kernel.ValidatePositive("amount", i.Amount),
		kernel.ValidatePercentage("percentage", i.Percentage),
		dueErr,
	)
}

// Policy holds the scheduling defaults read from configuration.
type Policy struct {
	// ProgressPercent is the optional mid-production milestone, 0 disables it.
	ProgressPercent decimal.Decimal
	// DepositDueDays is the number of days after scheduling the deposit is due.
	DepositDueDays int
}

func (p Policy) Validate() error {
	var daysErr error
	if p.DepositDueDays <= 0 {
		daysErr = errs.NewValueIsInvalidErrorWithCause("deposit due days", fmt.Errorf("%d is not greater than 0", p.DepositDueDays))
	}
	return errors.Join(kernel.ValidatePercentage("progress percent", p.ProgressPercent), daysErr)
}

// Scheduler derives payment milestones from order terms. It is pure.
type Scheduler struct {
	policy Policy
}

func NewScheduler(policy Policy) (*Scheduler, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{policy: policy}, nil
}

// ScheduleForOrder returns the milestones for the order's total price.
//
// Orders with a deposit percent get DEPOSIT, an optional PROGRESS and a
// BALANCE for the remainder; the last milestone absorbs rounding so the
// amounts add up to the total exactly. Samples, and orders without a deposit,
// get a single FULL payment.
//
// Due dates: deposit after DepositDueDays, progress halfway through
// production, balance and full at the end of production.
func (s *Scheduler) ScheduleForOrder(o *order.Order, now time.Time) ([]Intent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	total := o.TotalPrice()
	productionDays := o.ProductionDays()
	productionEnd := now.AddDate(0, 0, s.policy.DepositDueDays+productionDays)

	deposit := o.DepositPercent()
	if o.Kind() == lifecycle.KindSample || deposit.IsZero() || deposit.Equal(hundred) {
		return []Intent{{Type: TypeFull, Amount: total, Percentage: hundred, DueDate: productionEnd}}, nil
	}

	progress := s.policy.ProgressPercent
	if deposit.Add(progress).GreaterThan(hundred) {
		return nil, errs.NewValueIsOutOfRangeError("deposit and progress percent", deposit.Add(progress).String(), 0, 100)
	}

	intents := []Intent{{
		Type:       TypeDeposit,
		Percentage: deposit,
		DueDate:    now.AddDate(0, 0, s.policy.DepositDueDays),
	}}
	if progress.IsPositive() {
		intents = append(intents, Intent{
			Type:       TypeProgress,
			Percentage: progress,
			DueDate:    now.AddDate(0, 0, s.policy.DepositDueDays+productionDays/2),
		})
	}
	if rest := hundred.Sub(deposit).Sub(progress); rest.IsPositive() {
		intents = append(intents, Intent{Type: TypeBalance, Percentage: rest, DueDate: productionEnd})
	}

	allocated := decimal.Zero
	for i := range intents {
		if i == len(intents)-1 {
			intents[i].Amount = total.Sub(allocated)
			break
		}
		intents[i].Amount = kernel.RoundMoney(total.Mul(intents[i].Percentage).Div(hundred))
		allocated = allocated.Add(intents[i].Amount)
	}
	return intents, nil
}
