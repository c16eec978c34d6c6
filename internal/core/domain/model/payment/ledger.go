package payment

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Ledger is a read model over the payments of one order.
type Ledger struct {
	orderID        kernel.UUID
	total          decimal.Decimal
	depositPercent decimal.Decimal
	payments       []*Payment
}

var _ lifecycle.GateChecker = (*Ledger)(nil)

// NewLedger builds the read model. A positive depositPercent makes a
// confirmed deposit a precondition of the deposit and balance gates, whether
// or not the deposit was ever scheduled.
func NewLedger(orderID kernel.UUID, total, depositPercent decimal.Decimal, payments []*Payment) *Ledger {
	return &Ledger{orderID: orderID, total: total, depositPercent: depositPercent, payments: payments}
}

func (l *Ledger) OrderID() kernel.UUID       { return l.orderID }
func (l *Ledger) Total() decimal.Decimal     { return l.total }
func (l *Ledger) Payments() []*Payment       { return append([]*Payment(nil), l.payments...) }
func (l *Ledger) HasScheduledPayments() bool { return len(l.live()) > 0 }

// ConfirmedTotal sums CONFIRMED amounts.
func (l *Ledger) ConfirmedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range l.payments {
		if p.IsConfirmed() {
			sum = sum.Add(p.amount)
		}
	}
	return sum
}

// Outstanding is the part of the total not yet confirmed.
func (l *Ledger) Outstanding() decimal.Decimal {
	return l.total.Sub(l.ConfirmedTotal())
}

// CheckConfirm fails if confirming p would push confirmed payments past the total.
func (l *Ledger) CheckConfirm(p *Payment) error {
	confirmed := l.ConfirmedTotal()
	if confirmed.Add(p.amount).GreaterThan(l.total) {
		return errs.NewPaymentExceedsTotalError(confirmed.String(), p.amount.String(), l.total.String())
	}
	return nil
}

// CheckTotal fails if the confirmed payments already exceed the total, as
// after a term revision that lowers it.
func (l *Ledger) CheckTotal() error {
	confirmed := l.ConfirmedTotal()
	if confirmed.GreaterThan(l.total) {
		return errs.NewPaymentExceedsTotalError(confirmed.String(), decimal.Zero.String(), l.total.String())
	}
	return nil
}

// CheckSchedule fails if the live (not cancelled) payments plus the new
// amounts would exceed the total.
func (l *Ledger) CheckSchedule(intents []Intent) error {
	scheduled := decimal.Zero
	for _, p := range l.live() {
		scheduled = scheduled.Add(p.amount)
	}
	add := decimal.Zero
	for _, in := range intents {
		add = add.Add(in.Amount)
	}
	if scheduled.Add(add).GreaterThan(l.total) {
		return errs.NewPaymentExceedsTotalError(scheduled.String(), add.String(), l.total.String())
	}
	return nil
}

// IsOrderPaymentGateSatisfied reports whether the payments required by the
// gate are confirmed. A confirmed FULL payment satisfies every gate. An order
// with a deposit percent needs a confirmed DEPOSIT before any gate opens;
// otherwise a gate without live payments of its types is satisfied.
func (l *Ledger) IsOrderPaymentGateSatisfied(gate lifecycle.Gate) bool {
	var required []Type
	switch gate {
	case lifecycle.GateNone:
		return true
	case lifecycle.GateDeposit:
		required = []Type{TypeDeposit}
	case lifecycle.GateBalance:
		required = []Type{TypeDeposit, TypeProgress, TypeBalance}
	}

	depositConfirmed := false
	for _, p := range l.payments {
		if p.typ == TypeFull && p.IsConfirmed() {
			return true
		}
		if p.typ == TypeDeposit && p.IsConfirmed() {
			depositConfirmed = true
		}
	}
	if l.depositPercent.IsPositive() && !depositConfirmed {
		return false
	}
	for _, p := range l.live() {
		if !hasType(required, p.typ) && p.typ != TypeFull {
			continue
		}
		if !p.IsConfirmed() {
			return false
		}
	}
	return true
}

func (l *Ledger) live() []*Payment {
	out := make([]*Payment, 0, len(l.payments))
	for _, p := range l.payments {
		if !p.IsCancelled() {
			out = append(out, p)
		}
	}
	return out
}

func hasType(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
