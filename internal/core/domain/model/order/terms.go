package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Terms is the negotiable part of an order.
type Terms struct {
	Quantity       int
	UnitPrice      decimal.Decimal
	Currency       kernel.Currency
	ProductionDays int
	Deadline       *time.Time
	Specifications string
	Notes          string
}

// Validate checks the commercial fields. Deadline, specifications and notes are optional.
func (t Terms) Validate() error {
	return errors.Join(
		validateQuantity(t.Quantity),
		kernel.ValidatePositive("unit price is invalid", t.UnitPrice),
		t.Currency.Validate(),
		validateProductionDays(t.ProductionDays),
	)
}

// TotalPrice is quantity times unit price, rounded to money scale.
func (t Terms) TotalPrice() decimal.Decimal {
	return kernel.RoundMoney(t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity))))
}

func validateQuantity(q int) error {
	if q <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", q))
	}
	return nil
}

func validateProductionDays(d int) error {
	if d <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("production days is invalid", fmt.Errorf("%d is not greater than 0", d))
	}
	return nil
}

// QuoteType tells where the customer's counter-offer came from.
type QuoteType string

const (
	// QuoteTypeCounterOffer is a counter-offer made during pricing negotiation.
	QuoteTypeCounterOffer QuoteType = "COUNTER_OFFER"
	// QuoteTypeChangeRequest is a proposal spawned by a change that needs negotiation.
	QuoteTypeChangeRequest QuoteType = "CHANGE_REQUEST"
)

func (q QuoteType) Validate() error {
	if q != QuoteTypeCounterOffer && q != QuoteTypeChangeRequest {
		return errs.NewValueIsInvalidErrorWithCause("quote type", fmt.Errorf("%q is not a valid quote type", string(q)))
	}
	return nil
}

// CounterOffer is the latest customer proposal cached on the order. History
// lives in the negotiation rounds.
type CounterOffer struct {
	Price  decimal.Decimal
	Days   int
	Note   string
	Type   QuoteType
	SentAt time.Time
}

func (c CounterOffer) Validate() error {
	return errors.Join(
		kernel.ValidatePositive("customer quoted price is invalid", c.Price),
		validateProductionDays(c.Days),
		c.Type.Validate(),
	)
}
