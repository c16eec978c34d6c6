package kernel

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for prices and payments.
const MoneyScale = 2

// Currency is an ISO 4217 alphabetic code.
type Currency string

// NewCurrency upper-cases and validates a three letter code.
func NewCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Currency) Validate() error {
	if len(c) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3 letter code", string(c)))
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3 letter code", string(c)))
		}
	}
	return nil
}

func (c Currency) String() string {
	return string(c)
}

// RoundMoney rounds half away from zero to MoneyScale digits.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// ValidatePositive rejects zero and negative amounts.
func ValidatePositive(paramName string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is not greater than 0", d.String()))
	}
	return nil
}

// ValidatePercentage accepts values in [0, 100].
func ValidatePercentage(paramName string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return errs.NewValueIsOutOfRangeError(paramName, d.String(), 0, 100)
	}
	return nil
}
