package changelog

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ChangeType names the term that was changed.
type ChangeType string

const (
	ChangeTypeQuantity       ChangeType = "QUANTITY"
	ChangeTypePrice          ChangeType = "PRICE"
	ChangeTypeDeadline       ChangeType = "DEADLINE"
	ChangeTypeSpecifications ChangeType = "SPECIFICATIONS"
	ChangeTypeNotes          ChangeType = "NOTES"
	ChangeTypeOther          ChangeType = "OTHER"
)

func ParseChangeType(s string) (ChangeType, error) {
	switch t := ChangeType(s); t {
	case ChangeTypeQuantity, ChangeTypePrice, ChangeTypeDeadline, ChangeTypeSpecifications,
		ChangeTypeNotes, ChangeTypeOther:
		return t, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("change type", fmt.Errorf("%q is not a valid change type", s))
}

// Change is one of the typed variants below.
type Change interface {
	Type() ChangeType
	// Values splits the change into the previous and new documents.
	Values() (previous, next Values)
	// apply checks the previous value against the terms and returns the updated terms.
	apply(t order.Terms) (order.Terms, error)
}

type QuantityChange struct{ From, To int }

type PriceChange struct {
	From, To decimal.Decimal
	Currency kernel.Currency
}

type DeadlineChange struct{ From, To *time.Time }

type SpecificationsChange struct{ From, To string }

type NotesChange struct{ From, To string }

// OtherChange records a term the order does not model. It is audit-only.
type OtherChange struct {
	Field    string
	From, To string
}

func (QuantityChange) Type() ChangeType       { return ChangeTypeQuantity }
func (PriceChange) Type() ChangeType          { return ChangeTypePrice }
func (DeadlineChange) Type() ChangeType       { return ChangeTypeDeadline }
func (SpecificationsChange) Type() ChangeType { return ChangeTypeSpecifications }
func (NotesChange) Type() ChangeType          { return ChangeTypeNotes }
func (OtherChange) Type() ChangeType          { return ChangeTypeOther }

// Values is the structured document stored as previousValues / newValues.
// Only the fields of the change's type are set.
type Values struct {
	Quantity       *int             `json:"quantity,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	Deadline       *time.Time       `json:"deadline,omitempty"`
	Specifications *string          `json:"specifications,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Field          string           `json:"field,omitempty"`
	Value          *string          `json:"value,omitempty"`
}

func (c QuantityChange) Values() (Values, Values) {
	from, to := c.From, c.To
	return Values{Quantity: &from}, Values{Quantity: &to}
}

func (c PriceChange) Values() (Values, Values) {
	from, to := c.From, c.To
	return Values{UnitPrice: &from, Currency: c.Currency.String()}, Values{UnitPrice: &to, Currency: c.Currency.String()}
}

func (c DeadlineChange) Values() (Values, Values) {
	return Values{Deadline: c.From}, Values{Deadline: c.To}
}

func (c SpecificationsChange) Values() (Values, Values) {
	from, to := c.From, c.To
	return Values{Specifications: &from}, Values{Specifications: &to}
}

func (c NotesChange) Values() (Values, Values) {
	from, to := c.From, c.To
	return Values{Notes: &from}, Values{Notes: &to}
}

func (c OtherChange) Values() (Values, Values) {
	from, to := c.From, c.To
	return Values{Field: c.Field, Value: &from}, Values{Field: c.Field, Value: &to}
}

func mismatch(field string, current, from any) error {
	return errs.NewValueIsInvalidErrorWithCause(field,
		fmt.Errorf("previous value %v does not match current value %v", from, current))
}

func (c QuantityChange) apply(t order.Terms) (order.Terms, error) {
	if t.Quantity != c.From {
		return t, mismatch("quantity", t.Quantity, c.From)
	}
	t.Quantity = c.To
	return t, nil
}

func (c PriceChange) apply(t order.Terms) (order.Terms, error) {
	if c.Currency != t.Currency {
		return t, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%s does not match order currency %s", c.Currency, t.Currency))
	}
	if !t.UnitPrice.Equal(c.From) {
		return t, mismatch("unit price", t.UnitPrice, c.From)
	}
	t.UnitPrice = c.To
	return t, nil
}

func (c DeadlineChange) apply(t order.Terms) (order.Terms, error) {
	if !sameTime(t.Deadline, c.From) {
		return t, mismatch("deadline", t.Deadline, c.From)
	}
	t.Deadline = c.To
	return t, nil
}

func (c SpecificationsChange) apply(t order.Terms) (order.Terms, error) {
	if t.Specifications != c.From {
		return t, mismatch("specifications", t.Specifications, c.From)
	}
	t.Specifications = c.To
	return t, nil
}

func (c NotesChange) apply(t order.Terms) (order.Terms, error) {
	if t.Notes != c.From {
		return t, mismatch("notes", t.Notes, c.From)
	}
	t.Notes = c.To
	return t, nil
}

func (c OtherChange) apply(t order.Terms) (order.Terms, error) {
	if c.Field == "" {
		return t, errs.NewValueIsRequiredError("field")
	}
	return t, nil
}

// Apply checks the change against the current terms and returns the new terms.
func Apply(c Change, t order.Terms) (order.Terms, error) {
	if c == nil {
		return t, errs.NewValueIsRequiredError("change")
	}
	return c.apply(t)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// FromValues rebuilds the typed change from its stored documents.
func FromValues(t ChangeType, previous, next Values) (Change, error) {
	switch t {
	case ChangeTypeQuantity:
		if previous.Quantity == nil || next.Quantity == nil {
			return nil, errs.NewValueIsRequiredError("quantity")
		}
		return QuantityChange{From: *previous.Quantity, To: *next.Quantity}, nil
	case ChangeTypePrice:
		if previous.UnitPrice == nil || next.UnitPrice == nil {
			return nil, errs.NewValueIsRequiredError("unitPrice")
		}
		return PriceChange{From: *previous.UnitPrice, To: *next.UnitPrice, Currency: kernel.Currency(next.Currency)}, nil
	case ChangeTypeDeadline:
		return DeadlineChange{From: previous.Deadline, To: next.Deadline}, nil
	case ChangeTypeSpecifications:
		return SpecificationsChange{From: deref(previous.Specifications), To: deref(next.Specifications)}, nil
	case ChangeTypeNotes:
		return NotesChange{From: deref(previous.Notes), To: deref(next.Notes)}, nil
	case ChangeTypeOther:
		return OtherChange{Field: next.Field, From: deref(previous.Value), To: deref(next.Value)}, nil
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("change type", errors.New(string(t)))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
