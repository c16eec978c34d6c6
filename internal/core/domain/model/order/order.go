package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Event names recorded by the aggregate.
const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
	EventTermsAgreed   = "order.terms_agreed"
	EventTermsChanged  = "order.terms_changed"
)

// Order is the aggregate root for both orders and samples. The two kinds share
// one shape and differ only in the status vocabulary the registry allows.
//
// Order follows these invariants:
//   - Must have a valid identifier, kind and both party references
//   - Terms must be valid (positive quantity, price and lead time)
//   - Status belongs to the kind's vocabulary and is only moved through the registry
//   - previousStatus is set exactly while the order is ON_HOLD
type Order struct {
	kernel.EventRecorder

	id             kernel.UUID
	kind           lifecycle.EntityKind
	customerID     kernel.UUID
	manufacturerID kernel.UUID

	terms          Terms
	depositPercent decimal.Decimal

	// counterOffer caches the customer's latest proposal (nil if none)
	counterOffer *CounterOffer

	estimatedProductionDate *time.Time
	actualProductionStart   *time.Time
	actualProductionEnd     *time.Time

	status         lifecycle.Status
	previousStatus lifecycle.Status

	version   int
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a PENDING order or sample.
//
// Parameters:
//   - id: unique identifier
//   - kind: KindOrder or KindSample
//   - customerID, manufacturerID: the two parties
//   - terms: requested quantity, price, currency and lead time
//   - depositPercent: share of the total due as deposit, 0..100
//   - now: creation timestamp
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), lifecycle.KindOrder, customerID, manufacturerID,
//	    order.Terms{Quantity: 100, UnitPrice: decimal.NewFromInt(10), Currency: "USD", ProductionDays: 20},
//	    decimal.NewFromInt(30), time.Now())
func NewOrder(
	id kernel.UUID,
	kind lifecycle.EntityKind,
	customerID, manufacturerID kernel.UUID,
	terms Terms,
	depositPercent decimal.Decimal,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        lifecycle.StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setKind(kind),
		o.setParties(customerID, manufacturerID),
		o.setTerms(terms),
		o.setDepositPercent(depositPercent),
	); err != nil {
		return nil, err
	}

	o.Record(EventCreated, o.id, now, map[string]string{
		"kind":         kind.String(),
		"customer":     customerID.String(),
		"manufacturer": manufacturerID.String(),
	})
	return o, nil
}

// Snapshot carries persisted state into RestoreOrder.
type Snapshot struct {
	ID                      kernel.UUID
	Kind                    lifecycle.EntityKind
	CustomerID              kernel.UUID
	ManufacturerID          kernel.UUID
	Terms                   Terms
	DepositPercent          decimal.Decimal
	CounterOffer            *CounterOffer
	EstimatedProductionDate *time.Time
	ActualProductionStart   *time.Time
	ActualProductionEnd     *time.Time
	Status                  lifecycle.Status
	PreviousStatus          lifecycle.Status
	Version                 int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// RestoreOrder rebuilds an order from storage. It validates the same rules as
// NewOrder plus status consistency, and records no events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		counterOffer:            s.CounterOffer,
		estimatedProductionDate: s.EstimatedProductionDate,
		actualProductionStart:   s.ActualProductionStart,
		actualProductionEnd:     s.ActualProductionEnd,
		version:                 s.Version,
		createdAt:               s.CreatedAt,
		updatedAt:               s.UpdatedAt,
		isConstructed:           true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setKind(s.Kind),
		o.setParties(s.CustomerID, s.ManufacturerID),
		o.setTerms(s.Terms),
		o.setDepositPercent(s.DepositPercent),
		o.setStatus(s.Kind, s.Status, s.PreviousStatus),
	); err != nil {
		return nil, err
	}
	if s.CounterOffer != nil {
		if err := s.CounterOffer.Validate(); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                  { return o.id }
func (o *Order) Kind() lifecycle.EntityKind       { return o.kind }
func (o *Order) CustomerID() kernel.UUID          { return o.customerID }
func (o *Order) ManufacturerID() kernel.UUID      { return o.manufacturerID }
func (o *Order) Terms() Terms                     { return o.terms }
func (o *Order) Quantity() int                    { return o.terms.Quantity }
func (o *Order) UnitPrice() decimal.Decimal       { return o.terms.UnitPrice }
func (o *Order) Currency() kernel.Currency        { return o.terms.Currency }
func (o *Order) ProductionDays() int              { return o.terms.ProductionDays }
func (o *Order) TotalPrice() decimal.Decimal      { return o.terms.TotalPrice() }
func (o *Order) DepositPercent() decimal.Decimal  { return o.depositPercent }
func (o *Order) Status() lifecycle.Status         { return o.status }
func (o *Order) PreviousStatus() lifecycle.Status { return o.previousStatus }
func (o *Order) Version() int                     { return o.version }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }

// CounterOffer returns a copy of the cached customer proposal, or nil.
func (o *Order) CounterOffer() *CounterOffer {
	if o.counterOffer == nil {
		return nil
	}
	c := *o.counterOffer
	return &c
}

func (o *Order) EstimatedProductionDate() *time.Time { return o.estimatedProductionDate }
func (o *Order) ActualProductionStart() *time.Time   { return o.actualProductionStart }
func (o *Order) ActualProductionEnd() *time.Time     { return o.actualProductionEnd }

// PartyID returns the account acting for the role, or false for non-party roles.
func (o *Order) PartyID(role lifecycle.Role) (kernel.UUID, bool) {
	switch role { //nolint:exhaustive // only parties have accounts on the order
	case lifecycle.RoleCustomer:
		return o.customerID, true
	case lifecycle.RoleManufacturer:
		return o.manufacturerID, true
	}
	return kernel.UUID{}, false
}

// RoleOf maps an account to its role on this order.
func (o *Order) RoleOf(accountID kernel.UUID) lifecycle.Role {
	switch {
	case accountID.IsEqual(o.customerID):
		return lifecycle.RoleCustomer
	case accountID.IsEqual(o.manufacturerID):
		return lifecycle.RoleManufacturer
	}
	return lifecycle.RoleUnknown
}

// Transition takes action as role through the registry.
//
// Business rules:
//   - The registry decides legality and the target status
//   - ActionResume returns to the status remembered by the hold
//   - Payment-gated edges (orders only) need gates to report the gate satisfied;
//     a nil checker counts as not satisfied
//   - Entering IN_PRODUCTION first time stamps actualProductionStart,
//     PRODUCTION_COMPLETE stamps actualProductionEnd
//
// On failure the order is left unchanged.
func (o *Order) Transition(
	reg *lifecycle.Registry,
	action lifecycle.Action,
	role lifecycle.Role,
	gates lifecycle.GateChecker,
	now time.Time,
) error {
	if action == lifecycle.ActionResume {
		to, err := reg.Resume(o.kind, o.status, o.previousStatus, role)
		if err != nil {
			return err
		}
		o.moveTo(to, action, role, now)
		return nil
	}

	edge, err := reg.Resolve(o.kind, o.status, action, role)
	if err != nil {
		return err
	}
	if edge.Gate != lifecycle.GateNone && (gates == nil || !gates.IsOrderPaymentGateSatisfied(edge.Gate)) {
		return errs.NewPaymentGateNotSatisfiedError(edge.Gate.String(), action.String())
	}
	o.moveTo(edge.To, action, role, now)
	return nil
}

// RevertNegotiation returns a negotiable status to the one held before a
// proposal that was rejected or expired.
func (o *Order) RevertNegotiation(reg *lifecycle.Registry, to lifecycle.Status, role lifecycle.Role, now time.Time) error {
	next, err := reg.RevertNegotiation(o.kind, o.status, to, role)
	if err != nil {
		return err
	}
	o.moveTo(next, lifecycle.ActionRevertQuote, role, now)
	return nil
}

// Override is the administrative escape hatch; it may leave a terminal status.
func (o *Order) Override(reg *lifecycle.Registry, to lifecycle.Status, role lifecycle.Role, now time.Time) error {
	next, err := reg.Override(o.kind, o.status, to, role)
	if err != nil {
		return err
	}
	o.moveTo(next, lifecycle.ActionOverride, role, now)
	return nil
}

func (o *Order) moveTo(to lifecycle.Status, action lifecycle.Action, role lifecycle.Role, now time.Time) {
	from := o.status
	switch {
	case to == lifecycle.StatusOnHold:
		o.previousStatus = from
	case from == lifecycle.StatusOnHold:
		o.previousStatus = lifecycle.StatusUnknown
	}

	switch to { //nolint:exhaustive // only production milestones are stamped
	case lifecycle.StatusInProduction:
		if o.actualProductionStart == nil {
			t := now
			o.actualProductionStart = &t
		}
	case lifecycle.StatusProductionComplete:
		t := now
		o.actualProductionEnd = &t
	}

	o.status = to
	o.updatedAt = now
	o.Record(EventStatusChanged, o.id, now, map[string]string{
		"from":   from.String(),
		"to":     to.String(),
		"action": action.String(),
		"role":   role.String(),
	})
}

// ApplyAgreedTerms copies an accepted proposal onto the order. quantity is
// optional; nil keeps the current quantity.
func (o *Order) ApplyAgreedTerms(unitPrice decimal.Decimal, productionDays int, quantity *int, now time.Time) error {
	next := o.terms
	next.UnitPrice = unitPrice
	next.ProductionDays = productionDays
	if quantity != nil {
		next.Quantity = *quantity
	}
	if err := next.Validate(); err != nil {
		return err
	}

	o.terms = next
	estimated := now.AddDate(0, 0, productionDays)
	o.estimatedProductionDate = &estimated
	o.updatedAt = now
	o.Record(EventTermsAgreed, o.id, now, map[string]string{
		"unitPrice":      unitPrice.String(),
		"productionDays": fmt.Sprint(productionDays),
		"quantity":       fmt.Sprint(next.Quantity),
	})
	return nil
}

// RecordCounterOffer overwrites the cached customer proposal.
func (o *Order) RecordCounterOffer(offer CounterOffer) error {
	if err := offer.Validate(); err != nil {
		return err
	}
	o.counterOffer = &offer
	o.updatedAt = offer.SentAt
	return nil
}

// ReviseTerms replaces the terms after confirmation. The change auditor is the
// only caller; it logs the previous values first.
func (o *Order) ReviseTerms(next Terms, now time.Time) error {
	if !o.status.IsConfirmed() {
		return errs.NewIllegalTransitionError(o.kind.String(), o.status.String(), "REVISE_TERMS")
	}
	if next.Currency != o.terms.Currency {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%s cannot be changed to %s", o.terms.Currency, next.Currency))
	}
	if err := next.Validate(); err != nil {
		return err
	}
	o.terms = next
	o.updatedAt = now
	o.Record(EventTermsChanged, o.id, now, nil)
	return nil
}

// Touch marks a write to one of the order's children so the version check
// serialises concurrent writers on the aggregate.
func (o *Order) Touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setKind(kind lifecycle.EntityKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Order) setParties(customerID, manufacturerID kernel.UUID) error {
	if err := errors.Join(customerID.Validate(), manufacturerID.Validate()); err != nil {
		return err
	}
	if customerID.IsEqual(manufacturerID) {
		return errs.NewValueIsInvalidErrorWithCause("parties", errors.New("customer and manufacturer must differ"))
	}
	o.customerID = customerID
	o.manufacturerID = manufacturerID
	return nil
}

func (o *Order) setTerms(t Terms) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.terms = t
	return nil
}

func (o *Order) setDepositPercent(p decimal.Decimal) error {
	if err := kernel.ValidatePercentage("deposit percent", p); err != nil {
		return err
	}
	o.depositPercent = p
	return nil
}

func (o *Order) setStatus(kind lifecycle.EntityKind, status, previous lifecycle.Status) error {
	if err := status.ValidateFor(kind); err != nil {
		return err
	}
	if status == lifecycle.StatusOnHold {
		if err := previous.ValidateFor(kind); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("previous status", err)
		}
	} else if previous != lifecycle.StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("previous status",
			fmt.Errorf("%s is only kept while on hold", previous))
	}
	o.status = status
	o.previousStatus = previous
	return nil
}

// Persisted records the version the repository just wrote.
func (o *Order) Persisted(version int) {
	o.version = version
}
