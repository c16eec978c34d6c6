package lifecycle

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is a lifecycle state shared by orders and samples. Each kind uses a
// subset: orders have 30 statuses, samples 28 (no deposit or balance steps,
// plus REVISION_REQUESTED).
type Status int

const (
	StatusUnknown Status = iota

	// request / review
	StatusPending
	StatusReviewed

	// pricing negotiation
	StatusQuoteSent
	StatusCustomerQuoteSent
	StatusManufacturerReviewingQuote
	StatusQuoteAgreed

	// confirmation
	StatusConfirmed
	StatusDepositPending
	StatusDepositReceived

	// production planning
	StatusProductionPlanPreparing
	StatusProductionPlanSent
	StatusProductionPlanApproved
	StatusProductionPlanRejected

	// production
	StatusInProduction
	StatusProductionRevision
	StatusProductionComplete

	// quality / shipping
	StatusQualityCheck
	StatusQualityApproved
	StatusQualityFailed
	StatusBalancePending
	StatusReadyToShip
	StatusShipped
	StatusInTransit
	StatusDelivered
	StatusCompleted
	StatusRevisionRequested

	// rejection / cancellation
	StatusOnHold
	StatusRejected
	StatusRejectedByCustomer
	StatusRejectedByManufacturer
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPending:                    "PENDING",
	StatusReviewed:                   "REVIEWED",
	StatusQuoteSent:                  "QUOTE_SENT",
	StatusCustomerQuoteSent:          "CUSTOMER_QUOTE_SENT",
	StatusManufacturerReviewingQuote: "MANUFACTURER_REVIEWING_QUOTE",
	StatusQuoteAgreed:                "QUOTE_AGREED",
	StatusConfirmed:                  "CONFIRMED",
	StatusDepositPending:             "DEPOSIT_PENDING",
	StatusDepositReceived:            "DEPOSIT_RECEIVED",
	StatusProductionPlanPreparing:    "PRODUCTION_PLAN_PREPARING",
	StatusProductionPlanSent:         "PRODUCTION_PLAN_SENT",
	StatusProductionPlanApproved:     "PRODUCTION_PLAN_APPROVED",
	StatusProductionPlanRejected:     "PRODUCTION_PLAN_REJECTED",
	StatusInProduction:               "IN_PRODUCTION",
	StatusProductionRevision:         "PRODUCTION_REVISION",
	StatusProductionComplete:         "PRODUCTION_COMPLETE",
	StatusQualityCheck:               "QUALITY_CHECK",
	StatusQualityApproved:            "QUALITY_APPROVED",
	StatusQualityFailed:              "QUALITY_FAILED",
	StatusBalancePending:             "BALANCE_PENDING",
	StatusReadyToShip:                "READY_TO_SHIP",
	StatusShipped:                    "SHIPPED",
	StatusInTransit:                  "IN_TRANSIT",
	StatusDelivered:                  "DELIVERED",
	StatusCompleted:                  "COMPLETED",
	StatusRevisionRequested:          "REVISION_REQUESTED",
	StatusOnHold:                     "ON_HOLD",
	StatusRejected:                   "REJECTED",
	StatusRejectedByCustomer:         "REJECTED_BY_CUSTOMER",
	StatusRejectedByManufacturer:     "REJECTED_BY_MANUFACTURER",
	StatusCancelled:                  "CANCELLED",
}

var statusByName = func() map[string]Status {
	m := make(map[string]Status, len(statusNames))
	for s, name := range statusNames {
		m[name] = s
	}
	return m
}()

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStatus maps a persisted name back to a Status.
func ParseStatus(name string) (Status, error) {
	if s, ok := statusByName[name]; ok {
		return s, nil
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// Phase groups statuses into the seven coarse lifecycle stages.
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseRequest
	PhasePricing
	PhaseConfirmation
	PhasePlanning
	PhaseProduction
	PhaseFulfillment
	PhaseExit
)

var phaseNames = map[Phase]string{
	PhaseRequest:      "REQUEST",
	PhasePricing:      "PRICING",
	PhaseConfirmation: "CONFIRMATION",
	PhasePlanning:     "PLANNING",
	PhaseProduction:   "PRODUCTION",
	PhaseFulfillment:  "FULFILLMENT",
	PhaseExit:         "EXIT",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// Phase returns the phase the status belongs to.
func (s Status) Phase() Phase {
	switch {
	case s >= StatusPending && s <= StatusReviewed:
		return PhaseRequest
	case s >= StatusQuoteSent && s <= StatusQuoteAgreed:
		return PhasePricing
	case s >= StatusConfirmed && s <= StatusDepositReceived:
		return PhaseConfirmation
	case s >= StatusProductionPlanPreparing && s <= StatusProductionPlanRejected:
		return PhasePlanning
	case s >= StatusInProduction && s <= StatusProductionComplete:
		return PhaseProduction
	case s >= StatusQualityCheck && s <= StatusRevisionRequested:
		return PhaseFulfillment
	case s >= StatusOnHold && s <= StatusCancelled:
		return PhaseExit
	}
	return PhaseUnknown
}

// IsTerminal reports whether the status accepts no action except an
// administrative override.
func (s Status) IsTerminal() bool {
	switch s { //nolint:exhaustive // every other status is in flight
	case StatusDelivered, StatusCompleted, StatusRejected, StatusRejectedByCustomer,
		StatusRejectedByManufacturer, StatusCancelled:
		return true
	}
	return false
}

// IsNegotiable reports whether a counter-offer may be made from the status.
// PENDING and REVIEWED are included so the first quote can be proposed.
func (s Status) IsNegotiable() bool {
	switch s { //nolint:exhaustive // closed subset
	case StatusPending, StatusReviewed, StatusQuoteSent, StatusCustomerQuoteSent, StatusManufacturerReviewingQuote:
		return true
	}
	return false
}

// IsConfirmed reports whether terms were agreed and confirmed and the status is
// still in flight. Term edits from here on go through the change auditor.
func (s Status) IsConfirmed() bool {
	p := s.Phase()
	return (p == PhaseConfirmation || p == PhasePlanning || p == PhaseProduction || p == PhaseFulfillment) &&
		!s.IsTerminal()
}

// IsProductionGated reports whether entering the status requires the deposit
// gate for orders: PRODUCTION_PLAN_APPROVED and everything downstream of it.
func (s Status) IsProductionGated() bool {
	switch s { //nolint:exhaustive // closed subset
	case StatusProductionPlanApproved, StatusInProduction, StatusProductionRevision, StatusProductionComplete,
		StatusQualityCheck, StatusQualityApproved, StatusQualityFailed, StatusBalancePending,
		StatusReadyToShip, StatusShipped, StatusInTransit, StatusDelivered, StatusCompleted:
		return true
	}
	return false
}

var orderOnly = map[Status]bool{
	StatusDepositPending:  true,
	StatusDepositReceived: true,
	StatusBalancePending:  true,
}

var sampleOnly = map[Status]bool{
	StatusRevisionRequested: true,
}

// BelongsTo reports whether the status is part of the kind's vocabulary.
func (s Status) BelongsTo(kind EntityKind) bool {
	if _, ok := statusNames[s]; !ok {
		return false
	}
	switch kind {
	case KindOrder:
		return !sampleOnly[s]
	case KindSample:
		return !orderOnly[s]
	case KindUnknown:
	}
	return false
}

// Statuses lists the vocabulary of a kind in declaration order.
func Statuses(kind EntityKind) []Status {
	out := make([]Status, 0, len(statusNames))
	for s := StatusPending; s <= StatusCancelled; s++ {
		if s.BelongsTo(kind) {
			out = append(out, s)
		}
	}
	return out
}

// ValidateFor checks that the status is known and belongs to the kind.
func (s Status) ValidateFor(kind EntityKind) error {
	if !s.BelongsTo(kind) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid %s status", s, kind),
		)
	}
	return nil
}
