package negotiation

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status of a negotiation round.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusAccepted
	StatusRejected
	StatusSuperseded
	StatusExpired
)

var statusNames = map[Status]string{
	StatusPending:    "PENDING",
	StatusAccepted:   "ACCEPTED",
	StatusRejected:   "REJECTED",
	StatusSuperseded: "SUPERSEDED",
	StatusExpired:    "EXPIRED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("negotiation status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("negotiation status",
		fmt.Errorf("%q is not a valid status", name))
}

// Decision is the answer given to a pending round.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionAccept
	DecisionReject
	// DecisionExpire is only taken by the system sweep.
	DecisionExpire
)

var decisionNames = map[Decision]string{
	DecisionAccept: "ACCEPT",
	DecisionReject: "REJECT",
	DecisionExpire: "EXPIRE",
}

func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return "UNKNOWN"
}

func ParseDecision(name string) (Decision, error) {
	for d, n := range decisionNames {
		if n == name {
			return d, nil
		}
	}
	return DecisionUnknown, errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not a valid decision", name))
}

func (d Decision) outcome() Status {
	switch d {
	case DecisionAccept:
		return StatusAccepted
	case DecisionReject:
		return StatusRejected
	case DecisionExpire:
		return StatusExpired
	case DecisionUnknown:
	}
	return StatusUnknown
}
