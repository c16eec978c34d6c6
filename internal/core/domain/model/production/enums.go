package production

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Stage is one of the eight production stages, in order.
type Stage int

const (
	StageUnknown Stage = iota
	StagePlanning
	StageCutting
	StageSewing
	StageWashing
	StageFinishing
	StageQuality
	StagePackaging
	StageShipping
)

// StageCount is the number of production stages.
const StageCount = 8

var stageNames = map[Stage]string{
	StagePlanning:  "PLANNING",
	StageCutting:   "CUTTING",
	StageSewing:    "SEWING",
	StageWashing:   "WASHING",
	StageFinishing: "FINISHING",
	StageQuality:   "QUALITY",
	StagePackaging: "PACKAGING",
	StageShipping:  "SHIPPING",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Stage) Validate() error {
	if _, ok := stageNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// Next returns the following stage, or StageUnknown after SHIPPING.
func (s Stage) Next() Stage {
	if s < StagePlanning || s >= StageShipping {
		return StageUnknown
	}
	return s + 1
}

func ParseStage(name string) (Stage, error) {
	for s, n := range stageNames {
		if n == name {
			return s, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", name))
}

// OverallStatus is the state of the tracking as a whole.
type OverallStatus string

const (
	OverallInProgress OverallStatus = "IN_PROGRESS"
	OverallWaiting    OverallStatus = "WAITING"
	OverallBlocked    OverallStatus = "BLOCKED"
	OverallCompleted  OverallStatus = "COMPLETED"
	OverallCancelled  OverallStatus = "CANCELLED"
)

func ParseOverallStatus(s string) (OverallStatus, error) {
	switch o := OverallStatus(s); o {
	case OverallInProgress, OverallWaiting, OverallBlocked, OverallCompleted, OverallCancelled:
		return o, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("overall status", fmt.Errorf("%q is not a valid status", s))
}

// PlanStatus is the customer's verdict on the production plan.
type PlanStatus string

const (
	PlanDraft    PlanStatus = "DRAFT"
	PlanSent     PlanStatus = "SENT"
	PlanApproved PlanStatus = "APPROVED"
	PlanRejected PlanStatus = "REJECTED"
)

func ParsePlanStatus(s string) (PlanStatus, error) {
	switch p := PlanStatus(s); p {
	case PlanDraft, PlanSent, PlanApproved, PlanRejected:
		return p, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("plan status", fmt.Errorf("%q is not a valid status", s))
}

// StageStatus is the state of one stage update row.
type StageStatus string

const (
	StageNotStarted       StageStatus = "NOT_STARTED"
	StageInProgress       StageStatus = "IN_PROGRESS"
	StageOnHold           StageStatus = "ON_HOLD"
	StageCompleted        StageStatus = "COMPLETED"
	StageRequiresRevision StageStatus = "REQUIRES_REVISION"
)

func ParseStageStatus(s string) (StageStatus, error) {
	switch st := StageStatus(s); st {
	case StageNotStarted, StageInProgress, StageOnHold, StageCompleted, StageRequiresRevision:
		return st, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("stage status", fmt.Errorf("%q is not a valid status", s))
}
