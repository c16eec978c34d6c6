package lifecycle

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Action is a party or system action requesting a status change.
type Action int

const (
	ActionUnknown Action = iota
	ActionReview
	ActionSendQuote
	ActionCounterQuote
	ActionReviewQuote
	ActionAgreeQuote
	ActionConfirm
	ActionRequestDeposit
	ActionRecordDeposit
	ActionPreparePlan
	ActionSendPlan
	ActionApprovePlan
	ActionRejectPlan
	ActionStartProduction
	ActionRequestRevision
	ActionResumeProduction
	ActionCompleteProduction
	ActionStartQualityCheck
	ActionPassQuality
	ActionFailQuality
	ActionRework
	ActionRequestBalance
	ActionMarkReady
	ActionShip
	ActionDispatch
	ActionDeliver
	ActionConfirmReceipt
	ActionRequestSampleRevision
	ActionReviseSample

	// universal exits
	ActionHold
	ActionResume
	ActionReject
	ActionCancel

	// explicit-target moves, see Registry.RevertNegotiation and Registry.Override
	ActionRevertQuote
	ActionOverride
)

var actionNames = map[Action]string{
	ActionReview:                "REVIEW",
	ActionSendQuote:             "SEND_QUOTE",
	ActionCounterQuote:          "COUNTER_QUOTE",
	ActionReviewQuote:           "REVIEW_QUOTE",
	ActionAgreeQuote:            "AGREE_QUOTE",
	ActionConfirm:               "CONFIRM",
	ActionRequestDeposit:        "REQUEST_DEPOSIT",
	ActionRecordDeposit:         "RECORD_DEPOSIT",
	ActionPreparePlan:           "PREPARE_PLAN",
	ActionSendPlan:              "SEND_PLAN",
	ActionApprovePlan:           "APPROVE_PLAN",
	ActionRejectPlan:            "REJECT_PLAN",
	ActionStartProduction:       "START_PRODUCTION",
	ActionRequestRevision:       "REQUEST_REVISION",
	ActionResumeProduction:      "RESUME_PRODUCTION",
	ActionCompleteProduction:    "COMPLETE_PRODUCTION",
	ActionStartQualityCheck:     "START_QUALITY_CHECK",
	ActionPassQuality:           "PASS_QUALITY",
	ActionFailQuality:           "FAIL_QUALITY",
	ActionRework:                "REWORK",
	ActionRequestBalance:        "REQUEST_BALANCE",
	ActionMarkReady:             "MARK_READY",
	ActionShip:                  "SHIP",
	ActionDispatch:              "DISPATCH",
	ActionDeliver:               "DELIVER",
	ActionConfirmReceipt:        "CONFIRM_RECEIPT",
	ActionRequestSampleRevision: "REQUEST_SAMPLE_REVISION",
	ActionReviseSample:          "REVISE_SAMPLE",
	ActionHold:                  "HOLD",
	ActionResume:                "RESUME",
	ActionReject:                "REJECT",
	ActionCancel:                "CANCEL",
	ActionRevertQuote:           "REVERT_QUOTE",
	ActionOverride:              "OVERRIDE",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", name))
}

// IsExit reports whether the action is one of the universal exits.
func (a Action) IsExit() bool {
	return a == ActionHold || a == ActionResume || a == ActionReject || a == ActionCancel
}

// Gate is a payment precondition attached to an order edge.
type Gate int

const (
	GateNone Gate = iota
	GateDeposit
	GateBalance
)

func (g Gate) String() string {
	switch g {
	case GateDeposit:
		return "DEPOSIT"
	case GateBalance:
		return "BALANCE"
	case GateNone:
	}
	return "NONE"
}

// GateChecker answers whether a payment gate is satisfied for one order.
// It is implemented by payment.Ledger, so the registry never sees payments.
type GateChecker interface {
	IsOrderPaymentGateSatisfied(gate Gate) bool
}
