package http

import (
	"time"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/production"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request bodies. Money travels as decimal strings.

type NewOrder struct {
	Kind           string           `json:"kind"`
	CustomerID     uuid.UUID        `json:"customerId"`
	ManufacturerID uuid.UUID        `json:"manufacturerId"`
	Quantity       int              `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unitPrice"`
	Currency       string           `json:"currency"`
	ProductionDays int              `json:"productionDays"`
	Deadline       *time.Time       `json:"deadline,omitempty"`
	Specifications string           `json:"specifications,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	DepositPercent *decimal.Decimal `json:"depositPercent,omitempty"`
}

type TransitionRequest struct {
	Action string `json:"action"`
}

type OverrideRequest struct {
	Status string `json:"status"`
}

type ProposalRequest struct {
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	ProductionDays int             `json:"productionDays"`
	Quantity       *int            `json:"quantity,omitempty"`
	Message        string          `json:"message,omitempty"`
}

type DecisionRequest struct {
	Decision string `json:"decision"`
}

type NewChange struct {
	ChangeType     string           `json:"changeType"`
	PreviousValues changelog.Values `json:"previousValues"`
	NewValues      changelog.Values `json:"newValues"`
	Reason         string           `json:"reason,omitempty"`
}

type ReviewRequest struct {
	Decision           string `json:"decision"`
	Response           string `json:"response,omitempty"`
	TriggerNegotiation bool   `json:"triggerNegotiation,omitempty"`
}

type PlanRequest struct {
	Step string `json:"step"`
	Text string `json:"text,omitempty"`
}

type StageReport struct {
	DelayReason string   `json:"delayReason,omitempty"`
	ExtraDays   int      `json:"extraDays,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Photos      []string `json:"photos,omitempty"`
}

func (r StageReport) toDomain() production.StageReport {
	return production.StageReport{
		DelayReason: r.DelayReason,
		ExtraDays:   r.ExtraDays,
		Notes:       r.Notes,
		Photos:      r.Photos,
	}
}

type AdvanceRequest struct {
	StageReport

	ToStage  string `json:"toStage"`
	Override bool   `json:"override,omitempty"`
}

type RevertRequest struct {
	ToStage string `json:"toStage"`
	Reason  string `json:"reason"`
}

type ProductionStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type ReceiptRequest struct {
	ReceiptURL string `json:"receiptUrl"`
	Method     string `json:"method,omitempty"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}
