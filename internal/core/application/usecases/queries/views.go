package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Read models are flat rows shaped for callers. Identifiers and enums are
// rendered as stored; money stays decimal.

// CounterOfferView is the customer's latest counter-offer cached on the order.
type CounterOfferView struct {
	Price  decimal.Decimal `json:"price"`
	Days   int             `json:"days"`
	Note   string          `json:"note,omitempty"`
	Type   string          `json:"type"`
	SentAt *time.Time      `json:"sentAt,omitempty"`
}

type OrderView struct {
	ID             uuid.UUID       `json:"id"`
	Kind           string          `json:"kind"`
	CustomerID     uuid.UUID       `json:"customerId"`
	ManufacturerID uuid.UUID       `json:"manufacturerId"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previousStatus,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Currency       string          `json:"currency"`
	ProductionDays int             `json:"productionDays"`
	Deadline       *time.Time      `json:"deadline,omitempty"`
	Specifications string          `json:"specifications,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	DepositPercent decimal.Decimal `json:"depositPercent"`

	CounterOffer *CounterOfferView `json:"counterOffer,omitempty"`

	EstimatedProductionDate *time.Time `json:"estimatedProductionDate,omitempty"`
	ActualProductionStart   *time.Time `json:"actualProductionStart,omitempty"`
	ActualProductionEnd     *time.Time `json:"actualProductionEnd,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NegotiationView struct {
	ID                  uuid.UUID       `json:"id"`
	Round               int             `json:"round"`
	SenderID            uuid.UUID       `json:"senderId"`
	SenderRole          string          `json:"senderRole"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	ProductionDays      int             `json:"productionDays"`
	Quantity            *int            `json:"quantity,omitempty"`
	Message             string          `json:"message,omitempty"`
	Status              string          `json:"status"`
	PreviousOrderStatus string          `json:"previousOrderStatus"`
	RelatedChangeLogID  *uuid.UUID      `json:"relatedChangeLogId,omitempty"`
	ExpiresAt           *time.Time      `json:"expiresAt,omitempty"`
	RespondedAt         *time.Time      `json:"respondedAt,omitempty"`
	RespondedBy         *uuid.UUID      `json:"respondedBy,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type ChangeLogView struct {
	ID                   uuid.UUID      `json:"id"`
	ChangedBy            uuid.UUID      `json:"changedBy"`
	ChangedByRole        string         `json:"changedByRole"`
	ChangeType           string         `json:"changeType"`
	PreviousValues       datatypes.JSON `json:"previousValues"`
	NewValues            datatypes.JSON `json:"newValues"`
	Reason               string         `json:"reason,omitempty"`
	ReviewStatus         string         `json:"reviewStatus"`
	ReviewResponse       string         `json:"reviewResponse,omitempty"`
	ReviewedAt           *time.Time     `json:"reviewedAt,omitempty"`
	ReviewedBy           *uuid.UUID     `json:"reviewedBy,omitempty"`
	NegotiationTriggered bool           `json:"negotiationTriggered"`
	NegotiationID        *uuid.UUID     `json:"negotiationId,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
}

type StageUpdateView struct {
	ID              uuid.UUID      `json:"id"`
	Stage           string         `json:"stage"`
	Status          string         `json:"status"`
	IsRevision      bool           `json:"isRevision"`
	DelayReason     string         `json:"delayReason,omitempty"`
	ExtraDays       int            `json:"extraDays"`
	Notes           string         `json:"notes,omitempty"`
	Photos          pq.StringArray `json:"photos"`
	ActualStartDate time.Time      `json:"actualStartDate"`
	ActualEndDate   *time.Time     `json:"actualEndDate,omitempty"`
	UpdatedBy       *uuid.UUID     `json:"updatedBy,omitempty"`
}

type TrackingView struct {
	ID                  uuid.UUID  `json:"id"`
	OrderID             uuid.UUID  `json:"orderId"`
	CurrentStage        string     `json:"currentStage"`
	OverallStatus       string     `json:"overallStatus"`
	Progress            int        `json:"progress"`
	HoldReason          string     `json:"holdReason,omitempty"`
	PlanStatus          string     `json:"planStatus"`
	PlanNote            string     `json:"planNote,omitempty"`
	PlanRejectionReason string     `json:"planRejectionReason,omitempty"`
	RevisionCount       int        `json:"revisionCount"`
	ActualStartDate     *time.Time `json:"actualStartDate,omitempty"`
	ActualEndDate       *time.Time `json:"actualEndDate,omitempty"`
	UpdatedAt           time.Time  `json:"updatedAt"`

	Stages []StageUpdateView `json:"stages" gorm:"-"`
}

type PaymentView struct {
	ID                uuid.UUID       `json:"id"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	Method            string          `json:"method,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Percentage        decimal.Decimal `json:"percentage"`
	Currency          string          `json:"currency"`
	ReceiptURL        string          `json:"receiptUrl,omitempty"`
	ReceiptUploadedAt *time.Time      `json:"receiptUploadedAt,omitempty"`
	ConfirmedAt       *time.Time      `json:"confirmedAt,omitempty"`
	ConfirmedBy       *uuid.UUID      `json:"confirmedBy,omitempty"`
	RejectionReason   string          `json:"rejectionReason,omitempty"`
	DueDate           *time.Time      `json:"dueDate,omitempty"`
	PaidDate          *time.Time      `json:"paidDate,omitempty"`
}
