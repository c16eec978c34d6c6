package payment

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

const (
	EventScheduled        = "payment.scheduled"
	EventReceiptUploaded  = "payment.receipt_uploaded"
	EventConfirmed        = "payment.confirmed"
	EventRejected         = "payment.rejected"
	EventOverdue          = "payment.overdue"
	EventPaymentCancelled = "payment.cancelled"
)

// Payment is one milestone payment of an order.
type Payment struct {
	kernel.EventRecorder

	id         kernel.UUID
	orderID    kernel.UUID
	typ        Type
	status     Status
	method     Method
	amount     decimal.Decimal
	percentage decimal.Decimal
	currency   kernel.Currency

	receiptURL        string
	receiptUploadedAt *time.Time
	receiptUploadedBy *kernel.UUID

	confirmedAt     *time.Time
	confirmedBy     *kernel.UUID
	rejectionReason string
	rejectedAt      *time.Time

	dueDate   *time.Time
	paidDate  *time.Time
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPayment persists a scheduled intent as a PENDING payment.
func NewPayment(id, orderID kernel.UUID, intent Intent, currency kernel.Currency, now time.Time) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		currency.Validate(),
		intent.Validate(),
	); err != nil {
		return nil, err
	}
	due := intent.DueDate
	p := &Payment{
		id:            id,
		orderID:       orderID,
		typ:           intent.Type,
		status:        StatusPending,
		amount:        intent.Amount,
		percentage:    intent.Percentage,
		currency:      currency,
		dueDate:       &due,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	p.Record(EventScheduled, orderID, now, map[string]string{
		"payment": id.String(),
		"type":    string(intent.Type),
		"amount":  intent.Amount.String(),
	})
	return p, nil
}

type Snapshot struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	Type              Type
	Status            Status
	Method            Method
	Amount            decimal.Decimal
	Percentage        decimal.Decimal
	Currency          kernel.Currency
	ReceiptURL        string
	ReceiptUploadedAt *time.Time
	ReceiptUploadedBy *kernel.UUID
	ConfirmedAt       *time.Time
	ConfirmedBy       *kernel.UUID
	RejectionReason   string
	RejectedAt        *time.Time
	DueDate           *time.Time
	PaidDate          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func RestorePayment(s Snapshot) (*Payment, error) {
	_, typeErr := ParseType(string(s.Type))
	_, statusErr := ParseStatus(string(s.Status))
	if err := errors.Join(
		s.ID.Validate(), s.OrderID.Validate(), s.Currency.Validate(), typeErr, statusErr,
		kernel.ValidatePositive("amount", s.Amount),
	); err != nil {
		return nil, err
	}
	return &Payment{
		id:                s.ID,
		orderID:           s.OrderID,
		typ:               s.Type,
		status:            s.Status,
		method:            s.Method,
		amount:            s.Amount,
		percentage:        s.Percentage,
		currency:          s.Currency,
		receiptURL:        s.ReceiptURL,
		receiptUploadedAt: s.ReceiptUploadedAt,
		receiptUploadedBy: s.ReceiptUploadedBy,
		confirmedAt:       s.ConfirmedAt,
		confirmedBy:       s.ConfirmedBy,
		rejectionReason:   s.RejectionReason,
		rejectedAt:        s.RejectedAt,
		dueDate:           s.DueDate,
		paidDate:          s.PaidDate,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		isConstructed:     true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID                  { return p.id }
func (p *Payment) OrderID() kernel.UUID             { return p.orderID }
func (p *Payment) Type() Type                       { return p.typ }
func (p *Payment) Status() Status                   { return p.status }
func (p *Payment) Method() Method                   { return p.method }
func (p *Payment) Amount() decimal.Decimal          { return p.amount }
func (p *Payment) Percentage() decimal.Decimal      { return p.percentage }
func (p *Payment) Currency() kernel.Currency        { return p.currency }
func (p *Payment) ReceiptURL() string               { return p.receiptURL }
func (p *Payment) ReceiptUploadedAt() *time.Time    { return p.receiptUploadedAt }
func (p *Payment) ReceiptUploadedBy() *kernel.UUID  { return p.receiptUploadedBy }
func (p *Payment) ConfirmedAt() *time.Time          { return p.confirmedAt }
func (p *Payment) ConfirmedBy() *kernel.UUID        { return p.confirmedBy }
func (p *Payment) RejectionReason() string          { return p.rejectionReason }
func (p *Payment) RejectedAt() *time.Time           { return p.rejectedAt }
func (p *Payment) DueDate() *time.Time              { return p.dueDate }
func (p *Payment) PaidDate() *time.Time             { return p.paidDate }
func (p *Payment) CreatedAt() time.Time             { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time             { return p.updatedAt }
func (p *Payment) IsConfirmed() bool                { return p.status == StatusConfirmed }
func (p *Payment) IsCancelled() bool                { return p.status == StatusCancelled }

// UploadReceipt attaches proof of payment. Allowed from PENDING, OVERDUE and
// REJECTED (a new receipt replaces the rejected one).
func (p *Payment) UploadReceipt(url string, method Method, uploadedBy kernel.UUID, now time.Time) error {
	if p.status != StatusPending && p.status != StatusOverdue && p.status != StatusRejected {
		return errs.NewInvalidPaymentStateError(p.id.String(), string(p.status), "upload receipt")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return errs.NewValueIsRequiredError("receipt url")
	}
	if _, err := ParseMethod(string(method)); err != nil {
		return err
	}
	if err := uploadedBy.Validate(); err != nil {
		return err
	}

	p.status = StatusReceiptUploaded
	p.receiptURL = url
	p.method = method
	p.receiptUploadedAt = &now
	p.receiptUploadedBy = &uploadedBy
	p.rejectionReason = ""
	p.rejectedAt = nil
	p.updatedAt = now
	p.Record(EventReceiptUploaded, p.orderID, now, map[string]string{"payment": p.id.String()})
	return nil
}

// Confirm accepts the uploaded receipt. The caller checks the order total
// through Ledger.CheckConfirm first.
func (p *Payment) Confirm(confirmerID kernel.UUID, now time.Time) error {
	if p.status != StatusReceiptUploaded {
		return errs.NewInvalidPaymentStateError(p.id.String(), string(p.status), "confirm")
	}
	if err := confirmerID.Validate(); err != nil {
		return err
	}
	p.status = StatusConfirmed
	p.confirmedAt = &now
	p.confirmedBy = &confirmerID
	p.paidDate = &now
	p.updatedAt = now
	p.Record(EventConfirmed, p.orderID, now, map[string]string{
		"payment": p.id.String(),
		"type":    string(p.typ),
		"amount":  p.amount.String(),
	})
	return nil
}

// Reject refuses the uploaded receipt; a non-empty reason is required.
func (p *Payment) Reject(reason string, now time.Time) error {
	if p.status != StatusReceiptUploaded {
		return errs.NewInvalidPaymentStateError(p.id.String(), string(p.status), "reject")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewEmptyReasonError("rejection reason")
	}
	p.status = StatusRejected
	p.rejectionReason = reason
	p.rejectedAt = &now
	p.updatedAt = now
	p.Record(EventRejected, p.orderID, now, map[string]string{"payment": p.id.String(), "reason": reason})
	return nil
}

// IsOverdueAt reports whether a PENDING payment has passed its due date.
func (p *Payment) IsOverdueAt(now time.Time) bool {
	return p.status == StatusPending && p.dueDate != nil && now.After(*p.dueDate)
}

func (p *Payment) MarkOverdue(now time.Time) error {
	if !p.IsOverdueAt(now) {
		return errs.NewInvalidPaymentStateError(p.id.String(), string(p.status), "mark overdue")
	}
	p.status = StatusOverdue
	p.updatedAt = now
	p.Record(EventOverdue, p.orderID, now, map[string]string{"payment": p.id.String()})
	return nil
}

func (p *Payment) Cancel(now time.Time) error {
	if p.status == StatusConfirmed || p.status == StatusCancelled || p.status == StatusReceiptUploaded {
		return errs.NewInvalidPaymentStateError(p.id.String(), string(p.status), "cancel")
	}
	p.status = StatusCancelled
	p.updatedAt = now
	p.Record(EventPaymentCancelled, p.orderID, now, map[string]string{"payment": p.id.String()})
	return nil
}
