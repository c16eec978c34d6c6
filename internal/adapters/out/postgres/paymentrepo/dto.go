// Package paymentrepo persists scheduled order payments.
package paymentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type              string          `gorm:"size:16;not null"`
	Status            string          `gorm:"size:20;not null;index"`
	Method            string          `gorm:"size:20"`
	Amount            decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Percentage        decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Currency          string          `gorm:"size:3;not null"`
	ReceiptURL        string
	ReceiptUploadedAt *time.Time
	ReceiptUploadedBy *uuid.UUID `gorm:"type:uuid"`
	ConfirmedAt       *time.Time
	ConfirmedBy       *uuid.UUID `gorm:"type:uuid"`
	RejectionReason   string
	RejectedAt        *time.Time
	DueDate           *time.Time `gorm:"index"`
	PaidDate          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
}

func (PaymentDTO) TableName() string {
	return "order_payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:                p.ID().Bytes(),
		OrderID:           p.OrderID().Bytes(),
		Type:              string(p.Type()),
		Status:            string(p.Status()),
		Method:            string(p.Method()),
		Amount:            p.Amount(),
		Percentage:        p.Percentage(),
		Currency:          p.Currency().String(),
		ReceiptURL:        p.ReceiptURL(),
		ReceiptUploadedAt: p.ReceiptUploadedAt(),
		ReceiptUploadedBy: p.ReceiptUploadedBy().Ptr(),
		ConfirmedAt:       p.ConfirmedAt(),
		ConfirmedBy:       p.ConfirmedBy().Ptr(),
		RejectionReason:   p.RejectionReason(),
		RejectedAt:        p.RejectedAt(),
		DueDate:           p.DueDate(),
		PaidDate:          p.PaidDate(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	uploadedBy, err := kernel.OptionalUUIDFromGoogle(dto.ReceiptUploadedBy)
	if err != nil {
		return nil, err
	}
	confirmedBy, err := kernel.OptionalUUIDFromGoogle(dto.ConfirmedBy)
	if err != nil {
		return nil, err
	}
	method, err := payment.ParseMethod(dto.Method)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(payment.Snapshot{
		ID:                id,
		OrderID:           orderID,
		Type:              payment.Type(dto.Type),
		Status:            payment.Status(dto.Status),
		Method:            method,
		Amount:            dto.Amount,
		Percentage:        dto.Percentage,
		Currency:          kernel.Currency(dto.Currency),
		ReceiptURL:        dto.ReceiptURL,
		ReceiptUploadedAt: dto.ReceiptUploadedAt,
		ReceiptUploadedBy: uploadedBy,
		ConfirmedAt:       dto.ConfirmedAt,
		ConfirmedBy:       confirmedBy,
		RejectionReason:   dto.RejectionReason,
		RejectedAt:        dto.RejectedAt,
		DueDate:           dto.DueDate,
		PaidDate:          dto.PaidDate,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func toDomainList(dtos []PaymentDTO) ([]*payment.Payment, error) {
	out := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
