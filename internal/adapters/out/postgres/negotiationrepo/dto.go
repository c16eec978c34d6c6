// Package negotiationrepo persists negotiation rounds. The table carries a
// partial unique index on order_id for PENDING rows so a second active round
// for the same order can never be committed.
package negotiationrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingIndex is the name of the partial unique index on PENDING rounds.
const PendingIndex = "ux_negotiations_order_pending"

type NegotiationDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_negotiations_order_pending,where:status = 'PENDING'"`
	SenderID            uuid.UUID       `gorm:"type:uuid;not null"`
	SenderRole          string          `gorm:"size:16;not null"`
	Round               int             `gorm:"not null"`
	UnitPrice           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	ProductionDays      int             `gorm:"not null"`
	Quantity            *int
	Message             string
	Status              string     `gorm:"size:16;not null;index"`
	PreviousOrderStatus string     `gorm:"size:40;not null"`
	RelatedChangeLogID  *uuid.UUID `gorm:"type:uuid"`
	ExpiresAt           *time.Time `gorm:"index"`
	RespondedAt         *time.Time
	RespondedBy         *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
}

func (NegotiationDTO) TableName() string {
	return "order_negotiations"
}

func fromDomain(n *negotiation.Negotiation) NegotiationDTO {
	p := n.Proposal()
	return NegotiationDTO{
		ID:                  n.ID().Bytes(),
		OrderID:             n.OrderID().Bytes(),
		SenderID:            n.SenderID().Bytes(),
		SenderRole:          n.SenderRole().String(),
		Round:               n.Round(),
		UnitPrice:           p.UnitPrice,
		ProductionDays:      p.ProductionDays,
		Quantity:            p.Quantity,
		Message:             p.Message,
		Status:              n.Status().String(),
		PreviousOrderStatus: n.PreviousOrderStatus().String(),
		RelatedChangeLogID:  n.RelatedChangeLogID().Ptr(),
		ExpiresAt:           n.ExpiresAt(),
		RespondedAt:         n.RespondedAt(),
		RespondedBy:         n.RespondedBy().Ptr(),
		CreatedAt:           n.CreatedAt(),
	}
}

func toDomain(dto NegotiationDTO) (*negotiation.Negotiation, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromGoogle(dto.SenderID)
	if err != nil {
		return nil, err
	}
	role, err := lifecycle.ParseRole(dto.SenderRole)
	if err != nil {
		return nil, err
	}
	status, err := negotiation.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	previous, err := lifecycle.ParseStatus(dto.PreviousOrderStatus)
	if err != nil {
		return nil, err
	}
	changeLogID, err := kernel.OptionalUUIDFromGoogle(dto.RelatedChangeLogID)
	if err != nil {
		return nil, err
	}
	respondedBy, err := kernel.OptionalUUIDFromGoogle(dto.RespondedBy)
	if err != nil {
		return nil, err
	}

	return negotiation.RestoreNegotiation(negotiation.Snapshot{
		ID:         id,
		OrderID:    orderID,
		SenderID:   senderID,
		SenderRole: role,
		Round:      dto.Round,
		Proposal: negotiation.Proposal{
			UnitPrice:      dto.UnitPrice,
			ProductionDays: dto.ProductionDays,
			Quantity:       dto.Quantity,
			Message:        dto.Message,
		},
		Status:              status,
		PreviousOrderStatus: previous,
		RelatedChangeLogID:  changeLogID,
		ExpiresAt:           dto.ExpiresAt,
		RespondedAt:         dto.RespondedAt,
		RespondedBy:         respondedBy,
		CreatedAt:           dto.CreatedAt,
	})
}

func toDomainList(dtos []NegotiationDTO) ([]*negotiation.Negotiation, error) {
	out := make([]*negotiation.Negotiation, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
