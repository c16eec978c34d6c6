// Package changelogrepo persists the change audit trail. Previous and new
// values are stored as JSON documents whose shape depends on the change type.
package changelogrepo

import (
	"time"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChangeLogDTO struct {
	ID                   uuid.UUID                           `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID                           `gorm:"type:uuid;not null;index"`
	ChangedBy            uuid.UUID                           `gorm:"type:uuid;not null"`
	ChangedByRole        string                              `gorm:"size:16;not null"`
	ChangeType           string                              `gorm:"size:20;not null"`
	PreviousValues       datatypes.JSONType[changelog.Values] `gorm:"not null"`
	NewValues            datatypes.JSONType[changelog.Values] `gorm:"not null"`
	Reason               string
	ReviewStatus         string `gorm:"size:20;not null"`
	ReviewResponse       string
	ReviewedAt           *time.Time
	ReviewedBy           *uuid.UUID `gorm:"type:uuid"`
	NegotiationTriggered bool       `gorm:"not null"`
	NegotiationID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time
}

func (ChangeLogDTO) TableName() string {
	return "order_change_logs"
}

func fromDomain(c *changelog.ChangeLog) ChangeLogDTO {
	previous, next := c.Change().Values()
	return ChangeLogDTO{
		ID:                   c.ID().Bytes(),
		OrderID:              c.OrderID().Bytes(),
		ChangedBy:            c.ChangedBy().Bytes(),
		ChangedByRole:        c.ChangedByRole().String(),
		ChangeType:           string(c.ChangeType()),
		PreviousValues:       datatypes.NewJSONType(previous),
		NewValues:            datatypes.NewJSONType(next),
		Reason:               c.Reason(),
		ReviewStatus:         string(c.ReviewStatus()),
		ReviewResponse:       c.ReviewResponse(),
		ReviewedAt:           c.ReviewedAt(),
		ReviewedBy:           c.ReviewedBy().Ptr(),
		NegotiationTriggered: c.NegotiationTriggered(),
		NegotiationID:        c.NegotiationID().Ptr(),
		CreatedAt:            c.CreatedAt(),
	}
}

func toDomain(dto ChangeLogDTO) (*changelog.ChangeLog, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	changedBy, err := kernel.UUIDFromGoogle(dto.ChangedBy)
	if err != nil {
		return nil, err
	}
	role, err := lifecycle.ParseRole(dto.ChangedByRole)
	if err != nil {
		return nil, err
	}
	changeType, err := changelog.ParseChangeType(dto.ChangeType)
	if err != nil {
		return nil, err
	}
	change, err := changelog.FromValues(changeType, dto.PreviousValues.Data(), dto.NewValues.Data())
	if err != nil {
		return nil, err
	}
	review, err := changelog.ParseReviewStatus(dto.ReviewStatus)
	if err != nil {
		return nil, err
	}
	reviewedBy, err := kernel.OptionalUUIDFromGoogle(dto.ReviewedBy)
	if err != nil {
		return nil, err
	}
	negotiationID, err := kernel.OptionalUUIDFromGoogle(dto.NegotiationID)
	if err != nil {
		return nil, err
	}

	return changelog.RestoreChangeLog(changelog.Snapshot{
		ID:                   id,
		OrderID:              orderID,
		ChangedBy:            changedBy,
		ChangedByRole:        role,
		Change:               change,
		Reason:               dto.Reason,
		CreatedAt:            dto.CreatedAt,
		ReviewStatus:         review,
		ReviewResponse:       dto.ReviewResponse,
		ReviewedAt:           dto.ReviewedAt,
		ReviewedBy:           reviewedBy,
		NegotiationTriggered: dto.NegotiationTriggered,
		NegotiationID:        negotiationID,
	})
}
