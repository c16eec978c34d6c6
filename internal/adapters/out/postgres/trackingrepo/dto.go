// Package trackingrepo provides data transfer objects and mapping functions for
// production tracking persistence. The tracking row owns its stage updates,
// stored in a child table with a cascading foreign key.
package trackingrepo

import (
	"database/sql/driver"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/production"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// TrackingDTO represents the database structure for persisting production trackings.
type TrackingDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Kind                string    `gorm:"size:16;not null"`
	CurrentStage        string    `gorm:"size:24;not null"`
	OverallStatus       string    `gorm:"size:16;not null"`
	Progress            int       `gorm:"not null"`
	HoldReason          string
	PlanStatus          string `gorm:"size:16;not null"`
	PlanNote            string
	PlanRejectionReason string
	PlanSentAt          *time.Time
	PlanApprovedAt      *time.Time
	PlanRejectedAt      *time.Time
	RevisionCount       int `gorm:"not null"`
	ActualStartDate     *time.Time
	ActualEndDate       *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time        `gorm:"autoUpdateTime:false"`
	StageUpdates        []StageUpdateDTO `gorm:"foreignKey:TrackingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for tracking entities.
func (TrackingDTO) TableName() string {
	return "production_trackings"
}

// StageUpdateDTO represents one visit of a stage. Seq keeps the append order.
type StageUpdateDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Seq             int       `gorm:"not null"`
	Stage           string    `gorm:"size:24;not null"`
	Status          string    `gorm:"size:24;not null"`
	IsRevision      bool      `gorm:"not null"`
	DelayReason     string
	ExtraDays       int
	Notes           string
	Photos          PhotoArray
	ActualStartDate time.Time      `gorm:"not null"`
	ActualEndDate   *time.Time
	UpdatedBy       *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for stage update entities.
func (StageUpdateDTO) TableName() string {
	return "production_stage_updates"
}

// PhotoArray stores photo URLs as a native text[] on PostgreSQL and as the
// same array literal in a text column elsewhere.
type PhotoArray []string

func (PhotoArray) GormDataType() string {
	return "text"
}

func (PhotoArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (a PhotoArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *PhotoArray) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*a = PhotoArray(arr)
	return nil
}

func fromDomain(t *production.Tracking) TrackingDTO {
	trackingID := t.ID().Bytes()
	updates := make([]StageUpdateDTO, 0, t.StageUpdateCount())
	for i, u := range t.StageUpdates() {
		updates = append(updates, StageUpdateDTO{
			ID:              u.ID().Bytes(),
			TrackingID:      trackingID,
			Seq:             i,
			Stage:           u.Stage().String(),
			Status:          string(u.Status()),
			IsRevision:      u.IsRevision(),
			DelayReason:     u.DelayReason(),
			ExtraDays:       u.ExtraDays(),
			Notes:           u.Notes(),
			Photos:          PhotoArray(u.Photos()),
			ActualStartDate: u.ActualStartDate(),
			ActualEndDate:   u.ActualEndDate(),
			UpdatedBy:       u.UpdatedBy().Ptr(),
		})
	}

	return TrackingDTO{
		ID:                  trackingID,
		OrderID:             t.OrderID().Bytes(),
		Kind:                t.Kind().String(),
		CurrentStage:        t.CurrentStage().String(),
		OverallStatus:       string(t.OverallStatus()),
		Progress:            t.Progress(),
		HoldReason:          t.HoldReason(),
		PlanStatus:          string(t.PlanStatus()),
		PlanNote:            t.PlanNote(),
		PlanRejectionReason: t.PlanRejectionReason(),
		PlanSentAt:          t.PlanSentAt(),
		PlanApprovedAt:      t.PlanApprovedAt(),
		PlanRejectedAt:      t.PlanRejectedAt(),
		RevisionCount:       t.RevisionCount(),
		ActualStartDate:     t.ActualStartDate(),
		ActualEndDate:       t.ActualEndDate(),
		CreatedAt:           t.CreatedAt(),
		UpdatedAt:           t.UpdatedAt(),
		StageUpdates:        updates,
	}
}

func toDomain(dto TrackingDTO) (*production.Tracking, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	kind, err := lifecycle.ParseEntityKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	stage, err := production.ParseStage(dto.CurrentStage)
	if err != nil {
		return nil, err
	}
	overall, err := production.ParseOverallStatus(dto.OverallStatus)
	if err != nil {
		return nil, err
	}
	plan, err := production.ParsePlanStatus(dto.PlanStatus)
	if err != nil {
		return nil, err
	}

	updates := make([]production.StageUpdateSnapshot, 0, len(dto.StageUpdates))
	for _, u := range dto.StageUpdates {
		s, mapErr := stageUpdateToSnapshot(u)
		if mapErr != nil {
			return nil, mapErr
		}
		updates = append(updates, s)
	}

	return production.RestoreTracking(production.Snapshot{
		ID:                  id,
		OrderID:             orderID,
		Kind:                kind,
		CurrentStage:        stage,
		OverallStatus:       overall,
		Progress:            dto.Progress,
		HoldReason:          dto.HoldReason,
		PlanStatus:          plan,
		PlanNote:            dto.PlanNote,
		PlanRejectionReason: dto.PlanRejectionReason,
		PlanSentAt:          dto.PlanSentAt,
		PlanApprovedAt:      dto.PlanApprovedAt,
		PlanRejectedAt:      dto.PlanRejectedAt,
		RevisionCount:       dto.RevisionCount,
		ActualStartDate:     dto.ActualStartDate,
		ActualEndDate:       dto.ActualEndDate,
		Updates:             updates,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
	})
}

func stageUpdateToSnapshot(u StageUpdateDTO) (production.StageUpdateSnapshot, error) {
	id, err := kernel.UUIDFromGoogle(u.ID)
	if err != nil {
		return production.StageUpdateSnapshot{}, err
	}
	stage, err := production.ParseStage(u.Stage)
	if err != nil {
		return production.StageUpdateSnapshot{}, err
	}
	status, err := production.ParseStageStatus(u.Status)
	if err != nil {
		return production.StageUpdateSnapshot{}, err
	}
	by, err := kernel.OptionalUUIDFromGoogle(u.UpdatedBy)
	if err != nil {
		return production.StageUpdateSnapshot{}, err
	}
	return production.StageUpdateSnapshot{
		ID:              id,
		Stage:           stage,
		Status:          status,
		IsRevision:      u.IsRevision,
		DelayReason:     u.DelayReason,
		ExtraDays:       u.ExtraDays,
		Notes:           u.Notes,
		Photos:          []string(u.Photos),
		ActualStartDate: u.ActualStartDate,
		ActualEndDate:   u.ActualEndDate,
		UpdatedBy:       by,
	}, nil
}
