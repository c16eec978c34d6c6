package production

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// StageReport is what the manufacturer attaches when closing a stage.
type StageReport struct {
	DelayReason string
	ExtraDays   int
	Notes       string
	Photos      []string
}

// StageUpdate is one visit of a stage. A revision creates a new row.
type StageUpdate struct {
	id              kernel.UUID
	stage           Stage
	status          StageStatus
	isRevision      bool
	delayReason     string
	extraDays       int
	notes           string
	photos          []string
	actualStartDate time.Time
	actualEndDate   *time.Time
	updatedBy       *kernel.UUID
}

func newStageUpdate(stage Stage, isRevision bool, notes string, by *kernel.UUID, now time.Time) *StageUpdate {
	return &StageUpdate{
		id:              kernel.NewUUID(),
		stage:           stage,
		status:          StageInProgress,
		isRevision:      isRevision,
		notes:           notes,
		actualStartDate: now,
		updatedBy:       by,
	}
}

// StageUpdateSnapshot carries a persisted row into RestoreTracking.
type StageUpdateSnapshot struct {
	ID              kernel.UUID
	Stage           Stage
	Status          StageStatus
	IsRevision      bool
	DelayReason     string
	ExtraDays       int
	Notes           string
	Photos          []string
	ActualStartDate time.Time
	ActualEndDate   *time.Time
	UpdatedBy       *kernel.UUID
}

func restoreStageUpdate(s StageUpdateSnapshot) *StageUpdate {
	return &StageUpdate{
		id:              s.ID,
		stage:           s.Stage,
		status:          s.Status,
		isRevision:      s.IsRevision,
		delayReason:     s.DelayReason,
		extraDays:       s.ExtraDays,
		notes:           s.Notes,
		photos:          s.Photos,
		actualStartDate: s.ActualStartDate,
		actualEndDate:   s.ActualEndDate,
		updatedBy:       s.UpdatedBy,
	}
}

func (u *StageUpdate) ID() kernel.UUID            { return u.id }
func (u *StageUpdate) Stage() Stage               { return u.stage }
func (u *StageUpdate) Status() StageStatus        { return u.status }
func (u *StageUpdate) IsRevision() bool           { return u.isRevision }
func (u *StageUpdate) DelayReason() string        { return u.delayReason }
func (u *StageUpdate) ExtraDays() int             { return u.extraDays }
func (u *StageUpdate) Notes() string              { return u.notes }
func (u *StageUpdate) Photos() []string           { return append([]string(nil), u.photos...) }
func (u *StageUpdate) ActualStartDate() time.Time { return u.actualStartDate }
func (u *StageUpdate) ActualEndDate() *time.Time  { return u.actualEndDate }
func (u *StageUpdate) UpdatedBy() *kernel.UUID    { return u.updatedBy }

func (u *StageUpdate) isOpen() bool {
	return u.actualEndDate == nil
}

// close ends the visit; the delay report lands on this row only.
func (u *StageUpdate) close(status StageStatus, report StageReport, by *kernel.UUID, now time.Time) {
	u.status = status
	u.actualEndDate = &now
	u.delayReason = report.DelayReason
	u.extraDays = report.ExtraDays
	if report.Notes != "" {
		u.notes = report.Notes
	}
	if len(report.Photos) > 0 {
		u.photos = append(u.photos, report.Photos...)
	}
	if by != nil {
		u.updatedBy = by
	}
}
