package production

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
)

var ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking constructor")

const (
	EventPlanSent      = "production.plan_sent"
	EventPlanApproved  = "production.plan_approved"
	EventPlanRejected  = "production.plan_rejected"
	EventStageAdvanced = "production.stage_advanced"
	EventStageReverted = "production.stage_reverted"
	EventCompleted     = "production.completed"
	EventHeld          = "production.held"
	EventResumed       = "production.resumed"
	EventCancelled     = "production.cancelled"
)

const entityName = "PRODUCTION"

// Tracking is the production record of one order or sample.
//
// Invariants:
//   - CanStartProduction() is true iff the plan is APPROVED
//   - Stage moves need an approved plan and an IN_PROGRESS overall status
//   - At most one stage update is open, and it is for the current stage
//   - Stage updates are append-only
type Tracking struct {
	kernel.EventRecorder

	id      kernel.UUID
	orderID kernel.UUID
	kind    lifecycle.EntityKind

	currentStage  Stage
	overallStatus OverallStatus
	progress      int
	holdReason    string

	planStatus          PlanStatus
	planNote            string
	planRejectionReason string
	planSentAt          *time.Time
	planApprovedAt      *time.Time
	planRejectedAt      *time.Time
	revisionCount       int

	actualStartDate *time.Time
	actualEndDate   *time.Time

	updates []*StageUpdate

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTracking starts a tracking at PLANNING with a DRAFT plan and an open
// PLANNING stage update.
func NewTracking(id, orderID kernel.UUID, kind lifecycle.EntityKind, now time.Time) (*Tracking, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	return &Tracking{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		currentStage:  StagePlanning,
		overallStatus: OverallInProgress,
		planStatus:    PlanDraft,
		updates:       []*StageUpdate{newStageUpdate(StagePlanning, false, "", nil, now)},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

type Snapshot struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	Kind                lifecycle.EntityKind
	CurrentStage        Stage
	OverallStatus       OverallStatus
	Progress            int
	HoldReason          string
	PlanStatus          PlanStatus
	PlanNote            string
	PlanRejectionReason string
	PlanSentAt          *time.Time
	PlanApprovedAt      *time.Time
	PlanRejectedAt      *time.Time
	RevisionCount       int
	ActualStartDate     *time.Time
	ActualEndDate       *time.Time
	Updates             []StageUpdateSnapshot
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func RestoreTracking(s Snapshot) (*Tracking, error) {
	var progressErr error
	if s.Progress < 0 || s.Progress > 100 {
		progressErr = errs.NewValueIsOutOfRangeError("progress", s.Progress, 0, 100)
	}
	if err := errors.Join(
		s.ID.Validate(), s.OrderID.Validate(), s.Kind.Validate(), s.CurrentStage.Validate(), progressErr,
	); err != nil {
		return nil, err
	}

	t := &Tracking{
		id:                  s.ID,
		orderID:             s.OrderID,
		kind:                s.Kind,
		currentStage:        s.CurrentStage,
		overallStatus:       s.OverallStatus,
		progress:            s.Progress,
		holdReason:          s.HoldReason,
		planStatus:          s.PlanStatus,
		planNote:            s.PlanNote,
		planRejectionReason: s.PlanRejectionReason,
		planSentAt:          s.PlanSentAt,
		planApprovedAt:      s.PlanApprovedAt,
		planRejectedAt:      s.PlanRejectedAt,
		revisionCount:       s.RevisionCount,
		actualStartDate:     s.ActualStartDate,
		actualEndDate:       s.ActualEndDate,
		updates:             make([]*StageUpdate, 0, len(s.Updates)),
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		isConstructed:       true,
	}
	for _, u := range s.Updates {
		t.updates = append(t.updates, restoreStageUpdate(u))
	}
	return t, nil
}

func (t *Tracking) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTrackingIsNotConstructed
	}
	return nil
}

func (t *Tracking) ID() kernel.UUID               { return t.id }
func (t *Tracking) OrderID() kernel.UUID          { return t.orderID }
func (t *Tracking) Kind() lifecycle.EntityKind    { return t.kind }
func (t *Tracking) CurrentStage() Stage           { return t.currentStage }
func (t *Tracking) OverallStatus() OverallStatus  { return t.overallStatus }
func (t *Tracking) Progress() int                 { return t.progress }
func (t *Tracking) HoldReason() string            { return t.holdReason }
func (t *Tracking) PlanStatus() PlanStatus        { return t.planStatus }
func (t *Tracking) PlanNote() string              { return t.planNote }
func (t *Tracking) PlanRejectionReason() string   { return t.planRejectionReason }
func (t *Tracking) PlanSentAt() *time.Time        { return t.planSentAt }
func (t *Tracking) PlanApprovedAt() *time.Time    { return t.planApprovedAt }
func (t *Tracking) PlanRejectedAt() *time.Time    { return t.planRejectedAt }
func (t *Tracking) RevisionCount() int            { return t.revisionCount }
func (t *Tracking) ActualStartDate() *time.Time   { return t.actualStartDate }
func (t *Tracking) ActualEndDate() *time.Time     { return t.actualEndDate }
func (t *Tracking) CreatedAt() time.Time          { return t.createdAt }
func (t *Tracking) UpdatedAt() time.Time          { return t.updatedAt }
func (t *Tracking) StageUpdates() []*StageUpdate  { return append([]*StageUpdate(nil), t.updates...) }
func (t *Tracking) CanStartProduction() bool      { return t.planStatus == PlanApproved }
func (t *Tracking) IsCompleted() bool             { return t.overallStatus == OverallCompleted }
func (t *Tracking) IsCancelled() bool             { return t.overallStatus == OverallCancelled }
func (t *Tracking) HasStarted() bool              { return t.actualStartDate != nil }
func (t *Tracking) StageUpdateCount() int         { return len(t.updates) }
func (t *Tracking) OpenStageUpdate() *StageUpdate { return t.openUpdate() }

// SendPlan submits the plan to the customer. A rejected plan may be resent.
func (t *Tracking) SendPlan(note string, now time.Time) error {
	if t.planStatus != PlanDraft && t.planStatus != PlanRejected {
		return errs.NewIllegalTransitionError("PRODUCTION_PLAN", string(t.planStatus), "SEND_PLAN")
	}
	t.planStatus = PlanSent
	t.planNote = strings.TrimSpace(note)
	t.planSentAt = &now
	t.updatedAt = now
	t.Record(EventPlanSent, t.orderID, now, map[string]string{"tracking": t.id.String()})
	return nil
}

func (t *Tracking) ApprovePlan(now time.Time) error {
	if t.planStatus != PlanSent {
		return errs.NewIllegalTransitionError("PRODUCTION_PLAN", string(t.planStatus), "APPROVE_PLAN")
	}
	t.planStatus = PlanApproved
	t.planApprovedAt = &now
	t.planRejectionReason = ""
	t.updatedAt = now
	t.Record(EventPlanApproved, t.orderID, now, map[string]string{"tracking": t.id.String()})
	return nil
}

func (t *Tracking) RejectPlan(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewEmptyReasonError("reason")
	}
	if t.planStatus != PlanSent {
		return errs.NewIllegalTransitionError("PRODUCTION_PLAN", string(t.planStatus), "REJECT_PLAN")
	}
	t.planStatus = PlanRejected
	t.planRejectionReason = reason
	t.planRejectedAt = &now
	t.updatedAt = now
	t.Record(EventPlanRejected, t.orderID, now, map[string]string{"tracking": t.id.String(), "reason": reason})
	return nil
}

// ensureMovable checks the shared preconditions of stage moves.
func (t *Tracking) ensureMovable(action string) error {
	if !t.CanStartProduction() {
		return errs.NewProductionNotApprovedError(t.id.String(), string(t.planStatus))
	}
	if t.overallStatus != OverallInProgress {
		return errs.NewIllegalTransitionError(entityName, string(t.overallStatus), action)
	}
	return nil
}

// Advance moves to the next stage, closing the open update as COMPLETED with
// the report and opening a new IN_PROGRESS update. override allows forward
// skips; it never allows moving backwards.
func (t *Tracking) Advance(to Stage, actorID kernel.UUID, report StageReport, override bool, now time.Time) error {
	if err := t.ensureMovable("ADVANCE"); err != nil {
		return err
	}
	if err := errors.Join(to.Validate(), actorID.Validate(), validateReport(report)); err != nil {
		return err
	}
	if to <= t.currentStage || (to != t.currentStage.Next() && !override) {
		return errs.NewIllegalStageSkipError(t.currentStage.String(), to.String())
	}

	by := actorID
	if open := t.openUpdate(); open != nil {
		open.close(StageCompleted, report, &by, now)
	}
	from := t.currentStage
	t.updates = append(t.updates, newStageUpdate(to, false, "", &by, now))
	t.currentStage = to
	t.progress = stageProgress(to)
	if t.actualStartDate == nil {
		t.actualStartDate = &now
	}
	t.updatedAt = now
	t.Record(EventStageAdvanced, t.orderID, now, map[string]string{
		"tracking": t.id.String(),
		"from":     from.String(),
		"to":       to.String(),
	})
	return nil
}

// Revert moves back to a stage visited before. The open update is closed as
// REQUIRES_REVISION and a new update with isRevision set is appended; no row
// is removed.
func (t *Tracking) Revert(to Stage, reason string, actorID *kernel.UUID, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewEmptyReasonError("reason")
	}
	if err := t.ensureMovable("REVERT"); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if to >= t.currentStage || !t.visited(to) {
		return errs.NewIllegalStageSkipError(t.currentStage.String(), to.String())
	}

	if open := t.openUpdate(); open != nil {
		open.close(StageRequiresRevision, StageReport{}, actorID, now)
	}
	from := t.currentStage
	t.updates = append(t.updates, newStageUpdate(to, true, reason, actorID, now))
	t.currentStage = to
	t.revisionCount++
	t.progress = stageProgress(to)
	t.updatedAt = now
	t.Record(EventStageReverted, t.orderID, now, map[string]string{
		"tracking": t.id.String(),
		"from":     from.String(),
		"to":       to.String(),
		"reason":   reason,
	})
	return nil
}

// Complete closes the SHIPPING stage and the tracking.
func (t *Tracking) Complete(actorID kernel.UUID, report StageReport, now time.Time) error {
	if err := t.ensureMovable("COMPLETE"); err != nil {
		return err
	}
	if err := errors.Join(actorID.Validate(), validateReport(report)); err != nil {
		return err
	}
	if t.currentStage != StageShipping {
		return errs.NewIllegalStageSkipError(t.currentStage.String(), "COMPLETED")
	}

	by := actorID
	if open := t.openUpdate(); open != nil {
		open.close(StageCompleted, report, &by, now)
	}
	t.overallStatus = OverallCompleted
	t.progress = 100
	t.actualEndDate = &now
	t.updatedAt = now
	t.Record(EventCompleted, t.orderID, now, map[string]string{"tracking": t.id.String()})
	return nil
}

// Hold pauses production as WAITING (external dependency) or BLOCKED (problem).
func (t *Tracking) Hold(status OverallStatus, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewEmptyReasonError("reason")
	}
	if status != OverallWaiting && status != OverallBlocked {
		return errs.NewValueIsInvalidErrorWithCause("overall status", fmt.Errorf("%s is not a hold status", status))
	}
	if t.overallStatus != OverallInProgress {
		return errs.NewIllegalTransitionError(entityName, string(t.overallStatus), "HOLD")
	}
	t.overallStatus = status
	t.holdReason = reason
	if open := t.openUpdate(); open != nil {
		open.status = StageOnHold
	}
	t.updatedAt = now
	t.Record(EventHeld, t.orderID, now, map[string]string{"tracking": t.id.String(), "status": string(status)})
	return nil
}

func (t *Tracking) Resume(now time.Time) error {
	if t.overallStatus != OverallWaiting && t.overallStatus != OverallBlocked {
		return errs.NewIllegalTransitionError(entityName, string(t.overallStatus), "RESUME")
	}
	t.overallStatus = OverallInProgress
	t.holdReason = ""
	if open := t.openUpdate(); open != nil {
		open.status = StageInProgress
	}
	t.updatedAt = now
	t.Record(EventResumed, t.orderID, now, map[string]string{"tracking": t.id.String()})
	return nil
}

func (t *Tracking) Cancel(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewEmptyReasonError("reason")
	}
	if t.overallStatus == OverallCompleted || t.overallStatus == OverallCancelled {
		return errs.NewIllegalTransitionError(entityName, string(t.overallStatus), "CANCEL")
	}
	t.overallStatus = OverallCancelled
	t.holdReason = reason
	t.updatedAt = now
	t.Record(EventCancelled, t.orderID, now, map[string]string{"tracking": t.id.String(), "reason": reason})
	return nil
}

func (t *Tracking) openUpdate() *StageUpdate {
	for i := len(t.updates) - 1; i >= 0; i-- {
		if t.updates[i].isOpen() {
			return t.updates[i]
		}
	}
	return nil
}

func (t *Tracking) visited(stage Stage) bool {
	for _, u := range t.updates {
		if u.stage == stage {
			return true
		}
	}
	return false
}

// stageProgress is the share of stages finished before entering stage.
func stageProgress(stage Stage) int {
	return int(stage-StagePlanning) * 100 / StageCount
}

func validateReport(r StageReport) error {
	if r.ExtraDays < 0 {
		return errs.NewValueIsOutOfRangeError("extra days", r.ExtraDays, 0, "unbounded")
	}
	if r.ExtraDays > 0 && strings.TrimSpace(r.DelayReason) == "" {
		return errs.NewEmptyReasonError("delay reason")
	}
	return nil
}
