package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackedOrder pays the deposit and opens a tracking whose plan is still a draft.
func (m *marketplace) trackedOrder() (*order.Order, *production.Tracking) {
	m.t.Helper()
	o := m.confirmedOrder()
	m.pay(paymentOfType(m.schedulePayments(o.ID()), payment.TypeDeposit))

	create, err := commands.NewCreateProductionTrackingCommand(kernel.NewUUID(), o.ID(), m.manufacturerID)
	require.NoError(m.t, err)
	tracking, err := m.createTrack.Handle(m.t.Context(), create)
	require.NoError(m.t, err)
	return o, tracking
}

func (m *marketplace) planStep(trackingID kernel.UUID, step commands.PlanStep, actor kernel.UUID, text string) error {
	m.t.Helper()
	cmd, err := commands.NewProductionPlanCommand(trackingID, step, actor, text)
	require.NoError(m.t, err)
	_, err = m.plan.Handle(m.t.Context(), cmd)
	return err
}

// producingOrder takes an order through plan approval into the first stage.
func (m *marketplace) producingOrder() (*order.Order, *production.Tracking) {
	m.t.Helper()
	o, tracking := m.trackedOrder()
	require.NoError(m.t, m.planStep(tracking.ID(), commands.PlanStepSend, m.manufacturerID, "8 weeks"))
	require.NoError(m.t, m.planStep(tracking.ID(), commands.PlanStepApprove, m.customerID, ""))
	return o, m.advanceTo(tracking.ID(), production.StageCutting, false)
}

func (m *marketplace) advanceTo(trackingID kernel.UUID, to production.Stage, override bool) *production.Tracking {
	m.t.Helper()
	cmd, err := commands.NewAdvanceProductionCommand(trackingID, to, m.manufacturerID, production.StageReport{}, override)
	require.NoError(m.t, err)
	tracking, err := m.advance.Handle(m.t.Context(), cmd)
	require.NoError(m.t, err)
	return tracking
}

func TestProduction_PlanRejectionNeedsReasonAndAllowsResend(t *testing.T) {
	m := newMarketplace(t)
	o, tracking := m.trackedOrder()
	require.NoError(t, m.planStep(tracking.ID(), commands.PlanStepSend, m.manufacturerID, "8 weeks"))

	err := m.planStep(tracking.ID(), commands.PlanStepApprove, m.manufacturerID, "")
	require.ErrorIs(t, err, errs.ErrUnauthorizedActor)

	err = m.planStep(tracking.ID(), commands.PlanStepReject, m.customerID, "  ")
	require.ErrorIs(t, err, errs.ErrEmptyReason)

	require.NoError(t, m.planStep(tracking.ID(), commands.PlanStepReject, m.customerID, "too slow"))
	stored, err := m.factory.Create().TrackingRepository().Get(t.Context(), tracking.ID())
	require.NoError(t, err)
	assert.Equal(t, production.PlanRejected, stored.PlanStatus())
	assert.Equal(t, "too slow", stored.PlanRejectionReason())

	require.NoError(t, m.planStep(tracking.ID(), commands.PlanStepSend, m.manufacturerID, "6 weeks"))
	assert.Equal(t, lifecycle.StatusProductionPlanSent, m.order(o.ID()).Status())
}

func TestProduction_CompleteFromShipping(t *testing.T) {
	m := newMarketplace(t)
	complete := commands.NewCompleteProductionCommandHandler(productionUoWs{m.factory}, lifecycle.Default())
	o, tracking := m.producingOrder()

	early, err := commands.NewCompleteProductionCommand(tracking.ID(), m.manufacturerID, production.StageReport{})
	require.NoError(t, err)
	_, err = complete.Handle(t.Context(), early)
	require.ErrorIs(t, err, errs.ErrIllegalStageSkip)

	tracking = m.advanceTo(tracking.ID(), production.StageShipping, true)
	assert.Equal(t, production.StageShipping, tracking.CurrentStage())

	byCustomer, err := commands.NewCompleteProductionCommand(tracking.ID(), m.customerID, production.StageReport{})
	require.NoError(t, err)
	_, err = complete.Handle(t.Context(), byCustomer)
	require.ErrorIs(t, err, errs.ErrUnauthorizedActor)

	done, err := commands.NewCompleteProductionCommand(tracking.ID(), m.manufacturerID,
		production.StageReport{Notes: "loaded"})
	require.NoError(t, err)
	tracking, err = complete.Handle(t.Context(), done)
	require.NoError(t, err)
	assert.Equal(t, production.OverallCompleted, tracking.OverallStatus())
	assert.Equal(t, 100, tracking.Progress())
	assert.NotNil(t, tracking.ActualEndDate())

	stored := m.order(o.ID())
	assert.Equal(t, lifecycle.StatusProductionComplete, stored.Status())
	assert.NotNil(t, stored.ActualProductionEnd())

	_, err = complete.Handle(t.Context(), done)
	require.Error(t, err)
}

func TestProduction_HoldAndResume(t *testing.T) {
	m := newMarketplace(t)
	changeStatus := commands.NewChangeProductionStatusCommandHandler(productionUoWs{m.factory})
	o, tracking := m.producingOrder()
	manufacturer := m.manufacturerID

	_, err := commands.NewChangeProductionStatusCommand(tracking.ID(), production.OverallCompleted, "",
		lifecycle.RoleManufacturer, &manufacturer)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	blank, err := commands.NewChangeProductionStatusCommand(tracking.ID(), production.OverallBlocked, " ",
		lifecycle.RoleManufacturer, &manufacturer)
	require.NoError(t, err)
	_, err = changeStatus.Handle(t.Context(), blank)
	require.ErrorIs(t, err, errs.ErrEmptyReason)

	block, err := commands.NewChangeProductionStatusCommand(tracking.ID(), production.OverallBlocked, "machine down",
		lifecycle.RoleManufacturer, &manufacturer)
	require.NoError(t, err)
	tracking, err = changeStatus.Handle(t.Context(), block)
	require.NoError(t, err)
	assert.Equal(t, production.OverallBlocked, tracking.OverallStatus())
	assert.Equal(t, "machine down", tracking.HoldReason())
	assert.Equal(t, production.StageOnHold, tracking.OpenStageUpdate().Status())
	assert.Equal(t, lifecycle.StatusInProduction, m.order(o.ID()).Status())

	advance, err := commands.NewAdvanceProductionCommand(tracking.ID(), production.StageSewing, m.manufacturerID,
		production.StageReport{}, false)
	require.NoError(t, err)
	_, err = m.advance.Handle(t.Context(), advance)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	resume, err := commands.NewChangeProductionStatusCommand(tracking.ID(), production.OverallInProgress, "",
		lifecycle.RoleManufacturer, &manufacturer)
	require.NoError(t, err)
	tracking, err = changeStatus.Handle(t.Context(), resume)
	require.NoError(t, err)
	assert.Equal(t, production.OverallInProgress, tracking.OverallStatus())
	assert.Empty(t, tracking.HoldReason())

	tracking, err = m.advance.Handle(t.Context(), advance)
	require.NoError(t, err)
	assert.Equal(t, production.StageSewing, tracking.CurrentStage())
}

func TestChange_ReviewApprovedAndRejected(t *testing.T) {
	m := newMarketplace(t)
	o := m.confirmedOrder()

	record := func(change changelog.Change) *changelog.ChangeLog {
		cmd, err := commands.NewRecordChangeCommand(o.ID(), lifecycle.RoleCustomer, m.customerID, change, "launch moved")
		require.NoError(t, err)
		log, err := m.recordChange.Handle(t.Context(), cmd)
		require.NoError(t, err)
		return log
	}
	review := func(log *changelog.ChangeLog, role lifecycle.Role, decision changelog.ReviewStatus) (*changelog.ChangeLog, error) {
		cmd, err := commands.NewReviewChangeCommand(log.ID(), role, m.party(role), decision, "noted", false)
		require.NoError(t, err)
		return m.reviewChange.Handle(t.Context(), cmd)
	}

	approved := record(changelog.QuantityChange{From: 100, To: 110})
	_, err := review(approved, lifecycle.RoleCustomer, changelog.ReviewApproved)
	require.ErrorIs(t, err, errs.ErrSelfResponse)

	log, err := review(approved, lifecycle.RoleManufacturer, changelog.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, changelog.ReviewApproved, log.ReviewStatus())
	assert.Equal(t, "noted", log.ReviewResponse())
	require.NotNil(t, log.ReviewedBy())
	assert.Equal(t, m.manufacturerID, *log.ReviewedBy())
	assert.False(t, log.NegotiationTriggered())

	_, err = review(approved, lifecycle.RoleManufacturer, changelog.ReviewRejected)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	rejected := record(changelog.QuantityChange{From: 110, To: 150})
	log, err = review(rejected, lifecycle.RoleManufacturer, changelog.ReviewRejected)
	require.NoError(t, err)
	assert.Equal(t, changelog.ReviewRejected, log.ReviewStatus())

	// the log records the disagreement; the terms stay as changed
	assert.Equal(t, 150, m.order(o.ID()).Quantity())
	assert.Len(t, m.rounds(o.ID()), 2)
}

func TestOverrideStatus(t *testing.T) {
	m := newMarketplace(t)
	override := commands.NewOverrideStatusCommandHandler(orderUoWs{m.factory}, lifecycle.Default())
	o := m.newOrder()

	byCustomer, err := commands.NewOverrideStatusCommand(o.ID(), lifecycle.StatusCancelled, lifecycle.RoleCustomer)
	require.NoError(t, err)
	_, err = override.Handle(t.Context(), byCustomer)
	require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
	assert.Equal(t, lifecycle.StatusPending, m.order(o.ID()).Status())

	hold, err := commands.NewOverrideStatusCommand(o.ID(), lifecycle.StatusOnHold, lifecycle.RoleAdmin)
	require.NoError(t, err)
	held, err := override.Handle(t.Context(), hold)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusOnHold, held.Status())
	assert.Equal(t, lifecycle.StatusPending, held.PreviousStatus())

	release, err := commands.NewOverrideStatusCommand(o.ID(), lifecycle.StatusPending, lifecycle.RoleAdmin)
	require.NoError(t, err)
	released, err := override.Handle(t.Context(), release)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPending, released.Status())
	assert.Equal(t, lifecycle.StatusUnknown, released.PreviousStatus())

	_, err = commands.NewOverrideStatusCommand(o.ID(), lifecycle.StatusUnknown, lifecycle.RoleAdmin)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
