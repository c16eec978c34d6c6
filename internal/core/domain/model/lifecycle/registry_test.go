package lifecycle_test

import (
	"testing"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Apply(t *testing.T) {
	r := lifecycle.NewRegistry()

	tests := []struct {
		name   string
		kind   lifecycle.EntityKind
		from   lifecycle.Status
		action lifecycle.Action
		role   lifecycle.Role
		want   lifecycle.Status
	}{
		{"manufacturer reviews", lifecycle.KindOrder, lifecycle.StatusPending, lifecycle.ActionReview,
			lifecycle.RoleManufacturer, lifecycle.StatusReviewed},
		{"manufacturer quotes first", lifecycle.KindOrder, lifecycle.StatusPending, lifecycle.ActionSendQuote,
			lifecycle.RoleManufacturer, lifecycle.StatusQuoteSent},
		{"customer counters", lifecycle.KindSample, lifecycle.StatusQuoteSent, lifecycle.ActionCounterQuote,
			lifecycle.RoleCustomer, lifecycle.StatusCustomerQuoteSent},
		{"manufacturer agrees to counter", lifecycle.KindOrder, lifecycle.StatusCustomerQuoteSent,
			lifecycle.ActionAgreeQuote, lifecycle.RoleManufacturer, lifecycle.StatusQuoteAgreed},
		{"customer confirms a quote", lifecycle.KindOrder, lifecycle.StatusQuoteSent, lifecycle.ActionConfirm,
			lifecycle.RoleCustomer, lifecycle.StatusConfirmed},
		{"system records deposit", lifecycle.KindOrder, lifecycle.StatusDepositPending,
			lifecycle.ActionRecordDeposit, lifecycle.RoleSystem, lifecycle.StatusDepositReceived},
		{"sample prepares plan straight after confirm", lifecycle.KindSample, lifecycle.StatusConfirmed,
			lifecycle.ActionPreparePlan, lifecycle.RoleManufacturer, lifecycle.StatusProductionPlanPreparing},
		{"quality failure goes to revision", lifecycle.KindOrder, lifecycle.StatusQualityFailed,
			lifecycle.ActionRework, lifecycle.RoleManufacturer, lifecycle.StatusProductionRevision},
		{"sample skips balance", lifecycle.KindSample, lifecycle.StatusQualityApproved,
			lifecycle.ActionMarkReady, lifecycle.RoleManufacturer, lifecycle.StatusReadyToShip},
		{"customer confirms receipt", lifecycle.KindOrder, lifecycle.StatusInTransit,
			lifecycle.ActionConfirmReceipt, lifecycle.RoleCustomer, lifecycle.StatusCompleted},
		{"customer asks sample revision", lifecycle.KindSample, lifecycle.StatusReadyToShip,
			lifecycle.ActionRequestSampleRevision, lifecycle.RoleCustomer, lifecycle.StatusRevisionRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Apply(tt.kind, tt.from, tt.action, tt.role)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, r.CanTransition(tt.kind, tt.from, tt.action, tt.role))
		})
	}
}

func TestRegistry_Apply_Failures(t *testing.T) {
	r := lifecycle.NewRegistry()

	t.Run("should reject wrong actor", func(t *testing.T) {
		_, err := r.Apply(lifecycle.KindOrder, lifecycle.StatusPending, lifecycle.ActionReview, lifecycle.RoleCustomer)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
		assert.False(t, r.CanTransition(lifecycle.KindOrder, lifecycle.StatusPending, lifecycle.ActionReview,
			lifecycle.RoleCustomer))
	})

	t.Run("should reject customer confirm by manufacturer", func(t *testing.T) {
		_, err := r.Apply(lifecycle.KindOrder, lifecycle.StatusQuoteAgreed, lifecycle.ActionConfirm,
			lifecycle.RoleManufacturer)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
	})

	t.Run("should reject missing edge", func(t *testing.T) {
		_, err := r.Apply(lifecycle.KindOrder, lifecycle.StatusPending, lifecycle.ActionShip,
			lifecycle.RoleManufacturer)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should reject deposit edges for samples", func(t *testing.T) {
		_, err := r.Apply(lifecycle.KindSample, lifecycle.StatusConfirmed, lifecycle.ActionRequestDeposit,
			lifecycle.RoleManufacturer)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should reject status outside kind", func(t *testing.T) {
		_, err := r.Apply(lifecycle.KindSample, lifecycle.StatusBalancePending, lifecycle.ActionMarkReady,
			lifecycle.RoleManufacturer)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject every action from terminal statuses", func(t *testing.T) {
		for _, from := range []lifecycle.Status{lifecycle.StatusDelivered, lifecycle.StatusCancelled,
			lifecycle.StatusRejectedByCustomer} {
			for _, action := range []lifecycle.Action{lifecycle.ActionCancel, lifecycle.ActionHold,
				lifecycle.ActionReject, lifecycle.ActionConfirmReceipt} {
				_, err := r.Apply(lifecycle.KindOrder, from, action, lifecycle.RoleAdmin)
				require.ErrorIs(t, err, errs.ErrIllegalTransition, "%s via %s", from, action)
			}
		}
	})
}

func TestRegistry_Exits(t *testing.T) {
	r := lifecycle.NewRegistry()

	t.Run("should allow reject and cancel from every in-flight status", func(t *testing.T) {
		for _, kind := range []lifecycle.EntityKind{lifecycle.KindOrder, lifecycle.KindSample} {
			for _, from := range lifecycle.Statuses(kind) {
				if from.IsTerminal() {
					continue
				}
				to, err := r.Apply(kind, from, lifecycle.ActionCancel, lifecycle.RoleCustomer)
				require.NoError(t, err, "%s %s", kind, from)
				assert.Equal(t, lifecycle.StatusCancelled, to)

				to, err = r.Apply(kind, from, lifecycle.ActionReject, lifecycle.RoleManufacturer)
				require.NoError(t, err)
				assert.Equal(t, lifecycle.StatusRejectedByManufacturer, to)
			}
		}
	})

	t.Run("should route reject by role", func(t *testing.T) {
		to, err := r.Apply(lifecycle.KindOrder, lifecycle.StatusQuoteSent, lifecycle.ActionReject, lifecycle.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusRejectedByCustomer, to)

		to, err = r.Apply(lifecycle.KindOrder, lifecycle.StatusQuoteSent, lifecycle.ActionReject, lifecycle.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusRejected, to)
	})

	t.Run("should not let the system use exits", func(t *testing.T) {
		_, err := r.Apply(lifecycle.KindOrder, lifecycle.StatusInProduction, lifecycle.ActionCancel, lifecycle.RoleSystem)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
	})

	t.Run("should hold and resume to the remembered status", func(t *testing.T) {
		held, err := r.Apply(lifecycle.KindOrder, lifecycle.StatusInProduction, lifecycle.ActionHold,
			lifecycle.RoleManufacturer)
		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusOnHold, held)

		_, err = r.Apply(lifecycle.KindOrder, held, lifecycle.ActionHold, lifecycle.RoleManufacturer)
		require.ErrorIs(t, err, errs.ErrIllegalTransition)

		assert.True(t, r.CanTransition(lifecycle.KindOrder, held, lifecycle.ActionResume, lifecycle.RoleCustomer))
		resumed, err := r.Resume(lifecycle.KindOrder, held, lifecycle.StatusInProduction, lifecycle.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusInProduction, resumed)
	})

	t.Run("should refuse resume when not on hold", func(t *testing.T) {
		_, err := r.Resume(lifecycle.KindOrder, lifecycle.StatusShipped, lifecycle.StatusShipped, lifecycle.RoleAdmin)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.False(t, r.CanTransition(lifecycle.KindOrder, lifecycle.StatusShipped, lifecycle.ActionResume,
			lifecycle.RoleAdmin))
	})

	t.Run("should flag a hold without a previous status", func(t *testing.T) {
		_, err := r.Resume(lifecycle.KindOrder, lifecycle.StatusOnHold, lifecycle.StatusUnknown, lifecycle.RoleAdmin)

		require.ErrorIs(t, err, errs.ErrInvariantViolation)
	})
}

func TestRegistry_Gates(t *testing.T) {
	r := lifecycle.NewRegistry()

	t.Run("order plan approval needs deposit", func(t *testing.T) {
		edge, err := r.Resolve(lifecycle.KindOrder, lifecycle.StatusProductionPlanSent, lifecycle.ActionApprovePlan,
			lifecycle.RoleCustomer)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.GateDeposit, edge.Gate)
	})

	t.Run("order ready to ship needs balance", func(t *testing.T) {
		edge, err := r.Resolve(lifecycle.KindOrder, lifecycle.StatusBalancePending, lifecycle.ActionMarkReady,
			lifecycle.RoleSystem)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.GateBalance, edge.Gate)
	})

	t.Run("samples are never gated", func(t *testing.T) {
		edge, err := r.Resolve(lifecycle.KindSample, lifecycle.StatusProductionPlanApproved,
			lifecycle.ActionStartProduction, lifecycle.RoleManufacturer)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.GateNone, edge.Gate)
	})
}

func TestRegistry_RevertNegotiation(t *testing.T) {
	r := lifecycle.NewRegistry()

	to, err := r.RevertNegotiation(lifecycle.KindOrder, lifecycle.StatusCustomerQuoteSent, lifecycle.StatusQuoteSent,
		lifecycle.RoleManufacturer)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusQuoteSent, to)

	_, err = r.RevertNegotiation(lifecycle.KindOrder, lifecycle.StatusConfirmed, lifecycle.StatusQuoteSent,
		lifecycle.RoleManufacturer)
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	_, err = r.RevertNegotiation(lifecycle.KindOrder, lifecycle.StatusQuoteSent, lifecycle.StatusPending,
		lifecycle.RoleAdmin)
	require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
}

func TestRegistry_Override(t *testing.T) {
	r := lifecycle.NewRegistry()

	to, err := r.Override(lifecycle.KindOrder, lifecycle.StatusCancelled, lifecycle.StatusConfirmed, lifecycle.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusConfirmed, to)

	_, err = r.Override(lifecycle.KindOrder, lifecycle.StatusCancelled, lifecycle.StatusConfirmed,
		lifecycle.RoleManufacturer)
	require.ErrorIs(t, err, errs.ErrUnauthorizedActor)

	_, err = r.Override(lifecycle.KindSample, lifecycle.StatusConfirmed, lifecycle.StatusDepositPending,
		lifecycle.RoleAdmin)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRegistry_OverrideIntoHold(t *testing.T) {
	r := lifecycle.NewRegistry()

	to, err := r.Override(lifecycle.KindOrder, lifecycle.StatusInProduction, lifecycle.StatusOnHold, lifecycle.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusOnHold, to)

	for _, from := range []lifecycle.Status{
		lifecycle.StatusOnHold, lifecycle.StatusCancelled, lifecycle.StatusCompleted, lifecycle.StatusRejected,
	} {
		_, err = r.Override(lifecycle.KindOrder, from, lifecycle.StatusOnHold, lifecycle.RoleAdmin)
		require.ErrorIs(t, err, errs.ErrIllegalTransition, from.String())
	}

	to, err = r.Override(lifecycle.KindOrder, lifecycle.StatusOnHold, lifecycle.StatusConfirmed, lifecycle.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusConfirmed, to)
}

func TestRegistry_Edges(t *testing.T) {
	r := lifecycle.NewRegistry()

	edges := r.Edges(lifecycle.KindOrder, lifecycle.StatusQuoteSent)

	actions := make([]lifecycle.Action, 0, len(edges))
	for _, e := range edges {
		actions = append(actions, e.Action)
	}
	assert.ElementsMatch(t, []lifecycle.Action{
		lifecycle.ActionSendQuote, lifecycle.ActionCounterQuote, lifecycle.ActionAgreeQuote, lifecycle.ActionConfirm,
	}, actions)
	assert.Empty(t, r.Edges(lifecycle.KindOrder, lifecycle.StatusCompleted))
}
