package negotiation_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func proposal() negotiation.Proposal {
	return negotiation.Proposal{UnitPrice: decimal.NewFromInt(10), ProductionDays: 20, Message: "first quote"}
}

func newRound(t *testing.T, sender lifecycle.Role) *negotiation.Negotiation {
	t.Helper()
	n, err := negotiation.NewNegotiation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sender, 1,
		proposal(), lifecycle.StatusPending, now)
	require.NoError(t, err)
	return n
}

func TestNewNegotiation(t *testing.T) {
	t.Run("should open a pending round", func(t *testing.T) {
		n := newRound(t, lifecycle.RoleManufacturer)

		require.NoError(t, n.Validate())
		assert.True(t, n.IsPending())
		assert.Equal(t, 1, n.Round())
		assert.Equal(t, lifecycle.StatusPending, n.PreviousOrderStatus())
		assert.False(t, n.IsChangeLinked())
		events := n.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, negotiation.EventProposed, events[0].Name)
	})

	t.Run("should refuse non-party sender and bad offer", func(t *testing.T) {
		qty := 0
		_, err := negotiation.NewNegotiation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			lifecycle.RoleAdmin, 0, negotiation.Proposal{UnitPrice: decimal.Zero, Quantity: &qty},
			lifecycle.StatusPending, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sender role")
		assert.Contains(t, err.Error(), "round")
		assert.Contains(t, err.Error(), "unit price is invalid")
		assert.Contains(t, err.Error(), "production days is invalid")
		assert.Contains(t, err.Error(), "quantity is invalid")
	})
}

func TestNegotiation_Respond(t *testing.T) {
	responder := kernel.NewUUID()

	t.Run("counterparty accepts", func(t *testing.T) {
		n := newRound(t, lifecycle.RoleCustomer)

		err := n.Respond(negotiation.DecisionAccept, lifecycle.RoleManufacturer, &responder, now)

		require.NoError(t, err)
		assert.Equal(t, negotiation.StatusAccepted, n.Status())
		require.NotNil(t, n.RespondedBy())
		assert.True(t, n.RespondedBy().IsEqual(responder))
		assert.Equal(t, now, *n.RespondedAt())
	})

	t.Run("sender cannot respond", func(t *testing.T) {
		n := newRound(t, lifecycle.RoleCustomer)

		err := n.Respond(negotiation.DecisionReject, lifecycle.RoleCustomer, &responder, now)

		require.ErrorIs(t, err, errs.ErrSelfResponse)
		assert.True(t, n.IsPending())
	})

	t.Run("admin is not a counterparty", func(t *testing.T) {
		n := newRound(t, lifecycle.RoleCustomer)

		err := n.Respond(negotiation.DecisionAccept, lifecycle.RoleAdmin, &responder, now)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
	})

	t.Run("only the system expires", func(t *testing.T) {
		n := newRound(t, lifecycle.RoleManufacturer)

		err := n.Respond(negotiation.DecisionExpire, lifecycle.RoleCustomer, &responder, now)
		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)

		require.NoError(t, n.Respond(negotiation.DecisionExpire, lifecycle.RoleSystem, nil, now))
		assert.Equal(t, negotiation.StatusExpired, n.Status())
		assert.Nil(t, n.RespondedBy())
	})

	t.Run("answered round is stale", func(t *testing.T) {
		n := newRound(t, lifecycle.RoleManufacturer)
		require.NoError(t, n.Respond(negotiation.DecisionReject, lifecycle.RoleCustomer, &responder, now))

		err := n.Respond(negotiation.DecisionAccept, lifecycle.RoleCustomer, &responder, now)

		require.ErrorIs(t, err, errs.ErrStaleNegotiation)
		assert.Equal(t, negotiation.StatusRejected, n.Status())
	})

	t.Run("superseded round is stale", func(t *testing.T) {
		n := newRound(t, lifecycle.RoleManufacturer)
		require.NoError(t, n.Supersede(now))

		err := n.Respond(negotiation.DecisionAccept, lifecycle.RoleCustomer, &responder, now)

		require.ErrorIs(t, err, errs.ErrStaleNegotiation)
		require.ErrorIs(t, n.Supersede(now), errs.ErrStaleNegotiation)
	})
}

func TestNegotiation_Expiry(t *testing.T) {
	n := newRound(t, lifecycle.RoleManufacturer)
	assert.False(t, n.IsExpiredAt(now.Add(1000*time.Hour)))

	n.ExpireAfter(72 * time.Hour)

	assert.False(t, n.IsExpiredAt(now.Add(71*time.Hour)))
	assert.True(t, n.IsExpiredAt(now.Add(72*time.Hour)))
}

func TestNegotiation_LinkChangeLog(t *testing.T) {
	n := newRound(t, lifecycle.RoleCustomer)

	require.Error(t, n.LinkChangeLog(kernel.UUID{}))
	require.NoError(t, n.LinkChangeLog(kernel.NewUUID()))
	assert.True(t, n.IsChangeLinked())
}

func TestRestoreNegotiation(t *testing.T) {
	_, err := negotiation.RestoreNegotiation(negotiation.Snapshot{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), SenderID: kernel.NewUUID(),
		SenderRole: lifecycle.RoleCustomer, Round: 2, Proposal: proposal(),
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	n, err := negotiation.RestoreNegotiation(negotiation.Snapshot{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), SenderID: kernel.NewUUID(),
		SenderRole: lifecycle.RoleCustomer, Round: 2, Proposal: proposal(), Status: negotiation.StatusSuperseded,
	})
	require.NoError(t, err)
	assert.Equal(t, negotiation.StatusSuperseded, n.Status())
	assert.Empty(t, n.PullEvents())
}
