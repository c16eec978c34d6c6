package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), lifecycle.KindOrder, kernel.NewUUID(), kernel.NewUUID(), order.Terms{
		Quantity: 100, UnitPrice: decimal.NewFromInt(12), Currency: "USD", ProductionDays: 30,
	}, decimal.NewFromInt(30), now)
	require.NoError(t, err)
	return o
}

func offer(price int64, days int) negotiation.Proposal {
	return negotiation.Proposal{UnitPrice: decimal.NewFromInt(price), ProductionDays: days}
}

func TestNegotiationEngine_Scenario(t *testing.T) {
	engine := services.NewNegotiationEngine(lifecycle.NewRegistry(), 72*time.Hour)
	o := newPendingOrder(t)

	n1, err := engine.Propose(o, nil, services.ProposeRequest{
		Role: lifecycle.RoleManufacturer, SenderID: o.ManufacturerID(), Proposal: offer(10, 20), Round: 1,
	}, now)
	require.NoError(t, err)
	assert.True(t, n1.IsPending())
	assert.Equal(t, lifecycle.StatusQuoteSent, o.Status())
	require.NotNil(t, n1.ExpiresAt())
	assert.Equal(t, now.Add(72*time.Hour), *n1.ExpiresAt())

	n2, err := engine.Propose(o, n1, services.ProposeRequest{
		Role: lifecycle.RoleCustomer, SenderID: o.CustomerID(), Proposal: offer(9, 20), Round: 2,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, negotiation.StatusSuperseded, n1.Status())
	assert.True(t, n2.IsPending())
	assert.Equal(t, lifecycle.StatusCustomerQuoteSent, o.Status())
	assert.Equal(t, lifecycle.StatusQuoteSent, n2.PreviousOrderStatus())
	require.NotNil(t, o.CounterOffer())
	assert.True(t, decimal.NewFromInt(9).Equal(o.CounterOffer().Price))

	manufacturer := o.ManufacturerID()
	err = engine.Respond(o, n2, negotiation.DecisionAccept, lifecycle.RoleManufacturer, &manufacturer, now)
	require.NoError(t, err)
	assert.Equal(t, negotiation.StatusAccepted, n2.Status())
	assert.True(t, decimal.NewFromInt(9).Equal(o.UnitPrice()))
	assert.Equal(t, 20, o.ProductionDays())
	assert.Equal(t, lifecycle.StatusQuoteAgreed, o.Status())
}

func TestNegotiationEngine_Propose(t *testing.T) {
	engine := services.NewNegotiationEngine(lifecycle.NewRegistry(), 0)

	t.Run("sender must be the party's account", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := engine.Propose(o, nil, services.ProposeRequest{
			Role: lifecycle.RoleManufacturer, SenderID: o.CustomerID(), Proposal: offer(10, 20), Round: 1,
		}, now)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
		assert.Equal(t, lifecycle.StatusPending, o.Status())
	})

	t.Run("non-negotiable status is refused before superseding", func(t *testing.T) {
		o := newPendingOrder(t)
		n1, err := engine.Propose(o, nil, services.ProposeRequest{
			Role: lifecycle.RoleManufacturer, SenderID: o.ManufacturerID(), Proposal: offer(10, 20), Round: 1,
		}, now)
		require.NoError(t, err)
		require.NoError(t, o.Transition(lifecycle.NewRegistry(), lifecycle.ActionHold, lifecycle.RoleCustomer, nil, now))

		_, err = engine.Propose(o, n1, services.ProposeRequest{
			Role: lifecycle.RoleCustomer, SenderID: o.CustomerID(), Proposal: offer(9, 20), Round: 2,
		}, now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.True(t, n1.IsPending())
		assert.Nil(t, n1.ExpiresAt())
	})
}

func TestNegotiationEngine_Respond(t *testing.T) {
	engine := services.NewNegotiationEngine(lifecycle.NewRegistry(), 0)

	propose := func(t *testing.T, o *order.Order) *negotiation.Negotiation {
		t.Helper()
		n, err := engine.Propose(o, nil, services.ProposeRequest{
			Role: lifecycle.RoleManufacturer, SenderID: o.ManufacturerID(), Proposal: offer(10, 20), Round: 1,
		}, now)
		require.NoError(t, err)
		return n
	}

	t.Run("reject reverts to the prior status", func(t *testing.T) {
		o := newPendingOrder(t)
		n := propose(t, o)
		customer := o.CustomerID()

		err := engine.Respond(o, n, negotiation.DecisionReject, lifecycle.RoleCustomer, &customer, now)

		require.NoError(t, err)
		assert.Equal(t, negotiation.StatusRejected, n.Status())
		assert.Equal(t, lifecycle.StatusPending, o.Status())
		assert.True(t, decimal.NewFromInt(12).Equal(o.UnitPrice()))
	})

	t.Run("expiry reverts as system", func(t *testing.T) {
		o := newPendingOrder(t)
		n := propose(t, o)

		err := engine.Respond(o, n, negotiation.DecisionExpire, lifecycle.RoleSystem, nil, now)

		require.NoError(t, err)
		assert.Equal(t, negotiation.StatusExpired, n.Status())
		assert.Equal(t, lifecycle.StatusPending, o.Status())
	})

	t.Run("sender cannot accept own proposal", func(t *testing.T) {
		o := newPendingOrder(t)
		n := propose(t, o)
		manufacturer := o.ManufacturerID()

		err := engine.Respond(o, n, negotiation.DecisionAccept, lifecycle.RoleManufacturer, &manufacturer, now)

		require.ErrorIs(t, err, errs.ErrSelfResponse)
		assert.Equal(t, lifecycle.StatusQuoteSent, o.Status())
	})

	t.Run("responder must own the role", func(t *testing.T) {
		o := newPendingOrder(t)
		n := propose(t, o)
		stranger := kernel.NewUUID()

		err := engine.Respond(o, n, negotiation.DecisionAccept, lifecycle.RoleCustomer, &stranger, now)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
		assert.True(t, n.IsPending())
	})

	t.Run("answered round is stale", func(t *testing.T) {
		o := newPendingOrder(t)
		n := propose(t, o)
		customer := o.CustomerID()
		require.NoError(t, engine.Respond(o, n, negotiation.DecisionAccept, lifecycle.RoleCustomer, &customer, now))

		err := engine.Respond(o, n, negotiation.DecisionReject, lifecycle.RoleCustomer, &customer, now)

		require.ErrorIs(t, err, errs.ErrStaleNegotiation)
		assert.Equal(t, lifecycle.StatusQuoteAgreed, o.Status())
	})
}
