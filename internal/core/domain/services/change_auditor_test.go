package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/changelog"
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

func confirmedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID: kernel.NewUUID(), Kind: lifecycle.KindOrder,
		CustomerID: kernel.NewUUID(), ManufacturerID: kernel.NewUUID(),
		Terms: order.Terms{Quantity: 100, UnitPrice: decimal.NewFromInt(10), Currency: "USD", ProductionDays: 20},
		DepositPercent: decimal.NewFromInt(30),
		Status:         lifecycle.StatusConfirmed,
		Version:        2,
	})
	require.NoError(t, err)
	return o
}

func TestChangeAuditor_Record(t *testing.T) {
	auditor := services.NewChangeAuditor(services.NewNegotiationEngine(lifecycle.NewRegistry(), 0))

	t.Run("should apply change and log previous values", func(t *testing.T) {
		o := confirmedOrder(t)

		log, err := auditor.Record(o, lifecycle.RoleCustomer, o.CustomerID(),
			changelog.QuantityChange{From: 100, To: 150}, "more stock", now)

		require.NoError(t, err)
		assert.Equal(t, 150, o.Quantity())
		assert.Equal(t, changelog.ReviewPending, log.ReviewStatus())
		prev, next := log.Change().Values()
		assert.Equal(t, 100, *prev.Quantity)
		assert.Equal(t, 150, *next.Quantity)
	})

	t.Run("should refuse before confirmation", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := auditor.Record(o, lifecycle.RoleCustomer, o.CustomerID(),
			changelog.QuantityChange{From: 100, To: 150}, "", now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("should refuse stale previous value", func(t *testing.T) {
		o := confirmedOrder(t)

		_, err := auditor.Record(o, lifecycle.RoleManufacturer, o.ManufacturerID(),
			changelog.PriceChange{From: decimal.NewFromInt(11), To: decimal.NewFromInt(12), Currency: "USD"}, "", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, decimal.NewFromInt(10).Equal(o.UnitPrice()))
	})
}

func TestChangeAuditor_Review(t *testing.T) {
	engine := services.NewNegotiationEngine(lifecycle.NewRegistry(), 0)
	auditor := services.NewChangeAuditor(engine)

	record := func(t *testing.T, o *order.Order) *changelog.ChangeLog {
		t.Helper()
		log, err := auditor.Record(o, lifecycle.RoleCustomer, o.CustomerID(),
			changelog.QuantityChange{From: 100, To: 150}, "", now)
		require.NoError(t, err)
		return log
	}

	t.Run("rejected change stays applied", func(t *testing.T) {
		o := confirmedOrder(t)
		log := record(t, o)

		n, err := auditor.Review(o, log, nil, services.ReviewRequest{
			Role: lifecycle.RoleManufacturer, ReviewerID: o.ManufacturerID(), Decision: changelog.ReviewRejected,
		}, now)

		require.NoError(t, err)
		assert.Nil(t, n)
		assert.Equal(t, changelog.ReviewRejected, log.ReviewStatus())
		assert.Equal(t, 150, o.Quantity())
	})

	t.Run("needs negotiation spawns a linked round", func(t *testing.T) {
		o := confirmedOrder(t)
		log := record(t, o)

		n, err := auditor.Review(o, log, nil, services.ReviewRequest{
			Role: lifecycle.RoleManufacturer, ReviewerID: o.ManufacturerID(),
			Decision: changelog.ReviewNeedsNegotiation, TriggerNegotiation: true, Round: 3,
		}, now)

		require.NoError(t, err)
		require.NotNil(t, n)
		assert.True(t, n.IsChangeLinked())
		assert.True(t, n.RelatedChangeLogID().IsEqual(log.ID()))
		assert.True(t, log.NegotiationID().IsEqual(n.ID()))
		assert.Equal(t, 150, *n.Proposal().Quantity)
		assert.Equal(t, lifecycle.StatusConfirmed, o.Status())

		customer := o.CustomerID()
		require.NoError(t, engine.Respond(o, n, negotiation.DecisionAccept, lifecycle.RoleCustomer, &customer, now))
		assert.Equal(t, lifecycle.StatusConfirmed, o.Status())
	})

	t.Run("author cannot review", func(t *testing.T) {
		o := confirmedOrder(t)
		log := record(t, o)

		_, err := auditor.Review(o, log, nil, services.ReviewRequest{
			Role: lifecycle.RoleCustomer, ReviewerID: o.CustomerID(), Decision: changelog.ReviewApproved,
		}, now)

		require.ErrorIs(t, err, errs.ErrSelfResponse)
	})

	t.Run("reviewer must own the role", func(t *testing.T) {
		o := confirmedOrder(t)
		log := record(t, o)

		_, err := auditor.Review(o, log, nil, services.ReviewRequest{
			Role: lifecycle.RoleManufacturer, ReviewerID: kernel.NewUUID(), Decision: changelog.ReviewApproved,
		}, now)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
	})
}
