package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/storetest"
	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	events []kernel.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events []kernel.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func newFactory(t *testing.T) (*postgres_adapter.GormUnitOfWorkFactory, *recordingPublisher) {
	t.Helper()
	publisher := &recordingPublisher{}
	return postgres_adapter.NewGormUnitOfWorkFactory(storetest.Open(t), publisher, nil), publisher
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	deadline := now.AddDate(0, 2, 0)
	o, err := order.NewOrder(kernel.NewUUID(), lifecycle.KindOrder, kernel.NewUUID(), kernel.NewUUID(), order.Terms{
		Quantity:       100,
		UnitPrice:      decimal.RequireFromString("12.50"),
		Currency:       "USD",
		ProductionDays: 30,
		Deadline:       &deadline,
		Specifications: "cotton, navy",
	}, decimal.NewFromInt(30), now)
	require.NoError(t, err)
	return o
}

// inTx runs fn inside a committed unit of work.
func inTx(t *testing.T, factory ports.UnitOfWorkFactory, fn func(ctx context.Context, uow ports.UnitOfWork)) {
	t.Helper()
	ctx := t.Context()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	fn(ctx, uow)
	require.NoError(t, uow.Commit(ctx))
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	require.NoError(t, o.RecordCounterOffer(order.CounterOffer{
		Price: decimal.NewFromInt(11), Days: 25, Note: "volume discount", Type: order.QuoteTypeCounterOffer, SentAt: now,
	}))

	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
	})

	got, err := factory.Create().OrderRepository().Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.True(t, got.ID().IsEqual(o.ID()))
	assert.Equal(t, lifecycle.KindOrder, got.Kind())
	assert.Equal(t, lifecycle.StatusPending, got.Status())
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.UnitPrice()))
	assert.True(t, decimal.NewFromInt(30).Equal(got.DepositPercent()))
	assert.Equal(t, "cotton, navy", got.Terms().Specifications)
	require.NotNil(t, got.Terms().Deadline)
	assert.WithinDuration(t, *o.Terms().Deadline, *got.Terms().Deadline, time.Second)
	require.NotNil(t, got.CounterOffer())
	assert.True(t, decimal.NewFromInt(11).Equal(got.CounterOffer().Price))
	assert.Equal(t, order.QuoteTypeCounterOffer, got.CounterOffer().Type)
	assert.Equal(t, 0, got.Version())
}

func TestOrderRepository_Get_NotFound(t *testing.T) {
	factory, _ := newFactory(t)

	_, err := factory.Create().OrderRepository().Get(t.Context(), kernel.NewUUID())

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderRepository_Update_OptimisticConcurrency(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
	})

	ctx := t.Context()
	first, err := factory.Create().OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := factory.Create().OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)

	reg := lifecycle.NewRegistry()
	require.NoError(t, first.Transition(reg, lifecycle.ActionReview, lifecycle.RoleManufacturer, nil, now))
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Update(ctx, first))
	})
	assert.Equal(t, 1, first.Version())

	require.NoError(t, second.Transition(reg, lifecycle.ActionCancel, lifecycle.RoleCustomer, nil, now))
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	err = uow.OrderRepository().Update(ctx, second)
	require.NoError(t, uow.Rollback(ctx))

	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	stored, err := factory.Create().OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusReviewed, stored.Status())
	assert.Equal(t, 1, stored.Version())
}

func TestOrderRepository_Update_HoldKeepsPreviousStatus(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
	})

	require.NoError(t, o.Transition(lifecycle.NewRegistry(), lifecycle.ActionHold, lifecycle.RoleAdmin, nil, now))
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Update(ctx, o))
	})

	got, err := factory.Create().OrderRepository().Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusOnHold, got.Status())
	assert.Equal(t, lifecycle.StatusPending, got.PreviousStatus())
}

func newRound(t *testing.T, o *order.Order, round int) *negotiation.Negotiation {
	t.Helper()
	n, err := negotiation.NewNegotiation(kernel.NewUUID(), o.ID(), o.ManufacturerID(), lifecycle.RoleManufacturer, round,
		negotiation.Proposal{UnitPrice: decimal.NewFromInt(10), ProductionDays: 20}, lifecycle.StatusPending, now)
	require.NoError(t, err)
	return n
}

func TestNegotiationRepository_SinglePendingIndex(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	first := newRound(t, o, 1)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		require.NoError(t, uow.NegotiationRepository().Add(ctx, first))
	})

	ctx := t.Context()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	err := uow.NegotiationRepository().Add(ctx, newRound(t, o, 2))
	require.NoError(t, uow.Rollback(ctx))

	require.ErrorIs(t, err, errs.ErrInvariantViolation)
}

func TestNegotiationRepository_SupersedeThenAdd(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	first := newRound(t, o, 1)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		require.NoError(t, uow.NegotiationRepository().Add(ctx, first))
	})

	second := newRound(t, o, 2)
	require.NoError(t, first.Supersede(now))
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.NegotiationRepository().Update(ctx, first))
		require.NoError(t, uow.NegotiationRepository().Add(ctx, second))
	})

	repo := factory.Create().NegotiationRepository()
	pending, err := repo.FindPending(t.Context(), o.ID())
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, pending.ID().IsEqual(second.ID()))

	count, err := repo.CountByOrder(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rounds, err := repo.ListByOrder(t.Context(), o.ID())
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, negotiation.StatusSuperseded, rounds[0].Status())
	assert.Equal(t, negotiation.StatusPending, rounds[1].Status())
}

func TestNegotiationRepository_FindPending_None(t *testing.T) {
	factory, _ := newFactory(t)

	pending, err := factory.Create().NegotiationRepository().FindPending(t.Context(), kernel.NewUUID())

	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestNegotiationRepository_ListExpired(t *testing.T) {
	factory, _ := newFactory(t)
	expiring, fresh := newOrder(t), newOrder(t)
	a := newRound(t, expiring, 1)
	a.ExpireAfter(time.Hour)
	b := newRound(t, fresh, 1)
	b.ExpireAfter(48 * time.Hour)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, expiring))
		require.NoError(t, uow.OrderRepository().Add(ctx, fresh))
		require.NoError(t, uow.NegotiationRepository().Add(ctx, a))
		require.NoError(t, uow.NegotiationRepository().Add(ctx, b))
	})

	expired, err := factory.Create().NegotiationRepository().ListExpired(t.Context(), now.Add(2*time.Hour), 10)

	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.True(t, expired[0].ID().IsEqual(a.ID()))
}

func TestChangeLogRepository_RoundTrip(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	log, err := changelog.NewChangeLog(kernel.NewUUID(), o.ID(), o.CustomerID(), lifecycle.RoleCustomer,
		changelog.PriceChange{From: decimal.RequireFromString("12.50"), To: decimal.NewFromInt(13), Currency: "USD"},
		"material cost", now)
	require.NoError(t, err)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		require.NoError(t, uow.ChangeLogRepository().Add(ctx, log))
	})

	require.NoError(t, log.Review(changelog.ReviewApproved, lifecycle.RoleManufacturer, o.ManufacturerID(), "ok", now))
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.ChangeLogRepository().Update(ctx, log))
	})

	logs, err := factory.Create().ChangeLogRepository().ListByOrder(t.Context(), o.ID())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	got := logs[0]
	assert.Equal(t, changelog.ChangeTypePrice, got.ChangeType())
	assert.Equal(t, changelog.ReviewApproved, got.ReviewStatus())
	assert.Equal(t, "ok", got.ReviewResponse())
	change, ok := got.Change().(changelog.PriceChange)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("12.50").Equal(change.From))
	assert.True(t, decimal.NewFromInt(13).Equal(change.To))
}

func TestTrackingRepository_StageHistory(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	tracking, err := production.NewTracking(kernel.NewUUID(), o.ID(), o.Kind(), now)
	require.NoError(t, err)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		require.NoError(t, uow.TrackingRepository().Add(ctx, tracking))
	})

	actor := o.ManufacturerID()
	require.NoError(t, tracking.SendPlan("plan v1", now))
	require.NoError(t, tracking.ApprovePlan(now))
	require.NoError(t, tracking.Advance(production.StageCutting, actor, production.StageReport{
		Photos: []string{"https://cdn/1.jpg", "https://cdn/2.jpg"},
	}, false, now))
	require.NoError(t, tracking.Advance(production.StageSewing, actor, production.StageReport{}, false, now))
	require.NoError(t, tracking.Revert(production.StageCutting, "fabric defect", &actor, now))
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.TrackingRepository().Update(ctx, tracking))
	})

	got, err := factory.Create().TrackingRepository().GetByOrder(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, production.StageCutting, got.CurrentStage())
	assert.Equal(t, 1, got.RevisionCount())
	assert.Equal(t, production.PlanApproved, got.PlanStatus())
	updates := got.StageUpdates()
	require.Len(t, updates, 4)
	assert.Equal(t, production.StagePlanning, updates[0].Stage())
	assert.Equal(t, []string{"https://cdn/1.jpg", "https://cdn/2.jpg"}, updates[0].Photos())
	assert.Equal(t, production.StageRequiresRevision, updates[2].Status())
	assert.True(t, updates[3].IsRevision())
	assert.Nil(t, updates[3].ActualEndDate())
}

func TestPaymentRepository_ListOverdue(t *testing.T) {
	factory, _ := newFactory(t)
	o := newOrder(t)
	due, err := payment.NewPayment(kernel.NewUUID(), o.ID(), payment.Intent{
		Type: payment.TypeDeposit, Amount: decimal.RequireFromString("375.00"),
		Percentage: decimal.NewFromInt(30), DueDate: now.AddDate(0, 0, 7),
	}, o.Currency(), now)
	require.NoError(t, err)
	later, err := payment.NewPayment(kernel.NewUUID(), o.ID(), payment.Intent{
		Type: payment.TypeBalance, Amount: decimal.RequireFromString("875.00"),
		Percentage: decimal.NewFromInt(70), DueDate: now.AddDate(0, 0, 30),
	}, o.Currency(), now)
	require.NoError(t, err)
	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		require.NoError(t, uow.PaymentRepository().Add(ctx, due))
		require.NoError(t, uow.PaymentRepository().Add(ctx, later))
	})

	repo := factory.Create().PaymentRepository()
	overdue, err := repo.ListOverdue(t.Context(), now.AddDate(0, 0, 8), 10)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.True(t, overdue[0].ID().IsEqual(due.ID()))

	all, err := repo.ListByOrder(t.Context(), o.ID())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, payment.TypeDeposit, all[0].Type())
	assert.True(t, decimal.RequireFromString("375.00").Equal(all[0].Amount()))
}

func TestUnitOfWork_PublishesEventsAfterCommit(t *testing.T) {
	factory, publisher := newFactory(t)
	o := newOrder(t)

	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		assert.Empty(t, publisher.events)
	})

	require.Len(t, publisher.events, 1)
	assert.Equal(t, order.EventCreated, publisher.events[0].Name)
	assert.True(t, publisher.events[0].AggregateID.IsEqual(o.ID()))
}

func TestUnitOfWork_RollbackDropsEvents(t *testing.T) {
	factory, publisher := newFactory(t)
	ctx := t.Context()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t)))

	require.NoError(t, uow.Rollback(ctx))

	assert.Empty(t, publisher.events)
}

func TestUnitOfWork_PublishFailureKeepsCommit(t *testing.T) {
	factory, publisher := newFactory(t)
	publisher.err = errors.New("journal closed")
	o := newOrder(t)

	inTx(t, factory, func(ctx context.Context, uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
	})

	_, err := factory.Create().OrderRepository().Get(t.Context(), o.ID())
	require.NoError(t, err)
}

func TestUnitOfWork_TransactionErrors(t *testing.T) {
	factory, _ := newFactory(t)
	ctx := t.Context()
	uow := factory.Create()

	require.Error(t, uow.Commit(ctx))
	require.Error(t, uow.Rollback(ctx))
}
