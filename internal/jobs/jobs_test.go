package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/storetest"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type (
	orderUoWs       struct{ ports.UnitOfWorkFactory }
	negotiationUoWs struct{ ports.UnitOfWorkFactory }
	paymentUoWs     struct{ ports.UnitOfWorkFactory }
	allUoWs         struct{ ports.UnitOfWorkFactory }
)

func (f orderUoWs) Create() commands.OrderUoW             { return f.UnitOfWorkFactory.Create() }
func (f negotiationUoWs) Create() commands.NegotiationUoW { return f.UnitOfWorkFactory.Create() }
func (f paymentUoWs) Create() commands.PaymentUoW         { return f.UnitOfWorkFactory.Create() }
func (f allUoWs) Create() commands.UoW                    { return f.UnitOfWorkFactory.Create() }

type SweepJobsTestSuite struct {
	suite.Suite

	db       *gorm.DB
	registry *lifecycle.Registry
	factory  *postgres_adapter.GormUnitOfWorkFactory
	engine   *services.NegotiationEngine

	customerID     kernel.UUID
	manufacturerID kernel.UUID
}

func TestSweepJobsTestSuite(t *testing.T) {
	suite.Run(t, new(SweepJobsTestSuite))
}

func (s *SweepJobsTestSuite) SetupTest() {
	s.db = storetest.Open(s.T())
	s.registry = lifecycle.Default()
	s.factory = postgres_adapter.NewGormUnitOfWorkFactory(s.db, nil, nil)
	s.engine = services.NewNegotiationEngine(s.registry, time.Hour)
	s.customerID = kernel.NewUUID()
	s.manufacturerID = kernel.NewUUID()
}

func (s *SweepJobsTestSuite) party(role lifecycle.Role) *kernel.UUID {
	id := s.customerID
	if role == lifecycle.RoleManufacturer {
		id = s.manufacturerID
	}
	return &id
}

func (s *SweepJobsTestSuite) reviewedOrder() *order.Order {
	create := commands.NewCreateOrderCommandHandler(orderUoWs{s.factory}, decimal.NewFromInt(30))
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), lifecycle.KindOrder, s.customerID, s.manufacturerID,
		order.Terms{
			Quantity:       100,
			UnitPrice:      decimal.NewFromInt(10),
			Currency:       "USD",
			ProductionDays: 30,
		}, nil)
	s.Require().NoError(err)
	o, err := create.Handle(s.T().Context(), cmd)
	s.Require().NoError(err)

	s.act(o.ID(), lifecycle.ActionReview, lifecycle.RoleManufacturer)
	return o
}

func (s *SweepJobsTestSuite) act(orderID kernel.UUID, action lifecycle.Action, role lifecycle.Role) {
	cmd, err := commands.NewTransitionOrderCommand(orderID, action, role, s.party(role))
	s.Require().NoError(err)
	_, err = commands.NewTransitionOrderCommandHandler(allUoWs{s.factory}, s.registry).Handle(s.T().Context(), cmd)
	s.Require().NoError(err)
}

func (s *SweepJobsTestSuite) propose(orderID kernel.UUID) *negotiation.Negotiation {
	cmd, err := commands.NewProposeNegotiationCommand(orderID, lifecycle.RoleManufacturer, s.manufacturerID,
		negotiation.Proposal{UnitPrice: decimal.NewFromInt(9), ProductionDays: 25})
	s.Require().NoError(err)
	n, err := commands.NewProposeNegotiationCommandHandler(negotiationUoWs{s.factory}, s.engine).
		Handle(s.T().Context(), cmd)
	s.Require().NoError(err)
	return n
}

func (s *SweepJobsTestSuite) getOrder(orderID kernel.UUID) queries.GetOrderQueryResponse {
	query, err := queries.NewGetOrderQuery(orderID)
	s.Require().NoError(err)
	resp, err := queries.NewGetOrderQueryHandler(s.db, s.registry).Handle(s.T().Context(), query)
	s.Require().NoError(err)
	return resp
}

func (s *SweepJobsTestSuite) expiryJob() *NegotiationExpiryJob {
	handler := commands.NewExpireNegotiationsCommandHandler(negotiationUoWs{s.factory}, s.engine)
	return NewNegotiationExpiryJob(handler, "@every 1m", nil)
}

func (s *SweepJobsTestSuite) TestNegotiationExpiry_ExpiresOverdueRound() {
	o := s.reviewedOrder()
	s.propose(o.ID())
	s.Equal("QUOTE_SENT", s.getOrder(o.ID()).Order.Status)

	job := s.expiryJob()
	job.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	n, err := job.RunOnce(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, n)

	resp := s.getOrder(o.ID())
	s.Require().Len(resp.Negotiations, 1)
	s.Equal("EXPIRED", resp.Negotiations[0].Status)
	s.Equal("REVIEWED", resp.Order.Status)

	n, err = job.RunOnce(s.T().Context())
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *SweepJobsTestSuite) TestNegotiationExpiry_LeavesLiveRound() {
	o := s.reviewedOrder()
	s.propose(o.ID())

	n, err := s.expiryJob().RunOnce(s.T().Context())
	s.Require().NoError(err)
	s.Zero(n)
	s.Equal("PENDING", s.getOrder(o.ID()).Negotiations[0].Status)
}

func (s *SweepJobsTestSuite) TestOverduePayments_MarksPastDueDeposit() {
	o := s.reviewedOrder()
	round := s.propose(o.ID())

	respond, err := commands.NewRespondNegotiationCommand(round.ID(), lifecycle.RoleCustomer, s.customerID,
		negotiation.DecisionAccept)
	s.Require().NoError(err)
	_, err = commands.NewRespondNegotiationCommandHandler(negotiationUoWs{s.factory}, s.engine).
		Handle(s.T().Context(), respond)
	s.Require().NoError(err)
	s.act(o.ID(), lifecycle.ActionConfirm, lifecycle.RoleCustomer)

	scheduler, err := payment.NewScheduler(payment.Policy{DepositDueDays: 7})
	s.Require().NoError(err)
	schedule, err := commands.NewSchedulePaymentsCommand(o.ID(), lifecycle.RoleManufacturer, s.party(lifecycle.RoleManufacturer))
	s.Require().NoError(err)
	_, err = commands.NewSchedulePaymentsCommandHandler(paymentUoWs{s.factory}, scheduler, s.registry).
		Handle(s.T().Context(), schedule)
	s.Require().NoError(err)

	job := NewOverduePaymentsJob(commands.NewMarkOverduePaymentsCommandHandler(paymentUoWs{s.factory}), "@every 1m", nil)

	n, err := job.RunOnce(s.T().Context())
	s.Require().NoError(err)
	s.Zero(n)

	job.now = func() time.Time { return time.Now().AddDate(0, 0, 8) }
	n, err = job.RunOnce(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, n)

	query, err := queries.NewListPaymentsQuery(o.ID())
	s.Require().NoError(err)
	resp, err := queries.NewListPaymentsQueryHandler(s.db).Handle(s.T().Context(), query)
	s.Require().NoError(err)
	for _, p := range resp.Payments {
		if p.Type == string(payment.TypeDeposit) {
			s.Equal("OVERDUE", p.Status)
		}
	}
}

func TestSweepJob_RunOnce_ReportsFailure(t *testing.T) {
	boom := errors.New("boom")
	job := newSweepJob("test_job", "@every 1m", func(context.Context, time.Time) (int, error) {
		return 2, boom
	}, nil)

	n, err := job.RunOnce(t.Context())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, n)
}

func TestSweepJob_RunOnce_UsesClock(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var seen time.Time
	job := newSweepJob("test_job", "@every 1m", func(_ context.Context, now time.Time) (int, error) {
		seen = now
		return 0, nil
	}, nil)
	job.now = func() time.Time { return at }

	_, err := job.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, at, seen)
}

func TestSweepJob_Start_RejectsBadSchedule(t *testing.T) {
	job := newSweepJob("test_job", "not a schedule", func(context.Context, time.Time) (int, error) {
		return 0, nil
	}, nil)

	require.Error(t, job.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	jm := &JobManager{
		negotiationExpiryJob: &NegotiationExpiryJob{newSweepJob("a", "@every 1h", noop, nil)},
		overduePaymentsJob:   &OverduePaymentsJob{newSweepJob("b", "@every 1h", noop, nil)},
	}
	require.NoError(t, jm.StartAll())
	jm.StopAll()

	expired, overdue, err := jm.RunAllOnce(t.Context())
	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Zero(t, overdue)
}

func noop(context.Context, time.Time) (int, error) { return 0, nil }
