package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/production"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the storage-level invariants against a
// real PostgreSQL: the partial unique index on pending negotiations, the
// order version check and native text[] photo columns.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	publisher *recordingPublisher
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("integration suite needs docker")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE orders, order_negotiations, order_change_logs,
		production_trackings, production_stage_updates, order_payments`).Error
	suite.Require().NoError(err)
	suite.publisher = &recordingPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, nil)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPendingIndexRejectsSecondRound() {
	ctx := context.Background()
	o := newOrder(suite.T())
	inTx(suite.T(), suite.factory, func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
		suite.Require().NoError(uow.NegotiationRepository().Add(ctx, newRound(suite.T(), o, 1)))
	})

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err := uow.NegotiationRepository().Add(ctx, newRound(suite.T(), o, 2))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(err, errs.ErrInvariantViolation)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPendingIndexAllowsAnsweredRounds() {
	o := newOrder(suite.T())
	first := newRound(suite.T(), o, 1)
	inTx(suite.T(), suite.factory, func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
		suite.Require().NoError(uow.NegotiationRepository().Add(ctx, first))
	})

	suite.Require().NoError(first.Supersede(now))
	second := newRound(suite.T(), o, 2)
	inTx(suite.T(), suite.factory, func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.NegotiationRepository().Update(ctx, first))
		suite.Require().NoError(uow.NegotiationRepository().Add(ctx, second))
	})

	rounds, err := suite.factory.Create().NegotiationRepository().ListByOrder(context.Background(), o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(rounds, 2)
	suite.Equal(negotiation.StatusSuperseded, rounds[0].Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentOrderWritersConflict() {
	ctx := context.Background()
	o := newOrder(suite.T())
	inTx(suite.T(), suite.factory, func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	})

	a, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	a.Touch(now)
	b.Touch(now)
	inTx(suite.T(), suite.factory, func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Update(ctx, a))
	})

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err = uow.OrderRepository().Update(ctx, b)
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackingPhotosUseNativeArray() {
	o := newOrder(suite.T())
	tracking, err := production.NewTracking(kernel.NewUUID(), o.ID(), lifecycle.KindOrder, now)
	suite.Require().NoError(err)
	suite.Require().NoError(tracking.SendPlan("", now))
	suite.Require().NoError(tracking.ApprovePlan(now))
	suite.Require().NoError(tracking.Advance(production.StageCutting, o.ManufacturerID(), production.StageReport{
		Photos: []string{"a.jpg", "b.jpg"},
	}, false, now))

	inTx(suite.T(), suite.factory, func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
		suite.Require().NoError(uow.TrackingRepository().Add(ctx, tracking))
	})

	got, err := suite.factory.Create().TrackingRepository().Get(context.Background(), tracking.ID())
	suite.Require().NoError(err)
	suite.Equal([]string{"a.jpg", "b.jpg"}, got.StageUpdates()[0].Photos())
	suite.NotEmpty(suite.publisher.events)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderReadInTransactionWaitsForWriter() {
	ctx := context.Background()
	o := newOrder(suite.T())
	inTx(suite.T(), suite.factory, func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	})

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	held, err := writer.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	type read struct {
		version int
		err     error
	}
	done := make(chan read, 1)
	go func() {
		reader := suite.factory.Create()
		if beginErr := reader.Begin(ctx); beginErr != nil {
			done <- read{err: beginErr}
			return
		}
		defer func() { _ = reader.Rollback(ctx) }()
		got, getErr := reader.OrderRepository().Get(ctx, o.ID())
		if getErr != nil {
			done <- read{err: getErr}
			return
		}
		done <- read{version: got.Version()}
	}()

	select {
	case <-done:
		suite.Fail("second transaction read a locked order")
	case <-time.After(300 * time.Millisecond):
	}

	held.Touch(now)
	suite.Require().NoError(writer.OrderRepository().Update(ctx, held))
	suite.Require().NoError(writer.Commit(ctx))

	select {
	case r := <-done:
		suite.Require().NoError(r.err)
		suite.Equal(held.Version(), r.version)
	case <-time.After(5 * time.Second):
		suite.Fail("second transaction never got the order")
	}
}
