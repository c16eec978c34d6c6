// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across the order, negotiation, change log,
//     production tracking and payment repositories
//   - Aggregate tracking for domain event publishing after commit
//   - Optimistic concurrency on the order row (see orderrepo)
//   - Repository factory pattern for consistent database connections
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	// All operations within same transaction
//	if err := uow.NegotiationRepository().Update(ctx, superseded); err != nil {
//	    return err
//	}
//	if err := uow.NegotiationRepository().Add(ctx, next); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Writers of the same order are serialised by the order row lock taken
//     on read and by the order version check on write
package postgres

import (
	"context"
	"log/slog"

	"marketplace/internal/adapters/out/postgres/changelogrepo"
	"marketplace/internal/adapters/out/postgres/negotiationrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/paymentrepo"
	"marketplace/internal/adapters/out/postgres/trackingrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates embedding kernel.EventRecorder.
type eventSource interface {
	PullEvents() []kernel.Event
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// publisher may be nil, in which case recorded events are dropped after commit.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, journal, slog.Default())
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations. After a successful commit the events recorded by
// the tracked aggregates are handed to the EventPublisher.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and then
// publishes the domain events of tracked aggregates. A publishing failure is
// logged and does not turn the committed command into an error.
//
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.dispatchEvents(ctx)
	return nil
}

// Rollback discards all changes made within the current transaction.
// Database returns to its state before the transaction began.
//
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository provides access to order persistence operations within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
// Inside a transaction, reading an order locks its row until commit or rollback.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow, uow.tx != nil)
}

func (uow *GormUnitOfWork) NegotiationRepository() ports.NegotiationRepository {
	return negotiationrepo.NewGormNegotiationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ChangeLogRepository() ports.ChangeLogRepository {
	return changelogrepo.NewGormChangeLogRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TrackingRepository() ports.TrackingRepository {
	return trackingrepo.NewGormTrackingRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// This method is called by repository implementations when aggregates
// are added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) dispatchEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []kernel.Event
	for _, t := range tracked {
		if src, ok := t.Aggregate.(eventSource); ok {
			events = append(events, src.PullEvents()...)
		}
	}
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish domain events", "count", len(events), "error", err)
		return
	}
	uow.logger.DebugContext(ctx, "published domain events", "count", len(events))
}
