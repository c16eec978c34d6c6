package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then hands the events
	// recorded by tracked aggregates to the EventPublisher.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops tracked aggregates.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Repositories below are bound to the transaction started by Begin().
	OrderRepository() OrderRepository
	NegotiationRepository() NegotiationRepository
	ChangeLogRepository() ChangeLogRepository
	TrackingRepository() TrackingRepository
	PaymentRepository() PaymentRepository
}
