// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	NegotiationRepoFactory interface {
		NegotiationRepository() ports.NegotiationRepository
	}

	ChangeLogRepoFactory interface {
		ChangeLogRepository() ports.ChangeLogRepository
	}

	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// NegotiationUoW covers the pricing rounds of an order.
	NegotiationUoW interface {
		TxManager
		OrderRepoFactory
		NegotiationRepoFactory
	}

	NegotiationUoWFactory interface {
		Create() NegotiationUoW
	}

	// ChangeUoW covers post-confirmation changes and the rounds they may spawn.
	ChangeUoW interface {
		TxManager
		OrderRepoFactory
		NegotiationRepoFactory
		ChangeLogRepoFactory
		PaymentRepoFactory
	}

	ChangeUoWFactory interface {
		Create() ChangeUoW
	}

	// ProductionUoW covers the production tracking. Payments are read to
	// evaluate the deposit gate.
	ProductionUoW interface {
		TxManager
		OrderRepoFactory
		TrackingRepoFactory
		PaymentRepoFactory
	}

	ProductionUoWFactory interface {
		Create() ProductionUoW
	}

	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// UoW manages transactions across every aggregate of an order.
	// Used by the generic lifecycle action, which may touch rounds and payments.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   paymentRepo := uow.PaymentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		NegotiationRepoFactory
		PaymentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
