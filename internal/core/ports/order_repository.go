// Package ports defines the contracts between the lifecycle core and its
// infrastructure: repositories per aggregate, the unit of work that scopes a
// transaction over them, and the publisher that receives domain events.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order and sample aggregates.
type OrderRepository interface {
	// Add persists a new order. The order must be valid and not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes with optimistic concurrency: the stored version
	// must equal aggregate.Version(), otherwise ConcurrentModificationError is
	// returned. On success the aggregate's version is bumped.
	//
	// Every command that mutates a child of the order (negotiation, change log,
	// tracking, payment) also calls Update, which serialises writers per order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier or returns ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
