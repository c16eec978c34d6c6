package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/negotiation"
)

// NegotiationRepository persists negotiation rounds.
type NegotiationRepository interface {
	Add(ctx context.Context, aggregate *negotiation.Negotiation) error
	Update(ctx context.Context, aggregate *negotiation.Negotiation) error
	Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error)

	// FindPending returns the order's PENDING round, or nil when there is none.
	// More than one PENDING round is an InvariantViolationError.
	FindPending(ctx context.Context, orderID kernel.UUID) (*negotiation.Negotiation, error)

	// CountByOrder returns the number of rounds ever opened for the order.
	CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error)

	// ListByOrder returns the rounds of an order, oldest round first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*negotiation.Negotiation, error)

	// ListExpired returns up to limit PENDING rounds whose expiresAt is not after now.
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*negotiation.Negotiation, error)
}
