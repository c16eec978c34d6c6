package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/production"
)

// TrackingRepository persists production trackings together with their stage
// updates. Stage updates are append-only; Update inserts new rows and
// rewrites changed ones.
type TrackingRepository interface {
	Add(ctx context.Context, aggregate *production.Tracking) error
	Update(ctx context.Context, aggregate *production.Tracking) error
	Get(ctx context.Context, id kernel.UUID) (*production.Tracking, error)
	// GetByOrder returns the tracking of an order or ObjectNotFoundError.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*production.Tracking, error)
}
