package ports

import (
	"context"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
)

// ChangeLogRepository persists the audit trail of post-confirmation changes.
type ChangeLogRepository interface {
	Add(ctx context.Context, aggregate *changelog.ChangeLog) error
	Update(ctx context.Context, aggregate *changelog.ChangeLog) error
	Get(ctx context.Context, id kernel.UUID) (*changelog.ChangeLog, error)
	// ListByOrder returns the order's change logs, newest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*changelog.ChangeLog, error)
}
