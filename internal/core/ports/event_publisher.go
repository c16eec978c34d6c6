package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// EventPublisher receives domain events after the transaction that produced
// them has committed. Delivery failures do not undo the commit.
type EventPublisher interface {
	Publish(ctx context.Context, events []kernel.Event) error
}
