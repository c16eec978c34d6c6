package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
)

type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
	Update(ctx context.Context, aggregate *payment.Payment) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)
	// ListByOrder returns the order's payments ordered by due date.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
	// ListOverdue returns up to limit PENDING payments whose due date is before now.
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*payment.Payment, error)
}
