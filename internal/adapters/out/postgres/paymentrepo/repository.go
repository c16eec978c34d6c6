package paymentrepo

import (
	"context"
	"time"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "payment id is unique")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PaymentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "order_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "payment", id.String())
	}

	return toDomain(dto)
}

func (r *GormPaymentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	var dtos []PaymentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("due_date ASC").Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormPaymentRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*payment.Payment, error) {
	var dtos []PaymentDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", string(payment.StatusPending), now).
		Order("due_date ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}
