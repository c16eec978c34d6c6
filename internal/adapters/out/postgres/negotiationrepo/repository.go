package negotiationrepo

import (
	"context"
	"strconv"
	"time"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

const invariantSinglePending = "single pending negotiation per order"

// GormNegotiationRepository implements NegotiationRepository using GORM.
type GormNegotiationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormNegotiationRepository(db *gorm.DB, tracker aggregateTracker) *GormNegotiationRepository {
	return &GormNegotiationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new round. A second PENDING round for the order violates
// the partial unique index and surfaces as InvariantViolationError.
func (r *GormNegotiationRepository) Add(ctx context.Context, aggregate *negotiation.Negotiation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, invariantSinglePending)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormNegotiationRepository) Update(ctx context.Context, aggregate *negotiation.Negotiation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&NegotiationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, invariantSinglePending)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("negotiation", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormNegotiationRepository) Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NegotiationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "negotiation", id.String())
	}

	return toDomain(dto)
}

// FindPending returns the order's active round or nil.
func (r *GormNegotiationRepository) FindPending(ctx context.Context, orderID kernel.UUID) (*negotiation.Negotiation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NegotiationDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), negotiation.StatusPending.String()).
		Limit(2).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	switch len(dtos) {
	case 0:
		return nil, nil //nolint:nilnil // no active round
	case 1:
		return toDomain(dtos[0])
	default:
		return nil, errs.NewInvariantViolationError(invariantSinglePending,
			"order "+orderID.String()+" has "+strconv.Itoa(len(dtos))+" pending rounds")
	}
}

func (r *GormNegotiationRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&NegotiationDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *GormNegotiationRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*negotiation.Negotiation, error) {
	var dtos []NegotiationDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("round ASC").Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormNegotiationRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*negotiation.Negotiation, error) {
	var dtos []NegotiationDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", negotiation.StatusPending.String(), now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}
