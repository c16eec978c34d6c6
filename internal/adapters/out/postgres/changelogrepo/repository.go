package changelogrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChangeLogRepository implements ChangeLogRepository using GORM.
type GormChangeLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormChangeLogRepository(db *gorm.DB, tracker aggregateTracker) *GormChangeLogRepository {
	return &GormChangeLogRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormChangeLogRepository) Add(ctx context.Context, aggregate *changelog.ChangeLog) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "change log id is unique")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the review fields; the change itself is immutable.
func (r *GormChangeLogRepository) Update(ctx context.Context, aggregate *changelog.ChangeLog) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ChangeLogDTO{}).
		Where("id = ?", dto.ID).
		Select("review_status", "review_response", "reviewed_at", "reviewed_by",
			"negotiation_triggered", "negotiation_id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("change log", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormChangeLogRepository) Get(ctx context.Context, id kernel.UUID) (*changelog.ChangeLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChangeLogDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "change log", id.String())
	}

	return toDomain(dto)
}

func (r *GormChangeLogRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*changelog.ChangeLog, error) {
	var dtos []ChangeLogDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	logs := make([]*changelog.ChangeLog, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		logs = append(logs, c)
	}
	return logs, nil
}
