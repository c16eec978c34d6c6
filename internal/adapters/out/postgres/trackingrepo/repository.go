package trackingrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/production"

	"gorm.io/gorm"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tracking and its opening stage update.
func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *production.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "one production tracking per order")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the tracking row and upserts its stage updates.
func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *production.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a tracking by ID with its stage history.
func (r *GormTrackingRepository) Get(ctx context.Context, id kernel.UUID) (*production.Tracking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := r.preload(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "production tracking", id.String())
	}

	return toDomain(dto)
}

// GetByOrder retrieves the tracking of an order.
func (r *GormTrackingRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*production.Tracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := r.preload(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "production tracking of order", orderID.String())
	}

	return toDomain(dto)
}

func (r *GormTrackingRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("StageUpdates", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}
