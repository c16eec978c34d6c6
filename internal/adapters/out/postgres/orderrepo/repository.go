package orderrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	lock    bool
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. With lock set,
// Get takes a row lock on the order that is held until the surrounding
// transaction ends, so writers of one order run one after another.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker, lock bool) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		lock:    lock,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "order id is unique")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order when the stored version still matches the
// aggregate's, then advances the version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("order", aggregate.ID().String(), aggregate.Version())
	}

	aggregate.Persisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if r.lock {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "order", id.String())
	}

	return toDomain(dto)
}
