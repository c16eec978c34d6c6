package queries

import (
	"context"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetProductionTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetProductionTrackingQueryHandler(db *gorm.DB) GetProductionTrackingQueryHandler {
	return GetProductionTrackingQueryHandler{db: db}
}

func (h GetProductionTrackingQueryHandler) Handle(ctx context.Context, query GetProductionTrackingQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	db := h.db.WithContext(ctx)

	var trackings []TrackingView
	if err := db.Raw(`
		SELECT
			id, order_id, current_stage, overall_status, progress, hold_reason,
			plan_status, plan_note, plan_rejection_reason, revision_count,
			actual_start_date, actual_end_date, updated_at
		FROM production_trackings
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Scan(&trackings).Error; err != nil {
		return TrackingView{}, err
	}
	if len(trackings) == 0 {
		return TrackingView{}, errs.NewObjectNotFoundError("production tracking of order", query.OrderID())
	}
	tracking := trackings[0]

	tracking.Stages = make([]StageUpdateView, 0)
	if err := db.Raw(`
		SELECT
			id, stage, status, is_revision, delay_reason, extra_days, notes, photos,
			actual_start_date, actual_end_date, updated_by
		FROM production_stage_updates
		WHERE tracking_id = ?
		ORDER BY seq
	`, tracking.ID).Scan(&tracking.Stages).Error; err != nil {
		return TrackingView{}, err
	}

	return tracking, nil
}
