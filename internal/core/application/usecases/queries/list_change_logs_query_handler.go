package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListChangeLogsQueryHandler struct {
	db *gorm.DB
}

func NewListChangeLogsQueryHandler(db *gorm.DB) ListChangeLogsQueryHandler {
	return ListChangeLogsQueryHandler{db: db}
}

// Handle returns an empty slice for an order without changes, or an unknown order.
func (h ListChangeLogsQueryHandler) Handle(ctx context.Context, query ListChangeLogsQuery) ([]ChangeLogView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	logs := make([]ChangeLogView, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, changed_by, changed_by_role, change_type, previous_values, new_values, reason,
			review_status, review_response, reviewed_at, reviewed_by,
			negotiation_triggered, negotiation_id, created_at
		FROM order_change_logs
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Scan(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
