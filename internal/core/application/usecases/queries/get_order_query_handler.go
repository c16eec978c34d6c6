package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order, its rounds in round order and the
// registry edges leaving its status.
type GetOrderQueryHandler struct {
	db       *gorm.DB
	registry *lifecycle.Registry
}

func NewGetOrderQueryHandler(db *gorm.DB, registry *lifecycle.Registry) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, registry: registry}
}

// orderRow mirrors the orders table; the counter-offer columns are flattened.
type orderRow struct {
	ID                      uuid.UUID
	Kind                    string
	CustomerID              uuid.UUID
	ManufacturerID          uuid.UUID
	Quantity                int
	UnitPrice               decimal.Decimal
	Currency                string
	ProductionDays          int
	Deadline                *time.Time
	Specifications          string
	Notes                   string
	DepositPercent          decimal.Decimal
	CustomerQuotedPrice     decimal.NullDecimal
	CustomerQuotedDays      *int
	CustomerQuotedNote      string
	CustomerQuotedType      string
	CustomerQuotedSentAt    *time.Time
	EstimatedProductionDate *time.Time
	ActualProductionStart   *time.Time
	ActualProductionEnd     *time.Time
	Status                  string
	PreviousStatus          string
	Version                 int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (r orderRow) view() OrderView {
	v := OrderView{
		ID:                      r.ID,
		Kind:                    r.Kind,
		CustomerID:              r.CustomerID,
		ManufacturerID:          r.ManufacturerID,
		Status:                  r.Status,
		PreviousStatus:          r.PreviousStatus,
		Quantity:                r.Quantity,
		UnitPrice:               r.UnitPrice,
		TotalPrice:              kernel.RoundMoney(r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))),
		Currency:                r.Currency,
		ProductionDays:          r.ProductionDays,
		Deadline:                r.Deadline,
		Specifications:          r.Specifications,
		Notes:                   r.Notes,
		DepositPercent:          r.DepositPercent,
		EstimatedProductionDate: r.EstimatedProductionDate,
		ActualProductionStart:   r.ActualProductionStart,
		ActualProductionEnd:     r.ActualProductionEnd,
		Version:                 r.Version,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
	if r.CustomerQuotedPrice.Valid {
		v.CounterOffer = &CounterOfferView{
			Price:  r.CustomerQuotedPrice.Decimal,
			Note:   r.CustomerQuotedNote,
			Type:   r.CustomerQuotedType,
			SentAt: r.CustomerQuotedSentAt,
		}
		if r.CustomerQuotedDays != nil {
			v.CounterOffer.Days = *r.CustomerQuotedDays
		}
	}
	return v
}

const orderColumns = `
	id, kind, customer_id, manufacturer_id, quantity, unit_price, currency, production_days,
	deadline, specifications, notes, deposit_percent,
	customer_quoted_price, customer_quoted_days, customer_quoted_note, customer_quoted_type, customer_quoted_sent_at,
	estimated_production_date, actual_production_start, actual_production_end,
	status, previous_status, version, created_at, updated_at`

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	var rows []orderRow
	if err := db.Raw(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id).Scan(&rows).Error; err != nil {
		return GetOrderQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	row := rows[0]

	negotiations := make([]NegotiationView, 0)
	if err := db.Raw(`
		SELECT
			id, round, sender_id, sender_role, unit_price, production_days, quantity, message,
			status, previous_order_status, related_change_log_id, expires_at, responded_at, responded_by, created_at
		FROM order_negotiations
		WHERE order_id = ?
		ORDER BY round, created_at
	`, id).Scan(&negotiations).Error; err != nil {
		return GetOrderQueryResponse{}, err
	}

	actions, err := h.availableActions(row.Kind, row.Status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		Order:            row.view(),
		Negotiations:     negotiations,
		AvailableActions: actions,
	}, nil
}

func (h GetOrderQueryHandler) availableActions(kindName, statusName string) ([]AvailableAction, error) {
	kind, err := lifecycle.ParseEntityKind(kindName)
	if err != nil {
		return nil, err
	}
	status, err := lifecycle.ParseStatus(statusName)
	if err != nil {
		return nil, err
	}

	edges := h.registry.Edges(kind, status)
	actions := make([]AvailableAction, 0, len(edges))
	for _, e := range edges {
		a := AvailableAction{Action: e.Action.String(), To: e.To.String()}
		if e.Gate != lifecycle.GateNone {
			a.Gate = e.Gate.String()
		}
		actions = append(actions, a)
	}
	return actions, nil
}
