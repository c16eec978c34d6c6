package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListActiveOrdersQueryHandler(db *gorm.DB) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{db: db}
}

// Handle filters on the party column for the role and excludes terminal statuses.
func (h ListActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListActiveOrdersQuery,
) ([]ListActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partyColumn := "customer_id"
	if query.Role() == lifecycle.RoleManufacturer {
		partyColumn = "manufacturer_id"
	}

	orders := make([]ListActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			status,
			quantity,
			unit_price,
			currency,
			updated_at
		FROM orders
		WHERE `+partyColumn+` = ? AND status NOT IN ?
		ORDER BY updated_at DESC, id
		LIMIT ?
	`, query.PartyID().Bytes(), terminalStatusNames(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListActiveOrdersQueryResponse
		var id uuid.UUID
		var kind, status, currency string
		var unitPrice decimal.Decimal
		var updatedAt time.Time

		err = rows.Scan(
			&id,
			&kind,
			&status,
			&resp.Quantity,
			&unitPrice,
			&currency,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.Kind, err = lifecycle.ParseEntityKind(kind); err != nil {
			return nil, err
		}
		if resp.Status, err = lifecycle.ParseStatus(status); err != nil {
			return nil, err
		}
		resp.Currency = kernel.Currency(currency)
		resp.TotalPrice = kernel.RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(resp.Quantity))))
		resp.UpdatedAt = updatedAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func terminalStatusNames() []string {
	seen := make(map[lifecycle.Status]bool)
	names := make([]string, 0)
	for _, kind := range []lifecycle.EntityKind{lifecycle.KindOrder, lifecycle.KindSample} {
		for _, s := range lifecycle.Statuses(kind) {
			if s.IsTerminal() && !seen[s] {
				seen[s] = true
				names = append(names, s.String())
			}
		}
	}
	return names
}
