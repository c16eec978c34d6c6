package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewListPaymentsQueryHandler(db *gorm.DB) ListPaymentsQueryHandler {
	return ListPaymentsQueryHandler{db: db}
}

// Handle sums CONFIRMED amounts in Go so the totals keep decimal precision on
// every dialect.
func (h ListPaymentsQueryHandler) Handle(ctx context.Context, query ListPaymentsQuery) (ListPaymentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListPaymentsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	var totals []struct {
		Quantity  int
		UnitPrice decimal.Decimal
	}
	if err := db.Raw(`SELECT quantity, unit_price FROM orders WHERE id = ?`, id).Scan(&totals).Error; err != nil {
		return ListPaymentsQueryResponse{}, err
	}
	if len(totals) == 0 {
		return ListPaymentsQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	payments := make([]PaymentView, 0)
	if err := db.Raw(`
		SELECT
			id, type, status, method, amount, percentage, currency, receipt_url, receipt_uploaded_at,
			confirmed_at, confirmed_by, rejection_reason, due_date, paid_date
		FROM order_payments
		WHERE order_id = ?
		ORDER BY due_date, created_at
	`, id).Scan(&payments).Error; err != nil {
		return ListPaymentsQueryResponse{}, err
	}

	total := kernel.RoundMoney(totals[0].UnitPrice.Mul(decimal.NewFromInt(int64(totals[0].Quantity))))
	confirmed := decimal.Zero
	for _, p := range payments {
		if p.Status == string(payment.StatusConfirmed) {
			confirmed = confirmed.Add(p.Amount)
		}
	}

	return ListPaymentsQueryResponse{
		Payments:       payments,
		Total:          total,
		ConfirmedTotal: confirmed,
		Outstanding:    total.Sub(confirmed),
	}, nil
}
