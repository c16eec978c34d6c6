package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListPaymentsQueryIsNotConstructed = errors.New(
	"ListPaymentsQuery must be created via NewListPaymentsQuery constructor",
)

// ListPaymentsQuery retrieves the payment schedule of an order by due date,
// with the confirmed total against the order total.
type ListPaymentsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListPaymentsQuery(orderID kernel.UUID) (ListPaymentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListPaymentsQuery{}, err
	}
	return ListPaymentsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentsQueryIsNotConstructed)
}

func (q ListPaymentsQuery) OrderID() kernel.UUID { return q.orderID }

type ListPaymentsQueryResponse struct {
	Payments       []PaymentView   `json:"payments"`
	Total          decimal.Decimal `json:"total"`
	ConfirmedTotal decimal.Decimal `json:"confirmedTotal"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}
