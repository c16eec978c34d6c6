package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrListChangeLogsQueryIsNotConstructed = errors.New(
	"ListChangeLogsQuery must be created via NewListChangeLogsQuery constructor",
)

// ListChangeLogsQuery retrieves the audit trail of post-confirmation changes
// of an order, oldest first.
type ListChangeLogsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListChangeLogsQuery(orderID kernel.UUID) (ListChangeLogsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListChangeLogsQuery{}, err
	}
	return ListChangeLogsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListChangeLogsQuery) Validate() error {
	return q.guard.Validate(ErrListChangeLogsQueryIsNotConstructed)
}

func (q ListChangeLogsQuery) OrderID() kernel.UUID { return q.orderID }
