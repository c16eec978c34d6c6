package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetProductionTrackingQueryIsNotConstructed = errors.New(
	"GetProductionTrackingQuery must be created via NewGetProductionTrackingQuery constructor",
)

// GetProductionTrackingQuery retrieves the tracking of an order with its full
// stage history, revisions included, in the order the stages were visited.
type GetProductionTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductionTrackingQuery(orderID kernel.UUID) (GetProductionTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetProductionTrackingQuery{}, err
	}
	return GetProductionTrackingQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductionTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetProductionTrackingQueryIsNotConstructed)
}

func (q GetProductionTrackingQuery) OrderID() kernel.UUID { return q.orderID }
