// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built straight from the tables, without locks.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves an order or sample with its negotiation history and
// the lifecycle actions currently available from its status.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db, lifecycle.Default())
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("order %s is %s after %d rounds\n", resp.Order.ID, resp.Order.Status, len(resp.Negotiations))
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// AvailableAction is an edge leaving the order's current status.
type AvailableAction struct {
	Action string `json:"action"`
	To     string `json:"to"`
	// Gate names the payment that must be confirmed first, empty when none.
	Gate string `json:"gate,omitempty"`
}

type GetOrderQueryResponse struct {
	Order            OrderView         `json:"order"`
	Negotiations     []NegotiationView `json:"negotiations"`
	AvailableActions []AvailableAction `json:"availableActions"`
}
