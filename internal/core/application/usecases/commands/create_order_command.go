package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request for an order or a sample.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, lifecycle.KindOrder, customerID, manufacturerID,
//	    order.Terms{Quantity: 500, UnitPrice: decimal.NewFromInt(12), Currency: "USD", ProductionDays: 30}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, decimal.NewFromInt(30))
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	kind           lifecycle.EntityKind
	customerID     kernel.UUID
	manufacturerID kernel.UUID
	terms          order.Terms
	depositPercent *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers, kind and terms. A nil
// depositPercent leaves the choice to the handler's default.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	kind lifecycle.EntityKind,
	customerID, manufacturerID kernel.UUID,
	terms order.Terms,
	depositPercent *decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderID:        orderID,
		kind:           kind,
		customerID:     customerID,
		manufacturerID: manufacturerID,
		terms:          terms,
		guard:          guard.NewConstructorGuard(),
	}

	var depositErr error
	if depositPercent != nil {
		depositErr = kernel.ValidatePercentage("deposit percent", *depositPercent)
		d := *depositPercent
		cmd.depositPercent = &d
	}

	if err := errors.Join(
		orderID.Validate(),
		kind.Validate(),
		customerID.Validate(),
		manufacturerID.Validate(),
		terms.Validate(),
		depositErr,
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID             { return c.orderID }
func (c CreateOrderCommand) Kind() lifecycle.EntityKind       { return c.kind }
func (c CreateOrderCommand) CustomerID() kernel.UUID          { return c.customerID }
func (c CreateOrderCommand) ManufacturerID() kernel.UUID      { return c.manufacturerID }
func (c CreateOrderCommand) Terms() order.Terms               { return c.terms }
func (c CreateOrderCommand) DepositPercent() *decimal.Decimal { return c.depositPercent }
