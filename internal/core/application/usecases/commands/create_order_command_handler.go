package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler persists a new order or sample in PENDING.
// Orders without an explicit deposit percent get the configured default;
// samples are always paid in full.
type CreateOrderCommandHandler struct {
	uowFactory            OrderUoWFactory
	defaultDepositPercent decimal.Decimal
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, defaultDepositPercent decimal.Decimal) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:            uowFactory,
		defaultDepositPercent: defaultDepositPercent,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	deposit := h.defaultDepositPercent
	switch {
	case cmd.Kind() == lifecycle.KindSample:
		deposit = decimal.Zero
	case cmd.DepositPercent() != nil:
		deposit = *cmd.DepositPercent()
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Kind(), cmd.CustomerID(), cmd.ManufacturerID(),
		cmd.Terms(), deposit, now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
