package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
)

// loadPayment reads a payment, its order and a ledger over the order's
// payments in which the returned payment is the same instance. The payments
// are listed after the order row is locked.
func loadPayment(
	ctx context.Context,
	uow PaymentUoW,
	paymentID kernel.UUID,
) (*order.Order, *payment.Payment, *payment.Ledger, error) {
	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, nil, nil, err
	}
	o, err := uow.OrderRepository().Get(ctx, p.OrderID())
	if err != nil {
		return nil, nil, nil, err
	}
	all, err := paymentRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, nil, nil, err
	}
	for _, candidate := range all {
		if candidate.ID().IsEqual(paymentID) {
			return o, candidate, payment.NewLedger(o.ID(), o.TotalPrice(), o.DepositPercent(), all), nil
		}
	}
	return nil, nil, nil, errs.NewObjectNotFoundError("payment", paymentID.String())
}

// savePayment writes the payment, then the order with its version check.
func savePayment(ctx context.Context, uow PaymentUoW, o *order.Order, p *payment.Payment) error {
	if err := uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}

// unblockOrder lets the system take the payment-gated step the order is
// waiting for once the ledger satisfies its gate: DEPOSIT_PENDING ->
// DEPOSIT_RECEIVED and BALANCE_PENDING -> READY_TO_SHIP.
func unblockOrder(registry *lifecycle.Registry, o *order.Order, ledger *payment.Ledger, t time.Time) error {
	var action lifecycle.Action
	switch o.Status() { //nolint:exhaustive // only the payment waiting statuses
	case lifecycle.StatusDepositPending:
		action = lifecycle.ActionRecordDeposit
	case lifecycle.StatusBalancePending:
		action = lifecycle.ActionMarkReady
	default:
		o.Touch(t)
		return nil
	}
	edge, err := registry.Resolve(o.Kind(), o.Status(), action, lifecycle.RoleSystem)
	if err != nil || !ledger.IsOrderPaymentGateSatisfied(edge.Gate) {
		o.Touch(t)
		return nil //nolint:nilerr // the order keeps waiting
	}
	return o.Transition(registry, action, lifecycle.RoleSystem, ledger, t)
}
