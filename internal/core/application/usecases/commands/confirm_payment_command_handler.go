package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/payment"
)

// ConfirmPaymentCommandHandler confirms a payment and re-evaluates the order.
//
// Business rules:
//   - Confirmed payments may never add up to more than the order total
//   - An order waiting in DEPOSIT_PENDING or BALANCE_PENDING moves on, as the
//     system, once its gate is satisfied
type ConfirmPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	registry   *lifecycle.Registry
}

func NewConfirmPaymentCommandHandler(uowFactory PaymentUoWFactory, registry *lifecycle.Registry) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, p, ledger, err := loadPayment(ctx, uow, cmd.PaymentID())
	if err != nil {
		return nil, err
	}
	confirmer := cmd.ConfirmerID()
	if err = authorize(o, cmd.Role(), &confirmer, "CONFIRM_PAYMENT"); err != nil {
		return nil, err
	}

	t := now()
	if err = ledger.CheckConfirm(p); err != nil {
		return nil, err
	}
	if err = p.Confirm(confirmer, t); err != nil {
		return nil, err
	}
	if err = unblockOrder(h.registry, o, ledger, t); err != nil {
		return nil, err
	}

	if err = savePayment(ctx, uow, o, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
