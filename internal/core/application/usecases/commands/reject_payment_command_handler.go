package commands

import (
	"context"

	"marketplace/internal/core/domain/model/payment"
)

type RejectPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewRejectPaymentCommandHandler(uowFactory PaymentUoWFactory) RejectPaymentCommandHandler {
	return RejectPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle rejects the receipt; the customer may upload a new one.
func (h RejectPaymentCommandHandler) Handle(ctx context.Context, cmd RejectPaymentCommand) (*payment.Payment, error) {
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

	o, p, _, err := loadPayment(ctx, uow, cmd.PaymentID())
	if err != nil {
		return nil, err
	}
	reviewer := cmd.ReviewerID()
	if err = authorize(o, cmd.Role(), &reviewer, "REJECT_PAYMENT"); err != nil {
		return nil, err
	}

	t := now()
	if err = p.Reject(cmd.Reason(), t); err != nil {
		return nil, err
	}
	o.Touch(t)

	if err = savePayment(ctx, uow, o, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
