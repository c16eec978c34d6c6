package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/payment"
)

type UploadReceiptCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewUploadReceiptCommandHandler(uowFactory PaymentUoWFactory) UploadReceiptCommandHandler {
	return UploadReceiptCommandHandler{uowFactory: uowFactory}
}

// Handle records the receipt. Only the order's customer may upload.
func (h UploadReceiptCommandHandler) Handle(ctx context.Context, cmd UploadReceiptCommand) (*payment.Payment, error) {
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
	uploader := cmd.UploadedBy()
	if err = authorize(o, lifecycle.RoleCustomer, &uploader, "UPLOAD_RECEIPT"); err != nil {
		return nil, err
	}

	t := now()
	if err = p.UploadReceipt(cmd.ReceiptURL(), cmd.Method(), uploader, t); err != nil {
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
