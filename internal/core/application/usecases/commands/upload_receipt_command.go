package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUploadReceiptCommandIsNotConstructed = errors.New(
	"UploadReceiptCommand must be created via NewUploadReceiptCommand constructor",
)

// UploadReceiptCommand attaches the customer's proof of payment. The receipt
// itself is stored elsewhere; only its URL is kept.
type UploadReceiptCommand struct { //nolint:recvcheck //using for validation
	paymentID  kernel.UUID
	receiptURL string
	method     payment.Method
	uploadedBy kernel.UUID

	guard guard.ConstructorGuard
}

func NewUploadReceiptCommand(
	paymentID kernel.UUID,
	receiptURL string,
	method payment.Method,
	uploadedBy kernel.UUID,
) (UploadReceiptCommand, error) {
	receiptURL = strings.TrimSpace(receiptURL)
	var urlErr error
	if receiptURL == "" {
		urlErr = errs.NewValueIsRequiredError("receipt url")
	}
	_, methodErr := payment.ParseMethod(string(method))
	if err := errors.Join(paymentID.Validate(), uploadedBy.Validate(), urlErr, methodErr); err != nil {
		return UploadReceiptCommand{}, err
	}
	return UploadReceiptCommand{
		paymentID:  paymentID,
		receiptURL: receiptURL,
		method:     method,
		uploadedBy: uploadedBy,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UploadReceiptCommand) Validate() error {
	return c.guard.Validate(ErrUploadReceiptCommandIsNotConstructed)
}

func (c UploadReceiptCommand) PaymentID() kernel.UUID  { return c.paymentID }
func (c UploadReceiptCommand) ReceiptURL() string      { return c.receiptURL }
func (c UploadReceiptCommand) Method() payment.Method  { return c.method }
func (c UploadReceiptCommand) UploadedBy() kernel.UUID { return c.uploadedBy }
