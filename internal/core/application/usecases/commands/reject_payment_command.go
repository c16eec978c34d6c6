package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/guard"
)

var ErrRejectPaymentCommandIsNotConstructed = errors.New(
	"RejectPaymentCommand must be created via NewRejectPaymentCommand constructor",
)

// RejectPaymentCommand refuses an uploaded receipt. The reason is checked by
// the payment, so an empty one surfaces as EmptyReasonError from the handler.
type RejectPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID  kernel.UUID
	role       lifecycle.Role
	reviewerID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewRejectPaymentCommand(
	paymentID kernel.UUID,
	role lifecycle.Role,
	reviewerID kernel.UUID,
	reason string,
) (RejectPaymentCommand, error) {
	if err := errors.Join(paymentID.Validate(), reviewerID.Validate(), validatePaymentReviewer(role)); err != nil {
		return RejectPaymentCommand{}, err
	}
	return RejectPaymentCommand{
		paymentID:  paymentID,
		role:       role,
		reviewerID: reviewerID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RejectPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRejectPaymentCommandIsNotConstructed)
}

func (c RejectPaymentCommand) PaymentID() kernel.UUID  { return c.paymentID }
func (c RejectPaymentCommand) Role() lifecycle.Role    { return c.role }
func (c RejectPaymentCommand) ReviewerID() kernel.UUID { return c.reviewerID }
func (c RejectPaymentCommand) Reason() string          { return c.reason }
