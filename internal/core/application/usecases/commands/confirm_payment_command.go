package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand accepts an uploaded receipt. The manufacturer, as the
// receiving party, or an admin confirms.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID   kernel.UUID
	role        lifecycle.Role
	confirmerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(paymentID kernel.UUID, role lifecycle.Role, confirmerID kernel.UUID) (ConfirmPaymentCommand, error) {
	if err := errors.Join(paymentID.Validate(), confirmerID.Validate(), validatePaymentReviewer(role)); err != nil {
		return ConfirmPaymentCommand{}, err
	}
	return ConfirmPaymentCommand{
		paymentID:   paymentID,
		role:        role,
		confirmerID: confirmerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) PaymentID() kernel.UUID   { return c.paymentID }
func (c ConfirmPaymentCommand) Role() lifecycle.Role     { return c.role }
func (c ConfirmPaymentCommand) ConfirmerID() kernel.UUID { return c.confirmerID }

func validatePaymentReviewer(role lifecycle.Role) error {
	if role != lifecycle.RoleManufacturer && role != lifecycle.RoleAdmin {
		return errs.NewUnauthorizedActorError(role.String(), "RECEIPT_UPLOADED", "REVIEW_PAYMENT")
	}
	return nil
}
