package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

func now() time.Time {
	return time.Now().UTC()
}

// authorize checks that a party role is taken by the account the order holds
// for it. Admin and system roles carry no account.
func authorize(o *order.Order, role lifecycle.Role, actorID *kernel.UUID, action string) error {
	if !role.IsParty() {
		return nil
	}
	party, _ := o.PartyID(role)
	if actorID == nil || !party.IsEqual(*actorID) {
		return errs.NewUnauthorizedActorError(role.String(), o.Status().String(), action)
	}
	return nil
}

func loadLedger(ctx context.Context, repo ports.PaymentRepository, o *order.Order) (*payment.Ledger, error) {
	payments, err := repo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	return payment.NewLedger(o.ID(), o.TotalPrice(), o.DepositPercent(), payments), nil
}

func validateRole(role lifecycle.Role) error {
	if role == lifecycle.RoleUnknown {
		return errs.NewValueIsRequiredError("role")
	}
	return nil
}

func validateOptionalUUID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}
