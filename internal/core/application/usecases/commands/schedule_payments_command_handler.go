package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
)

// SchedulePaymentsCommandHandler persists the scheduler's milestones.
//
// Business rules:
//   - The order must be confirmed and the customer may not schedule
//   - Live payments plus the new ones may not exceed the order total, so a
//     second run on a fully scheduled order fails
//   - A confirmed order with a deposit milestone moves to DEPOSIT_PENDING
type SchedulePaymentsCommandHandler struct {
	uowFactory PaymentUoWFactory
	scheduler  *payment.Scheduler
	registry   *lifecycle.Registry
}

func NewSchedulePaymentsCommandHandler(
	uowFactory PaymentUoWFactory,
	scheduler *payment.Scheduler,
	registry *lifecycle.Registry,
) SchedulePaymentsCommandHandler {
	return SchedulePaymentsCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		registry:   registry,
	}
}

func (h SchedulePaymentsCommandHandler) Handle(ctx context.Context, cmd SchedulePaymentsCommand) ([]*payment.Payment, error) {
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

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if cmd.Role() == lifecycle.RoleCustomer {
		return nil, errs.NewUnauthorizedActorError(cmd.Role().String(), o.Status().String(), "SCHEDULE_PAYMENTS")
	}
	if err = authorize(o, cmd.Role(), cmd.ActorID(), "SCHEDULE_PAYMENTS"); err != nil {
		return nil, err
	}
	if !o.Status().IsConfirmed() {
		return nil, errs.NewIllegalTransitionError(o.Kind().String(), o.Status().String(), "SCHEDULE_PAYMENTS")
	}

	t := now()
	intents, err := h.scheduler.ScheduleForOrder(o, t)
	if err != nil {
		return nil, err
	}
	ledger, err := loadLedger(ctx, paymentRepo, o)
	if err != nil {
		return nil, err
	}
	if err = ledger.CheckSchedule(intents); err != nil {
		return nil, err
	}

	scheduled := make([]*payment.Payment, 0, len(intents))
	hasDeposit := false
	for _, intent := range intents {
		p, newErr := payment.NewPayment(kernel.NewUUID(), o.ID(), intent, o.Currency(), t)
		if newErr != nil {
			return nil, newErr
		}
		if err = paymentRepo.Add(ctx, p); err != nil {
			return nil, err
		}
		hasDeposit = hasDeposit || intent.Type == payment.TypeDeposit
		scheduled = append(scheduled, p)
	}

	if hasDeposit && h.registry.CanTransition(o.Kind(), o.Status(), lifecycle.ActionRequestDeposit, lifecycle.RoleSystem) {
		if err = o.Transition(h.registry, lifecycle.ActionRequestDeposit, lifecycle.RoleSystem, nil, t); err != nil {
			return nil, err
		}
	} else {
		o.Touch(t)
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return scheduled, nil
}
