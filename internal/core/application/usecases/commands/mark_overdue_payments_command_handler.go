package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// MarkOverduePaymentsCommandHandler runs the overdue sweep, one payment per
// transaction. Payments paid or cancelled since the listing are skipped.
type MarkOverduePaymentsCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewMarkOverduePaymentsCommandHandler(uowFactory PaymentUoWFactory) MarkOverduePaymentsCommandHandler {
	return MarkOverduePaymentsCommandHandler{uowFactory: uowFactory}
}

func (h MarkOverduePaymentsCommandHandler) Handle(ctx context.Context, cmd MarkOverduePaymentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.listOverdue(ctx, cmd.At(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	marked := 0
	var failures []error
	for _, id := range ids {
		err = h.markOverdue(ctx, id, cmd.At())
		switch {
		case err == nil:
			marked++
		case errors.Is(err, errs.ErrInvalidPaymentState), errors.Is(err, errs.ErrConcurrentModification):
		default:
			failures = append(failures, err)
		}
	}
	return marked, errors.Join(failures...)
}

func (h MarkOverduePaymentsCommandHandler) listOverdue(ctx context.Context, at time.Time, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payments, err := uow.PaymentRepository().ListOverdue(ctx, at, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.UUID, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID())
	}
	return ids, nil
}

func (h MarkOverduePaymentsCommandHandler) markOverdue(ctx context.Context, id kernel.UUID, at time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	orderRepo := uow.OrderRepository()

	p, err := paymentRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	o, err := orderRepo.Get(ctx, p.OrderID())
	if err != nil {
		return err
	}
	if p, err = paymentRepo.Get(ctx, id); err != nil {
		return err
	}

	if err = p.MarkOverdue(at); err != nil {
		return err
	}
	o.Touch(at)

	if err = paymentRepo.Update(ctx, p); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
