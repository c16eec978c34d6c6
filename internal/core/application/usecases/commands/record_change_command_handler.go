package commands

import (
	"context"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/services"
)

// RecordChangeCommandHandler applies a term edit and stores its audit record
// in the same transaction. An edit that brings the total below the confirmed
// payments is refused.
type RecordChangeCommandHandler struct {
	uowFactory ChangeUoWFactory
	auditor    *services.ChangeAuditor
}

func NewRecordChangeCommandHandler(uowFactory ChangeUoWFactory, auditor *services.ChangeAuditor) RecordChangeCommandHandler {
	return RecordChangeCommandHandler{
		uowFactory: uowFactory,
		auditor:    auditor,
	}
}

func (h RecordChangeCommandHandler) Handle(ctx context.Context, cmd RecordChangeCommand) (*changelog.ChangeLog, error) {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	log, err := h.auditor.Record(o, cmd.Role(), cmd.ChangedBy(), cmd.Change(), cmd.Reason(), now())
	if err != nil {
		return nil, err
	}

	ledger, err := loadLedger(ctx, uow.PaymentRepository(), o)
	if err != nil {
		return nil, err
	}
	if err = ledger.CheckTotal(); err != nil {
		return nil, err
	}

	if err = uow.ChangeLogRepository().Add(ctx, log); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return log, nil
}
