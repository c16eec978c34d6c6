package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
)

// OverduePaymentsJob moves pending payments past their due date to OVERDUE.
type OverduePaymentsJob struct {
	*sweepJob
}

func NewOverduePaymentsJob(
	handler commands.MarkOverduePaymentsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OverduePaymentsJob {
	run := func(ctx context.Context, at time.Time) (int, error) {
		cmd, err := commands.NewMarkOverduePaymentsCommand(at, commands.DefaultSweepBatch)
		if err != nil {
			return 0, err
		}
		return handler.Handle(ctx, cmd)
	}
	return &OverduePaymentsJob{newSweepJob("overdue_payments_job", schedule, run, logger)}
}
