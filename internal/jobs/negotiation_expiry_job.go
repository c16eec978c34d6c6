package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
)

// NegotiationExpiryJob answers EXPIRED to pending rounds past their expiry.
type NegotiationExpiryJob struct {
	*sweepJob
}

// NewNegotiationExpiryJob creates a job that runs ExpireNegotiationsCommandHandler
// on schedule, a cron spec such as "@every 1m".
func NewNegotiationExpiryJob(
	handler commands.ExpireNegotiationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *NegotiationExpiryJob {
	run := func(ctx context.Context, at time.Time) (int, error) {
		cmd, err := commands.NewExpireNegotiationsCommand(at, commands.DefaultSweepBatch)
		if err != nil {
			return 0, err
		}
		return handler.Handle(ctx, cmd)
	}
	return &NegotiationExpiryJob{newSweepJob("negotiation_expiry_job", schedule, run, logger)}
}
