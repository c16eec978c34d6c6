package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	negotiationExpiryJob *NegotiationExpiryJob
	overduePaymentsJob   *OverduePaymentsJob
}

// NewJobManager creates a new job manager with both sweeps on the same schedule.
func NewJobManager(
	expireHandler commands.ExpireNegotiationsCommandHandler,
	overdueHandler commands.MarkOverduePaymentsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		negotiationExpiryJob: NewNegotiationExpiryJob(expireHandler, schedule, logger),
		overduePaymentsJob:   NewOverduePaymentsJob(overdueHandler, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.negotiationExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start negotiation expiry job: %w", err)
	}

	if err := jm.overduePaymentsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.negotiationExpiryJob.Stop()
		return fmt.Errorf("failed to start overdue payments job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overduePaymentsJob.Stop()
	jm.negotiationExpiryJob.Stop()
}

// RunAllOnce runs every sweep a single time, for the sweep CLI command.
func (jm *JobManager) RunAllOnce(ctx context.Context) (expired, overdue int, err error) {
	expired, expireErr := jm.negotiationExpiryJob.RunOnce(ctx)
	overdue, overdueErr := jm.overduePaymentsJob.RunOnce(ctx)
	return expired, overdue, errors.Join(expireErr, overdueErr)
}
