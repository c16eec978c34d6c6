package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// sweepFunc runs one batch as of at and reports how many rows it changed.
type sweepFunc func(ctx context.Context, at time.Time) (int, error)

// sweepJob runs a sweep on a cron schedule. Runs never overlap: a tick that
// fires while the previous run is still busy is skipped.
type sweepJob struct {
	name     string
	schedule string
	run      sweepFunc
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

func newSweepJob(name, schedule string, run sweepFunc, logger *slog.Logger) *sweepJob {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", name)
	return &sweepJob{
		name:     name,
		schedule: schedule,
		run:      run,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the sweep and starts the scheduler.
func (j *sweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *sweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "sweep job stopped")
}

// RunOnce executes a single sweep immediately. Partial failures are logged;
// the count covers the rows that were changed anyway.
func (j *sweepJob) RunOnce(ctx context.Context) (int, error) {
	n, err := j.run(ctx, j.now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "sweep failed", "changed", n, "error", err)
		return n, err
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "sweep finished", "changed", n)
	}
	return n, nil
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
