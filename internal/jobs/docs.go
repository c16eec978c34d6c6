// Package jobs provides scheduled background sweeps for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// for the time-driven parts of the order lifecycle.
//
// # Available Jobs
//
// 1. NegotiationExpiryJob - answers EXPIRED to pending negotiation rounds past expiresAt
// 2. OverduePaymentsJob - moves PENDING payments past their due date to OVERDUE
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, overdueHandler, "@every 1m", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// The sweep CLI command calls RunAllOnce instead of scheduling.
//
// # Error Handling
//
// Each row is handled in its own transaction. Rows lost to a concurrent
// writer are skipped silently; other failures are logged and the rest of the
// batch still runs. A failed job start stops the jobs already running.
package jobs
