// Package jobs provides scheduled background tasks for the bookstore.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order management.
//
// # Available Jobs
//
// 1. StaleOrderCancellationJob - Runs every minute to cancel unpaid orders
// older than the configured maximum age
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, 24*time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; a failed job start
// returns an error from StartAll.
package jobs
