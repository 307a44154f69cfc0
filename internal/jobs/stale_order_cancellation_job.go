package jobs

import (
	"context"
	"log/slog"
	"time"

	"bookstore/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderCancellationJob periodically cancels orders that were placed but
// never paid. Runs every minute and cancels unpaid orders older than maxAge.
type StaleOrderCancellationJob struct {
	handler commands.CancelStaleOrdersCommandHandler
	maxAge  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderCancellationJob creates a job that sweeps unpaid orders.
// maxAge controls how long an unpaid order may sit before cancellation.
func NewStaleOrderCancellationJob(
	handler commands.CancelStaleOrdersCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		handler: handler,
		maxAge:  maxAge,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start begins the stale order sweep on a once-a-minute schedule.
func (j *StaleOrderCancellationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleOrdersCommand(j.maxAge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep misconfigured", "error", cmdErr)
			return
		}

		cancelled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep failed", "error", handleErr)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale orders", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started (running every minute)",
		"max_age", j.maxAge)
	return nil
}

// Stop stops the stale order cancellation job.
func (j *StaleOrderCancellationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}
