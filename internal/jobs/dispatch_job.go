package jobs

import (
	"context"
	"log/slog"

	"pharmadelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchJob periodically assigns pending deliveries to eligible partners.
// Runs every 30 seconds.
type DispatchJob struct {
	handler commands.DispatchPendingCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchJob creates the dispatch job. Uses DispatchPendingCommandHandler
// to drain the pending backlog on every tick.
func NewDispatchJob(handler commands.DispatchPendingCommandHandler, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_job"),
	}
}

// Start begins the dispatch job on a 30-second schedule.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchPendingCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started (running every 30 seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
