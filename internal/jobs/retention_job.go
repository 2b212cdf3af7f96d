package jobs

import (
	"context"
	"log/slog"
	"time"

	"menuorder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRetentionSchedule = "0 4 * * *"
	DefaultRetention         = 30 * 24 * time.Hour

	retentionRunTimeout = 5 * time.Minute
)

// terminalOrderPurger is satisfied by commands.PurgeTerminalOrdersCommandHandler.
type terminalOrderPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeTerminalOrdersCommand) (int64, error)
}

// RetentionJob deletes served and cancelled orders older than the retention
// period on a cron schedule.
type RetentionJob struct {
	handler   terminalOrderPurger
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRetentionJob creates the job. Empty schedule and zero retention fall
// back to the defaults.
func NewRetentionJob(
	handler terminalOrderPurger,
	schedule string,
	retention time.Duration,
	logger *slog.Logger,
) *RetentionJob {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RetentionJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "retention_job"),
	}
}

// Start schedules the purge. Returns an error for an invalid schedule.
func (j *RetentionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Run purges once.
func (j *RetentionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), retentionRunTimeout)
	defer cancel()

	cmd, err := commands.NewPurgeTerminalOrdersCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retention job misconfigured", "error", err)
		return
	}

	purged, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retention job failed", "error", err)
		return
	}
	if purged > 0 {
		j.logger.InfoContext(ctx, "Terminal orders purged", "count", purged)
	}
}

// Stop stops scheduling and waits for a running purge to finish.
func (j *RetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Retention job stopped")
}
