package jobs

import (
	"context"
	"errors"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// AutoAssignJob drains the pending delivery queue on a schedule. Each tick
// dispatches at most one delivery; an empty queue or an empty courier pool
// is a normal outcome, not an error.
type AutoAssignJob struct {
	handler  commands.AutoAssignCourierCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoAssignJob creates the dispatch job. schedule is a six-field cron
// expression with seconds, e.g. "*/5 * * * * *" for every five seconds.
func NewAutoAssignJob(
	handler commands.AutoAssignCourierCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AutoAssignJob {
	return &AutoAssignJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_assign_job"),
	}
}

// Start begins the scheduled dispatch runs.
func (j *AutoAssignJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewAutoAssignNextCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue or pool is the steady state off-peak.
			if errors.Is(err, commands.ErrNoPendingDelivery) ||
				errors.Is(err, services.ErrNoEligibleCourier) {
				return
			}
			j.logger.ErrorContext(ctx, "Auto assign job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto assign job started", "schedule", j.schedule)
	return nil
}

// Stop stops the dispatch job.
func (j *AutoAssignJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto assign job stopped")
}
