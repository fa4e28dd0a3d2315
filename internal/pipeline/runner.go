package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"soclens/internal/infrastructure"
)

// Runner executes a fixed sequence of steps. The first failure stops the
// run; remaining steps are marked skipped.
type Runner struct {
	logger *slog.Logger
	steps  []Step
}

// NewRunner creates a runner over the given steps.
func NewRunner(logger *slog.Logger, steps ...Step) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, steps: steps}
}

// Run executes the steps in order and returns the final run state. The
// returned state is complete even when err is non-nil.
func (r *Runner) Run(ctx context.Context) (*State, error) {
	state := &State{
		RunID:  uuid.NewString(),
		values: make(map[string]any),
	}
	for _, step := range r.steps {
		state.steps = append(state.steps, &StepState{ID: step.ID(), Name: step.Name(), Status: StatusPending})
	}

	logger := r.logger.With(slog.String("run_id", state.RunID))
	logger.Info("Pipeline run started", slog.Int("steps", len(r.steps)))

	var runErr error
	for i, step := range r.steps {
		ss := state.steps[i]
		if runErr != nil {
			ss.Status = StatusSkipped
			continue
		}
		if err := ctx.Err(); err != nil {
			ss.Status = StatusSkipped
			runErr = fmt.Errorf("run cancelled before step %s: %w", step.ID(), err)
			continue
		}

		ss.start()
		logger.Info("Step started", slog.String("step", step.ID()), slog.String("name", step.Name()))
		started := time.Now()

		if err := step.Run(ctx, state); err != nil {
			ss.fail(err)
			runErr = fmt.Errorf("step %s failed: %w", step.ID(), err)
			logger.Error("Step failed",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()),
				slog.Duration("elapsed", time.Since(started)))
			continue
		}

		ss.complete()
		infrastructure.StepDuration.WithLabelValues(step.ID()).Observe(time.Since(started).Seconds())
		logger.Info("Step completed",
			slog.String("step", step.ID()),
			slog.Duration("elapsed", time.Since(started)))
	}

	if runErr != nil {
		logger.Error("Pipeline run failed", slog.String("error", runErr.Error()))
		return state, runErr
	}
	logger.Info("Pipeline run completed")
	return state, nil
}
