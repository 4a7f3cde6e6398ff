package execution

import (
	"context"
	"time"

	"e2eperf/internal/domain"
	"e2eperf/internal/scenario"
)

// Worker executes scenarios one after another. Sessions share one browser
// process and records must come out in execution order.
type Worker struct {
	runner   *Runner
	progress Progress
	failFast bool
}

// NewWorker creates a new Worker
func NewWorker(runner *Runner) *Worker {
	return &Worker{runner: runner}
}

// SetProgress sets the progress reporter for the worker
func (w *Worker) SetProgress(progress Progress) {
	w.progress = progress
}

// SetFailFast stops execution after the first failing scenario
func (w *Worker) SetFailFast(failFast bool) {
	w.failFast = failFast
}

// Execute runs the scenarios in order. Cancelling ctx stops before the next
// scenario starts.
func (w *Worker) Execute(ctx context.Context, scenarios []scenario.Scenario) ([]domain.TestResult, time.Duration, error) {
	if len(scenarios) == 0 {
		return nil, 0, nil
	}

	startTime := time.Now()
	var passed, failed int
	results := make([]domain.TestResult, 0, len(scenarios))

	for _, sc := range scenarios {
		if ctx.Err() != nil {
			break
		}

		if w.progress != nil {
			w.progress.Start(sc.Name)
		}
		result := w.runner.Run(ctx, sc)
		results = append(results, result)
		if result.Passed {
			passed++
		} else {
			failed++
		}
		if w.progress != nil {
			w.progress.Update(passed, failed)
		}

		if !result.Passed && w.failFast {
			break
		}
	}

	if w.progress != nil {
		w.progress.Finish()
	}
	return results, time.Since(startTime), ctx.Err()
}
