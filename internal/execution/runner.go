package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
	"e2eperf/internal/config"
	"e2eperf/internal/domain"
	"e2eperf/internal/run"
	"e2eperf/internal/scenario"
)

// ErrTimeout is reported when a scenario overruns its time budget
var ErrTimeout = errors.New("scenario timed out")

// Runner executes a single scenario in its own browser session
type Runner struct {
	config  *config.Config
	log     logrus.FieldLogger
	browser browser.Browser
	harness *run.Harness
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, log logrus.FieldLogger, b browser.Browser, harness *run.Harness) *Runner {
	return &Runner{
		config:  cfg,
		log:     log.WithField("component", "runner"),
		browser: b,
		harness: harness,
	}
}

// Run opens a session, observes it while the scenario runs and records the
// outcome. A failed scenario is still recorded; a timed out or panicking one
// is discarded.
func (r *Runner) Run(ctx context.Context, sc scenario.Scenario) domain.TestResult {
	started := time.Now()
	result := domain.TestResult{Name: sc.Name}
	log := r.log.WithField("test", sc.Name)

	sess, err := r.browser.NewSession()
	if err != nil {
		result.Error = fmt.Errorf("failed to open browser session: %w", err)
		result.Duration = time.Since(started)
		return result
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.WithError(err).Debug("Failed to close browser session")
		}
	}()

	observed := r.harness.Begin(sc.Name, sess)

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("%w: %v", errPanicked, p)
			}
		}()
		done <- sc.Run(ctx, scenario.Env{
			Page:    sess.Page(),
			BaseURL: r.config.BaseURL,
			Log:     log,
		})
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s", ErrTimeout, r.config.Timeout)
	}

	if aborted(err) {
		observed.Abort()
		log.WithError(err).Warn("Scenario aborted, observations discarded")
	} else if _, endErr := observed.End(); endErr != nil {
		log.WithError(endErr).Warn("Failed to record scenario")
	}

	result.Passed = err == nil
	result.Error = err
	result.Duration = time.Since(started)
	return result
}

var errPanicked = errors.New("scenario panicked")

func aborted(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, errPanicked) || errors.Is(err, context.Canceled)
}
