package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"e2eperf/internal/aggregate"
	"e2eperf/internal/browser"
	"e2eperf/internal/capture"
	"e2eperf/internal/config"
	"e2eperf/internal/execution"
	"e2eperf/internal/report"
	"e2eperf/internal/run"
	"e2eperf/internal/scenario"
	"e2eperf/internal/storage"
	"e2eperf/internal/ui"
)

// ErrScenariosFailed makes the process exit non-zero when any scenario failed
var ErrScenariosFailed = errors.New("scenarios failed")

// LaunchFunc starts the configured browser
type LaunchFunc func(cfg *config.Config, log logrus.FieldLogger) (browser.Browser, error)

// RunCommand handles the run command
type RunCommand struct {
	config     *config.Config
	log        logrus.FieldLogger
	registry   *scenario.Registry
	launch     LaunchFunc
	storage    storage.Storage
	formatter  *ui.Formatter
	opener     report.Opener
	aggregator *aggregate.Aggregator

	// progress builds the progress reporter; nil disables it
	progress func(count int) execution.Progress
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	log logrus.FieldLogger,
	registry *scenario.Registry,
	launch LaunchFunc,
	st storage.Storage,
	formatter *ui.Formatter,
	opener report.Opener,
	aggregator *aggregate.Aggregator,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		log:        log,
		registry:   registry,
		launch:     launch,
		storage:    st,
		formatter:  formatter,
		opener:     opener,
		aggregator: aggregator,
		progress: func(count int) execution.Progress {
			return ui.NewProgressBar(count)
		},
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	scenarios := rc.registry.Select(rc.config.Flags.Filter)
	if len(scenarios) == 0 {
		color.Yellow("No scenarios to execute")
		return nil
	}

	b, err := rc.launch(rc.config, rc.log)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			rc.log.WithError(err).Warn("Failed to close browser")
		}
	}()

	if rc.aggregator != nil {
		rc.aggregator.Reset()
	}
	recorder := run.NewRecorder(rc.log)
	harness := run.NewHarness(rc.log, capture.NewFilter(rc.config.APIPathMarker), recorder, rc.aggregator)
	worker := execution.NewWorker(execution.NewRunner(rc.config, rc.log, b, harness))
	worker.SetFailFast(rc.config.Flags.FailFast)
	if rc.progress != nil {
		worker.SetProgress(rc.progress(len(scenarios)))
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	results, duration, runErr := worker.Execute(ctx, scenarios)
	records := recorder.Records()

	// Suite teardown: persist whatever was recorded, even after an interrupt.
	if err := rc.storage.Save(results, records, duration); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	writer := report.NewWriter(rc.config, rc.log, report.NewRenderer(rc.config.Title), rc.opener)
	if _, err := writer.Save(records); err != nil {
		return err
	}
	rc.logAggregate()

	saved, err := rc.storage.Load()
	if err != nil {
		return err
	}
	rc.formatter.PrintMetaStats(saved.Meta, results)

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	if saved.Meta.FailedTests > 0 {
		return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, saved.Meta.FailedTests, saved.Meta.TotalTests)
	}
	return nil
}

func (rc *RunCommand) logAggregate() {
	if rc.aggregator == nil {
		return
	}
	rc.log.WithFields(logrus.Fields{
		"api_calls":        len(rc.aggregator.AllAPICalls()),
		"console_messages": len(rc.aggregator.AllConsoleLogs()),
	}).Debug("Suite capture totals")
}
