package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"e2eperf/internal/config"
	"e2eperf/internal/report"
	"e2eperf/internal/storage"
	"e2eperf/internal/ui"
)

// ReportCommand re-renders the HTML report from saved results
type ReportCommand struct {
	config    *config.Config
	log       logrus.FieldLogger
	storage   storage.Storage
	formatter *ui.Formatter
	opener    report.Opener
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config, log logrus.FieldLogger, st storage.Storage, formatter *ui.Formatter, opener report.Opener) *ReportCommand {
	return &ReportCommand{
		config:    cfg,
		log:       log,
		storage:   st,
		formatter: formatter,
		opener:    opener,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := rc.storage.Load()
	if err != nil {
		return err
	}

	writer := report.NewWriter(rc.config, rc.log, report.NewRenderer(rc.config.Title), rc.opener)
	if _, err := writer.Save(results.Records); err != nil {
		return err
	}
	rc.formatter.PrintRecords(results.Records)
	return nil
}
