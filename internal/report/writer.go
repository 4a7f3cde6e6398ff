package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/config"
	"e2eperf/internal/domain"
)

// Writer renders records to the configured report path
type Writer struct {
	config   *config.Config
	log      logrus.FieldLogger
	renderer *Renderer
	opener   Opener
}

// NewWriter creates a Writer. opener may be nil to never open the report.
func NewWriter(cfg *config.Config, log logrus.FieldLogger, renderer *Renderer, opener Opener) *Writer {
	return &Writer{
		config:   cfg,
		log:      log.WithField("component", "report_writer"),
		renderer: renderer,
		opener:   opener,
	}
}

// Save renders records and overwrites the report file, creating its directory
// if needed. Opening the report afterwards is best effort.
func (w *Writer) Save(records []domain.TestRunRecord) (string, error) {
	html, err := w.renderer.Render(records)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	path := w.config.GetReportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, html, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	w.log.WithFields(logrus.Fields{
		"path":    path,
		"records": len(records),
	}).Info("performance report generated")

	if w.config.OpenReport {
		w.Open(path)
	}
	return path, nil
}

// Open hands path to the opener, ignoring failures; CI hosts usually have no handler
func (w *Writer) Open(path string) {
	if w.opener == nil {
		return
	}
	if err := w.opener.Open(path); err != nil {
		w.log.WithError(err).Debug("could not open report")
	}
}
