package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"e2eperf/internal/config"
	"e2eperf/internal/report"
)

// OpenCommand opens the last written report
type OpenCommand struct {
	config *config.Config
	opener report.Opener
}

// NewOpenCommand creates a new OpenCommand
func NewOpenCommand(cfg *config.Config, opener report.Opener) *OpenCommand {
	return &OpenCommand{config: cfg, opener: opener}
}

// Execute runs the command
func (oc *OpenCommand) Execute(cmd *cobra.Command, args []string) error {
	path := oc.config.GetReportPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no report at %s, run `e2eperf run` first", path)
		}
		return fmt.Errorf("stat report: %w", err)
	}

	if err := oc.opener.Open(path); err != nil {
		return fmt.Errorf("failed to open report: %w", err)
	}
	color.Green("Opened %s", path)
	return nil
}
