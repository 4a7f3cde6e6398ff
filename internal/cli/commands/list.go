package commands

import (
	"github.com/spf13/cobra"

	"e2eperf/internal/config"
	"e2eperf/internal/scenario"
	"e2eperf/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	registry  *scenario.Registry
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, registry *scenario.Registry, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		registry:  registry,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	lc.formatter.PrintScenarioList(lc.registry.Select(lc.config.Flags.Filter))
	return nil
}
