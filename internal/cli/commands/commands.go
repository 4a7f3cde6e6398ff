package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"e2eperf/internal/aggregate"
	"e2eperf/internal/browser"
	"e2eperf/internal/cli"
	"e2eperf/internal/config"
	"e2eperf/internal/report"
	"e2eperf/internal/scenario"
	"e2eperf/internal/storage"
	"e2eperf/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Report *ReportCommand
	View   *ViewCommand
	Open   *OpenCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log *logrus.Logger) *Commands {
	registry := scenario.NewRegistry(scenario.SwagLabs()...)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	opener := report.NewSystemOpener()
	viewer := ui.NewRecordsViewer()

	return &Commands{
		Run:    NewRunCommand(cfg, log, registry, browser.Launch, jsonStorage, formatter, opener, aggregate.Default()),
		List:   NewListCommand(cfg, registry, formatter),
		Report: NewReportCommand(cfg, log, jsonStorage, formatter, opener),
		View:   NewViewCommand(jsonStorage, viewer),
		Open:   NewOpenCommand(cfg, opener),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, log *logrus.Logger) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file (default: ./e2eperf.yaml when present)")
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", ".", "Directory that relative paths and .env are resolved against")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cli.LoadConfig(cfg, flags); err != nil {
			return err
		}
		return cli.SetLevel(log, cfg.LogLevel)
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the browser scenarios and write the performance report",
		Long:  "Execute every registered scenario in a fresh browser session, capture console errors and API calls per test and render the HTML performance report",
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter scenarios by name (supports wildcards, e.g. 'TC00*' or '*login*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop after the first failing scenario")
	runCmd.Flags().StringVarP(&flags.Driver, "driver", "d", "", "Browser driver: playwright or chromedp")
	runCmd.Flags().BoolVar(&flags.Headed, "headed", false, "Show the browser window")
	runCmd.Flags().BoolVar(&flags.NoOpen, "no-open", false, "Do not open the report when the run finishes")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered scenarios",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter scenarios by name (supports wildcards)")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render the HTML report from the last run's results",
		RunE:  c.Report.Execute,
	}
	reportCmd.Flags().BoolVar(&flags.NoOpen, "no-open", false, "Do not open the report after writing it")
	rootCmd.AddCommand(reportCmd)

	// View command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "Browse the last run's records interactively",
		RunE:  c.View.Execute,
	})

	// Open command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "open",
		Short: "Open the last HTML report with the system's default handler",
		RunE:  c.Open.Execute,
	})
}
