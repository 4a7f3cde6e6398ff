package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"e2eperf/internal/cli"
	"e2eperf/internal/cli/commands"
	"e2eperf/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "e2eperf",
		Short:         "Browser end-to-end runs with per-test performance capture",
		Long:          `Run page-object browser scenarios against the Swag Labs shop, capture console errors and API calls for every test, and write a self-contained HTML performance report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults; loaded for real once flags are parsed
	cfg := config.New()
	log := cli.NewLogger()

	var flags cli.Flags
	cmds := commands.NewCommands(cfg, log)
	cmds.Register(rootCmd, &flags, cfg, log)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
