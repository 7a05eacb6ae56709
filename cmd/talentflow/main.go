package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/talentflow/internal/cli"
	"github.com/example/talentflow/internal/config"
	"github.com/example/talentflow/internal/log"
	"github.com/example/talentflow/internal/version"
)

func main() {
	var flush func()

	rootCmd := &cobra.Command{
		Use:     "talentflow",
		Short:   "talentflow - hiring pipeline backend",
		Version: version.String(),
		Long: `talentflow manages a hiring pipeline: a reorderable job board, candidates
moving through stages with an append-only timeline, and per-job assessments
with conditional questions.

Commands run against the local SQLite database, or against a running API
server when TALENTFLOW_API_URL is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flush, err = log.Setup(cfg.LogLevel)
			return err
		},
	}

	// Add subcommands
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.JobCmd())
	rootCmd.AddCommand(cli.CandidateCmd())
	rootCmd.AddCommand(cli.AssessmentCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	err := rootCmd.Execute()
	if flush != nil {
		flush()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
