package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/talentflow/internal/db"
	"github.com/example/talentflow/internal/wire"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the local database contents with demo data",
	Long: `Wipe the local database and fill it with demo jobs, candidates with
consistent timelines, and assessments with conditional questions.

Examples:
  talentflow seed
  talentflow seed --jobs 10 --candidates 200 --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := db.DefaultSeedOptions()
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
		opts.Candidates, _ = cmd.Flags().GetInt("candidates")
		opts.Assessments, _ = cmd.Flags().GetInt("assessments")
		if err := opts.Validate(); err != nil {
			return err
		}

		cfg := wire.Config()
		if cfg.Remote() {
			return fmt.Errorf("seed works on the local database only (unset TALENTFLOW_API_URL)")
		}

		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts.Rand = rand.New(rand.NewSource(seed))
		}
		opts.Now = time.Now().UTC()

		summary, err := db.SeedDemo(wire.Get().DB, opts)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✓ Seeded demo data")
		fmt.Fprintf(out, "  Jobs:        %d\n", summary.Jobs)
		fmt.Fprintf(out, "  Candidates:  %d (%d timeline entries)\n", summary.Candidates, summary.TimelineEntries)
		fmt.Fprintf(out, "  Assessments: %d\n", summary.Assessments)
		return nil
	},
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	defaults := db.DefaultSeedOptions()
	seedCmd.Flags().Int("jobs", defaults.Jobs, "Number of jobs")
	seedCmd.Flags().Int("candidates", defaults.Candidates, "Number of candidates")
	seedCmd.Flags().Int("assessments", defaults.Assessments, "Number of jobs with an assessment")
	seedCmd.Flags().Int64("seed", 0, "Random seed for a reproducible data set")
	return seedCmd
}
