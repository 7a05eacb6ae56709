package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/talentflow/internal/ports/primary"
	"github.com/example/talentflow/internal/wire"
)

var candidateCmd = &cobra.Command{
	Use:     "candidate",
	Aliases: []string{"cand"},
	Short:   "Manage candidates and their pipeline stage",
}

var candidateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		stage, _ := cmd.Flags().GetString("stage")
		jobID, _ := cmd.Flags().GetString("job")
		if err := validateEntityID(jobID, "job"); err != nil {
			return err
		}

		_, err := wire.CandidateAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(),
			primary.CandidateFilters{Search: search, Stage: stage, JobID: jobID},
			pageFlags(cmd),
		)
		return err
	},
}

var candidateShowCmd = &cobra.Command{
	Use:   "show [candidate-id]",
	Short: "Show a candidate with their timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "candidate"); err != nil {
			return err
		}
		_, err := wire.CandidateAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		return err
	},
}

var candidateCreateCmd = &cobra.Command{
	Use:   "create [name] [email]",
	Short: "Register a candidate for a job",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, _ := cmd.Flags().GetString("job")
		if err := validateEntityID(jobID, "job"); err != nil {
			return err
		}
		_, err := wire.CandidateAdapterWithOutput(cmd.OutOrStdout()).Create(cmd.Context(), args[0], args[1], jobID)
		return err
	},
}

var candidateMoveCmd = &cobra.Command{
	Use:   "move [candidate-id] [stage]",
	Short: "Move a candidate to a pipeline stage",
	Long: `Move a candidate to a stage and record it on their timeline.

Stages: applied, screen, tech, offer, hired, rejected

Examples:
  talentflow candidate move CAND-001 tech
  talentflow candidate move CAND-001 offer --note "Great system design round"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "candidate"); err != nil {
			return err
		}
		note, _ := cmd.Flags().GetString("note")
		_, err := wire.CandidateAdapterWithOutput(cmd.OutOrStdout()).Move(cmd.Context(), args[0], args[1], note)
		return err
	},
}

var candidateNoteCmd = &cobra.Command{
	Use:   "note [candidate-id] [text]",
	Short: "Add a note to a candidate's timeline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "candidate"); err != nil {
			return err
		}
		_, err := wire.CandidateAdapterWithOutput(cmd.OutOrStdout()).Note(cmd.Context(), args[0], args[1])
		return err
	},
}

var candidateTimelineCmd = &cobra.Command{
	Use:   "timeline [candidate-id]",
	Short: "Show a candidate's timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "candidate"); err != nil {
			return err
		}
		_, err := wire.CandidateAdapterWithOutput(cmd.OutOrStdout()).Timeline(cmd.Context(), args[0])
		return err
	},
}

// CandidateCmd returns the candidate command
func CandidateCmd() *cobra.Command {
	// Add flags
	candidateListCmd.Flags().StringP("search", "q", "", "Filter by name or email")
	candidateListCmd.Flags().StringP("stage", "s", "", "Filter by stage")
	candidateListCmd.Flags().StringP("job", "j", "", "Filter by job ID")
	addPageFlags(candidateListCmd)
	candidateCreateCmd.Flags().StringP("job", "j", "", "Job ID (required)")
	_ = candidateCreateCmd.MarkFlagRequired("job")
	candidateMoveCmd.Flags().StringP("note", "n", "", "Note to record with the stage change")

	// Add subcommands
	candidateCmd.AddCommand(candidateListCmd)
	candidateCmd.AddCommand(candidateShowCmd)
	candidateCmd.AddCommand(candidateCreateCmd)
	candidateCmd.AddCommand(candidateMoveCmd)
	candidateCmd.AddCommand(candidateNoteCmd)
	candidateCmd.AddCommand(candidateTimelineCmd)

	return candidateCmd
}
