package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/talentflow/internal/ports/primary"
	"github.com/example/talentflow/internal/wire"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage jobs on the hiring board",
	Long:  "Create, list, update and reorder jobs",
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs in board order",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")
		sort, _ := cmd.Flags().GetString("sort")

		_, err := wire.JobAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(),
			primary.JobFilters{Search: search, Status: status, Sort: sort},
			pageFlags(cmd),
		)
		return err
	},
}

var jobShowCmd = &cobra.Command{
	Use:   "show [job-id]",
	Short: "Show job details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		_, err := wire.JobAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		return err
	},
}

var jobCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a job at the bottom of the board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, _ := cmd.Flags().GetStringSlice("tag")
		_, err := wire.JobAdapterWithOutput(cmd.OutOrStdout()).Create(cmd.Context(), args[0], tags)
		return err
	},
}

var jobUpdateCmd = &cobra.Command{
	Use:   "update [job-id]",
	Short: "Update a job's title or tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}

		var patch primary.JobPatch
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			patch.Title = &title
		}
		if cmd.Flags().Changed("tag") {
			tags, _ := cmd.Flags().GetStringSlice("tag")
			patch.Tags = &tags
		}
		if patch.Title == nil && patch.Tags == nil {
			return fmt.Errorf("nothing to update: pass --title or --tag")
		}

		_, err := wire.JobAdapterWithOutput(cmd.OutOrStdout()).Update(cmd.Context(), args[0], patch)
		return err
	},
}

var jobArchiveCmd = &cobra.Command{
	Use:   "archive [job-id]",
	Short: "Archive a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		_, err := wire.JobAdapterWithOutput(cmd.OutOrStdout()).SetStatus(cmd.Context(), args[0], "archived")
		return err
	},
}

var jobUnarchiveCmd = &cobra.Command{
	Use:   "unarchive [job-id]",
	Short: "Make an archived job active again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		_, err := wire.JobAdapterWithOutput(cmd.OutOrStdout()).SetStatus(cmd.Context(), args[0], "active")
		return err
	},
}

var jobMoveCmd = &cobra.Command{
	Use:   "move [job-id] [position]",
	Short: "Move a job to a new position on the board",
	Long: `Move a job to a new position. Positions start at 1; a position past the
end of the board moves the job to the bottom.

Examples:
  talentflow job move JOB-002 4
  talentflow job move JOB-010 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q: must be a number", args[1])
		}
		return wire.JobAdapterWithOutput(cmd.OutOrStdout()).Move(cmd.Context(), args[0], to)
	},
}

// JobCmd returns the job command
func JobCmd() *cobra.Command {
	// Add flags
	jobListCmd.Flags().StringP("search", "q", "", "Filter by title or tag")
	jobListCmd.Flags().StringP("status", "s", "", "Filter by status (active, archived)")
	jobListCmd.Flags().String("sort", "", "Sort by order (default), title or createdAt")
	addPageFlags(jobListCmd)
	jobCreateCmd.Flags().StringSliceP("tag", "t", nil, "Tag (repeatable)")
	jobUpdateCmd.Flags().String("title", "", "New title (re-derives the slug)")
	jobUpdateCmd.Flags().StringSliceP("tag", "t", nil, "Replace tags (repeatable)")

	// Add subcommands
	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobShowCmd)
	jobCmd.AddCommand(jobCreateCmd)
	jobCmd.AddCommand(jobUpdateCmd)
	jobCmd.AddCommand(jobArchiveCmd)
	jobCmd.AddCommand(jobUnarchiveCmd)
	jobCmd.AddCommand(jobMoveCmd)

	return jobCmd
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("page", "p", 1, "Page number")
	cmd.Flags().Int("page-size", 0, "Items per page (default depends on the listing)")
}

func pageFlags(cmd *cobra.Command) primary.PageRequest {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("page-size")
	return primary.PageRequest{Page: page, PageSize: size}
}
