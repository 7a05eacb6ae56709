package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/example/talentflow/internal/core/assessment"
	"github.com/example/talentflow/internal/ports/primary"
	"github.com/example/talentflow/internal/wire"
)

var assessmentCmd = &cobra.Command{
	Use:     "assessment",
	Aliases: []string{"asmt"},
	Short:   "Manage job assessments",
	Long: `Attach assessments to jobs and run candidate responses against them.

Definitions and responses are read from YAML or JSON files. Quote answers
such as "Yes" and "No" in YAML so they stay strings.`,
}

var assessmentShowCmd = &cobra.Command{
	Use:   "show [job-id]",
	Short: "Show the assessment attached to a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		_, err := wire.AssessmentAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0])
		return err
	},
}

var assessmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every assessment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.AssessmentAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context())
		return err
	},
}

var assessmentSubmissionsCmd = &cobra.Command{
	Use:   "submissions [job-id]",
	Short: "List the responses submitted to a job's assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		_, err := wire.AssessmentAdapterWithOutput(cmd.OutOrStdout()).Submissions(cmd.Context(), args[0])
		return err
	},
}

var assessmentSaveCmd = &cobra.Command{
	Use:   "save [job-id]",
	Short: "Create or replace a job's assessment from a file",
	Long: `Create or replace a job's assessment. Conditional questions that depend
on each other in a loop are rejected.

Example file:
  title: Backend screening
  sections:
    - id: s1
      title: Basics
      questions:
        - id: q1
          type: single-choice
          text: Are you open to relocation?
          required: true
          options:
            - {id: o1, text: "Yes", value: "Yes"}
            - {id: o2, text: "No", value: "No"}
        - id: q2
          type: short-text
          text: Preferred city
          conditional: {dependsOn: q1, condition: equals, value: "Yes"}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		def, err := loadAssessmentFile(file)
		if err != nil {
			return err
		}
		_, err = wire.AssessmentAdapterWithOutput(cmd.OutOrStdout()).Save(cmd.Context(), args[0], def.Title, def.Sections)
		return err
	},
}

var assessmentPreviewCmd = &cobra.Command{
	Use:   "preview [job-id]",
	Short: "Show which questions are visible and which answers are invalid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("responses")
		responses, err := loadResponsesFile(file)
		if err != nil {
			return err
		}
		_, err = wire.AssessmentAdapterWithOutput(cmd.OutOrStdout()).Preview(cmd.Context(), args[0], responses)
		return err
	},
}

var assessmentSubmitCmd = &cobra.Command{
	Use:   "submit [job-id]",
	Short: "Submit a candidate's responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateEntityID(args[0], "job"); err != nil {
			return err
		}
		candidateID, _ := cmd.Flags().GetString("candidate")
		if err := validateEntityID(candidateID, "candidate"); err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("responses")
		responses, err := loadResponsesFile(file)
		if err != nil {
			return err
		}
		_, err = wire.AssessmentAdapterWithOutput(cmd.OutOrStdout()).Submit(cmd.Context(), args[0], candidateID, responses)
		return err
	},
}

// AssessmentCmd returns the assessment command
func AssessmentCmd() *cobra.Command {
	// Add flags
	assessmentSaveCmd.Flags().StringP("file", "f", "", "Assessment definition (YAML or JSON)")
	_ = assessmentSaveCmd.MarkFlagRequired("file")
	assessmentPreviewCmd.Flags().StringP("responses", "r", "", "Responses file (YAML or JSON); empty previews no answers")
	assessmentSubmitCmd.Flags().StringP("responses", "r", "", "Responses file (YAML or JSON)")
	assessmentSubmitCmd.Flags().StringP("candidate", "c", "", "Candidate ID (required)")
	_ = assessmentSubmitCmd.MarkFlagRequired("candidate")
	_ = assessmentSubmitCmd.MarkFlagRequired("responses")

	// Add subcommands
	assessmentCmd.AddCommand(assessmentListCmd)
	assessmentCmd.AddCommand(assessmentShowCmd)
	assessmentCmd.AddCommand(assessmentSaveCmd)
	assessmentCmd.AddCommand(assessmentPreviewCmd)
	assessmentCmd.AddCommand(assessmentSubmitCmd)
	assessmentCmd.AddCommand(assessmentSubmissionsCmd)

	return assessmentCmd
}

// loadAssessmentFile reads an assessment definition from YAML or JSON.
func loadAssessmentFile(path string) (*primary.SaveAssessmentRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment file: %w", err)
	}
	var def primary.SaveAssessmentRequest
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse assessment file %s: %w", path, err)
	}
	return &def, nil
}

// loadResponsesFile reads question-id to answer pairs. An empty path means
// no answers.
func loadResponsesFile(path string) (assessment.Responses, error) {
	if path == "" {
		return assessment.Responses{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses file: %w", err)
	}
	responses := assessment.Responses{}
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("failed to parse responses file %s: %w", path, err)
	}
	return responses, nil
}
