package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/example/talentflow/internal/core/assessment"
	"github.com/example/talentflow/internal/ports/primary"
)

// AssessmentAdapter translates CLI operations to AssessmentService calls.
type AssessmentAdapter struct {
	service primary.AssessmentService
	out     io.Writer
}

// NewAssessmentAdapter creates a new AssessmentAdapter with the given service.
func NewAssessmentAdapter(service primary.AssessmentService, out io.Writer) *AssessmentAdapter {
	return &AssessmentAdapter{
		service: service,
		out:     out,
	}
}

// Show prints the job's assessment, section by section.
func (a *AssessmentAdapter) Show(ctx context.Context, jobID string) (*assessment.Assessment, error) {
	asmt, err := a.service.GetAssessment(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if asmt == nil {
		fmt.Fprintf(a.out, "Job %s has no assessment.\n", jobID)
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Attach one from a YAML or JSON file:")
		fmt.Fprintf(a.out, "  talentflow assessment save %s --file assessment.yaml\n", jobID)
		return nil, nil
	}

	fmt.Fprintf(a.out, "\nAssessment: %s (%s)\n", asmt.Title, asmt.ID)
	fmt.Fprintf(a.out, "Job: %s\n", asmt.JobID)
	for _, s := range asmt.Sections {
		fmt.Fprintf(a.out, "\n[%s] %s\n", s.ID, s.Title)
		for _, q := range s.Questions {
			marker := " "
			if q.Required {
				marker = "*"
			}
			fmt.Fprintf(a.out, "  %s %s (%s) %s\n", marker, q.ID, q.Type, q.Text)
			if q.Conditional != nil {
				fmt.Fprintf(a.out, "      shown when %s %s %s\n",
					q.Conditional.DependsOn, q.Conditional.Condition, q.Conditional.Value)
			}
		}
	}
	fmt.Fprintln(a.out)
	return asmt, nil
}

// Save creates or replaces the job's assessment.
func (a *AssessmentAdapter) Save(ctx context.Context, jobID, title string, sections []assessment.Section) (*assessment.Assessment, error) {
	asmt, err := a.service.SaveAssessment(ctx, primary.SaveAssessmentRequest{
		JobID:    jobID,
		Title:    title,
		Sections: sections,
	})
	if err != nil {
		return nil, err
	}

	count := 0
	for _, s := range asmt.Sections {
		count += len(s.Questions)
	}
	fmt.Fprintf(a.out, "✓ Saved assessment %s for job %s\n", asmt.ID, asmt.JobID)
	fmt.Fprintf(a.out, "  %d sections, %d questions\n", len(asmt.Sections), count)
	return asmt, nil
}

// Preview prints the visible questions and validation errors for responses.
func (a *AssessmentAdapter) Preview(ctx context.Context, jobID string, responses assessment.Responses) (*primary.AssessmentPreview, error) {
	preview, err := a.service.PreviewAssessment(ctx, jobID, responses)
	if err != nil {
		return nil, fmt.Errorf("failed to preview assessment: %w", err)
	}

	fmt.Fprintf(a.out, "Visible: %s\n", joinOrDash(preview.Visible))
	if preview.Valid {
		fmt.Fprintln(a.out, "✓ Responses are valid")
		return preview, nil
	}

	ids := make([]string, 0, len(preview.Errors))
	for id := range preview.Errors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	fmt.Fprintln(a.out, errorColor.Sprint("Errors:"))
	for _, id := range ids {
		fmt.Fprintf(a.out, "  %s: %s\n", id, preview.Errors[id])
	}
	return preview, nil
}

// Submit stores a candidate's responses.
func (a *AssessmentAdapter) Submit(ctx context.Context, jobID, candidateID string, responses assessment.Responses) (*primary.SubmitAssessmentResponse, error) {
	resp, err := a.service.SubmitAssessment(ctx, primary.SubmitAssessmentRequest{
		JobID:       jobID,
		CandidateID: candidateID,
		Responses:   responses,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Submission %s recorded for candidate %s\n", resp.ID, candidateID)
	return resp, nil
}

// List prints every assessment.
func (a *AssessmentAdapter) List(ctx context.Context) ([]*assessment.Assessment, error) {
	list, err := a.service.ListAssessments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No assessments found.")
		return list, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tJOB\tTITLE\tQUESTIONS\tUPDATED")
	fmt.Fprintln(w, "--\t---\t-----\t---------\t-------")
	for _, asmt := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			asmt.ID,
			asmt.JobID,
			asmt.Title,
			len(asmt.Questions()),
			asmt.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	return list, nil
}

// Submissions prints the responses stored for the job's assessment.
func (a *AssessmentAdapter) Submissions(ctx context.Context, jobID string) ([]*primary.Submission, error) {
	subs, err := a.service.ListSubmissions(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	if len(subs) == 0 {
		fmt.Fprintf(a.out, "No submissions for job %s.\n", jobID)
		return subs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCANDIDATE\tSUBMITTED\tANSWERS")
	fmt.Fprintln(w, "--\t---------\t---------\t-------")
	for _, sub := range subs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			sub.ID,
			sub.CandidateID,
			sub.SubmittedAt.Format("2006-01-02 15:04"),
			formatResponses(sub.Responses),
		)
	}
	w.Flush()
	return subs, nil
}

// formatResponses renders answers as "id=value" pairs sorted by question id.
func formatResponses(responses assessment.Responses) string {
	if len(responses) == 0 {
		return "-"
	}
	ids := make([]string, 0, len(responses))
	for id := range responses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + "=" + responses[id].String()
	}
	return strings.Join(parts, ", ")
}
