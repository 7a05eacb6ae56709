package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/talentflow/internal/ports/primary"
)

// CandidateAdapter translates CLI operations to CandidateService calls.
type CandidateAdapter struct {
	service primary.CandidateService
	out     io.Writer
}

// NewCandidateAdapter creates a new CandidateAdapter with the given service.
func NewCandidateAdapter(service primary.CandidateService, out io.Writer) *CandidateAdapter {
	return &CandidateAdapter{
		service: service,
		out:     out,
	}
}

// List prints one page of candidates.
func (a *CandidateAdapter) List(ctx context.Context, filters primary.CandidateFilters, page primary.PageRequest) (*primary.CandidatePage, error) {
	result, err := a.service.ListCandidates(ctx, filters, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	if len(result.Data) == 0 {
		fmt.Fprintln(a.out, "No candidates found.")
		return result, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tJOB\tSTAGE")
	fmt.Fprintln(w, "--\t----\t-----\t---\t-----")
	for _, c := range result.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.Name,
			c.Email,
			c.JobID,
			colorStage(c.Stage),
		)
	}
	w.Flush()

	p := result.Pagination
	fmt.Fprintf(a.out, "\nPage %d of %d (%d candidates)\n", p.Page, p.TotalPages, p.Total)
	return result, nil
}

// Show displays a candidate and their timeline.
func (a *CandidateAdapter) Show(ctx context.Context, candidateID string) (*primary.Candidate, error) {
	c, err := a.service.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	fmt.Fprintf(a.out, "\nCandidate: %s\n", c.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", c.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", c.Email)
	fmt.Fprintf(a.out, "Job:     %s\n", c.JobID)
	fmt.Fprintf(a.out, "Stage:   %s\n", colorStage(c.Stage))
	fmt.Fprintln(a.out)

	if _, err := a.Timeline(ctx, candidateID); err != nil {
		return nil, err
	}
	return c, nil
}

// Timeline prints the candidate's timeline, oldest first.
func (a *CandidateAdapter) Timeline(ctx context.Context, candidateID string) ([]*primary.TimelineEntry, error) {
	entries, err := a.service.GetCandidateTimeline(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}

	fmt.Fprintln(a.out, "Timeline:")
	for _, e := range entries {
		fmt.Fprintf(a.out, "  %s  %-12s %-9s %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Kind,
			colorStage(e.Stage),
			e.Notes,
		)
	}
	return entries, nil
}

// Create registers a candidate for a job.
func (a *CandidateAdapter) Create(ctx context.Context, name, email, jobID string) (*primary.Candidate, error) {
	c, err := a.service.CreateCandidate(ctx, primary.CreateCandidateRequest{Name: name, Email: email, JobID: jobID})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created candidate %s: %s <%s>\n", c.ID, c.Name, c.Email)
	fmt.Fprintf(a.out, "  Job: %s  Stage: %s\n", c.JobID, colorStage(c.Stage))
	return c, nil
}

// Move moves a candidate to a stage, with an optional note.
func (a *CandidateAdapter) Move(ctx context.Context, candidateID, stage, notes string) (*primary.Candidate, error) {
	patch := primary.CandidatePatch{Stage: &stage}
	if notes != "" {
		patch.Notes = &notes
	}
	c, err := a.service.UpdateCandidate(ctx, candidateID, patch)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Candidate %s is now in %s\n", c.ID, colorStage(c.Stage))
	return c, nil
}

// Note records a note on a candidate without changing the stage.
func (a *CandidateAdapter) Note(ctx context.Context, candidateID, notes string) (*primary.Candidate, error) {
	c, err := a.service.UpdateCandidate(ctx, candidateID, primary.CandidatePatch{Notes: &notes})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Note added to candidate %s\n", c.ID)
	return c, nil
}
