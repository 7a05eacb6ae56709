package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/talentflow/internal/ports/primary"
)

// JobAdapter translates CLI operations to JobService calls.
type JobAdapter struct {
	service primary.JobService
	out     io.Writer
}

// NewJobAdapter creates a new JobAdapter with the given service.
func NewJobAdapter(service primary.JobService, out io.Writer) *JobAdapter {
	return &JobAdapter{
		service: service,
		out:     out,
	}
}

// List prints one page of the job board.
func (a *JobAdapter) List(ctx context.Context, filters primary.JobFilters, page primary.PageRequest) (*primary.JobPage, error) {
	result, err := a.service.ListJobs(ctx, filters, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	if len(result.Data) == 0 {
		fmt.Fprintln(a.out, "No jobs found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first job:")
		fmt.Fprintln(a.out, "  talentflow job create \"Senior Go Engineer\" --tag go --tag backend")
		return result, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tTITLE\tSTATUS\tTAGS")
	fmt.Fprintln(w, "-----\t--\t-----\t------\t----")
	for _, job := range result.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			job.Order,
			job.ID,
			job.Title,
			colorStatus(job.Status),
			joinOrDash(job.Tags),
		)
	}
	w.Flush()

	p := result.Pagination
	fmt.Fprintf(a.out, "\nPage %d of %d (%d jobs)\n", p.Page, p.TotalPages, p.Total)
	return result, nil
}

// Show displays details for a single job.
func (a *JobAdapter) Show(ctx context.Context, jobID string) (*primary.Job, error) {
	job, err := a.service.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	fmt.Fprintf(a.out, "\nJob: %s\n", job.ID)
	fmt.Fprintf(a.out, "Title:   %s\n", job.Title)
	fmt.Fprintf(a.out, "Slug:    %s\n", job.Slug)
	fmt.Fprintf(a.out, "Status:  %s\n", colorStatus(job.Status))
	fmt.Fprintf(a.out, "Order:   %d\n", job.Order)
	fmt.Fprintf(a.out, "Tags:    %s\n", joinOrDash(job.Tags))
	fmt.Fprintf(a.out, "Created: %s\n", job.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(a.out)

	return job, nil
}

// Create creates a job at the bottom of the board.
func (a *JobAdapter) Create(ctx context.Context, title string, tags []string) (*primary.Job, error) {
	job, err := a.service.CreateJob(ctx, primary.CreateJobRequest{Title: title, Tags: tags})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created job %s: %s\n", job.ID, job.Title)
	fmt.Fprintf(a.out, "  Slug: %s  Order: %d\n", job.Slug, job.Order)
	return job, nil
}

// Update applies a partial update.
func (a *JobAdapter) Update(ctx context.Context, jobID string, patch primary.JobPatch) (*primary.Job, error) {
	job, err := a.service.UpdateJob(ctx, jobID, patch)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Job %s updated\n", job.ID)
	return job, nil
}

// SetStatus archives or reactivates a job.
func (a *JobAdapter) SetStatus(ctx context.Context, jobID, status string) (*primary.Job, error) {
	job, err := a.service.UpdateJob(ctx, jobID, primary.JobPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Job %s is now %s\n", job.ID, colorStatus(job.Status))
	return job, nil
}

// Move reorders a job to the given rank. The current rank is read first.
func (a *JobAdapter) Move(ctx context.Context, jobID string, toOrder int) error {
	job, err := a.service.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}

	err = a.service.ReorderJob(ctx, primary.ReorderJobRequest{
		JobID:     jobID,
		FromOrder: job.Order,
		ToOrder:   toOrder,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Moved job %s\n", jobID)
	fmt.Fprintf(a.out, "  %d → %d\n", job.Order, toOrder)
	return nil
}
