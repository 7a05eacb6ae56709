package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/talentflow/internal/core/job"
	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/metrics"
	"github.com/example/talentflow/internal/ports/primary"
	"github.com/example/talentflow/internal/ports/secondary"
)

// JobServiceImpl implements the JobService interface.
type JobServiceImpl struct {
	jobRepo secondary.JobRepository
	now     func() time.Time

	// mu serializes writes that touch board positions.
	mu sync.Mutex
}

// NewJobService creates a new JobService with injected dependencies.
func NewJobService(jobRepo secondary.JobRepository) *JobServiceImpl {
	return &JobServiceImpl{
		jobRepo: jobRepo,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ListJobs lists jobs matching the filters, one page at a time.
func (s *JobServiceImpl) ListJobs(ctx context.Context, filters primary.JobFilters, page primary.PageRequest) (*primary.JobPage, error) {
	if filters.Status != "" && !job.Status(filters.Status).Valid() {
		return nil, errs.NewFieldError("status", fmt.Sprintf("invalid status %q (must be active or archived)", filters.Status))
	}
	switch filters.Sort {
	case "", primary.SortByOrder, primary.SortByTitle, primary.SortByCreatedAt:
	default:
		return nil, errs.NewFieldError("sort", fmt.Sprintf("invalid sort %q (must be order, title or createdAt)", filters.Sort))
	}

	page = page.Normalize(primary.DefaultJobPageSize)
	records, total, err := s.jobRepo.List(ctx, secondary.JobFilters{
		Search: strings.TrimSpace(filters.Search),
		Status: filters.Status,
		Sort:   filters.Sort,
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*primary.Job, len(records))
	for i, r := range records {
		jobs[i] = s.recordToJob(r)
	}
	return &primary.JobPage{Data: jobs, Pagination: primary.NewPagination(page, total)}, nil
}

// CreateJob creates a job at the bottom of the board.
func (s *JobServiceImpl) CreateJob(ctx context.Context, req primary.CreateJobRequest) (*primary.Job, error) {
	title := strings.TrimSpace(req.Title)
	slug := job.Slugify(title)

	slugExists, err := s.slugOwner(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Guard check
	guardCtx := job.CreateJobContext{Title: title, SlugExists: slugExists != ""}
	if result := job.CanCreateJob(guardCtx); !result.Allowed {
		if guardCtx.SlugExists {
			return nil, errs.NewDuplicateSlugError(slug)
		}
		return nil, errs.NewFieldError(result.Field, result.Reason)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextID, err := s.jobRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate job ID: %w", err)
	}

	now := s.now()
	record := &secondary.JobRecord{
		ID:        nextID,
		Title:     title,
		Slug:      slug,
		Status:    string(job.InitialStatus()),
		Tags:      job.NormalizeTags(req.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.jobRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	metrics.IncreaseJobsCreated()
	zap.S().Named("jobs").Debugw("job created", "id", record.ID, "order", record.Order)

	return s.recordToJob(record), nil
}

// GetJob retrieves a job by ID.
func (s *JobServiceImpl) GetJob(ctx context.Context, jobID string) (*primary.Job, error) {
	record, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.recordToJob(record), nil
}

// UpdateJob applies a partial update. Applying the same patch twice leaves
// the job as the first application did.
func (s *JobServiceImpl) UpdateJob(ctx context.Context, jobID string, patch primary.JobPatch) (*primary.Job, error) {
	record, exists, err := s.lookup(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var title *string
	slugTaken := false
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		title = &t
		if exists {
			owner, err := s.slugOwner(ctx, job.Slugify(t))
			if err != nil {
				return nil, err
			}
			slugTaken = owner != "" && owner != jobID
		}
	}

	// Guard check
	guardCtx := job.UpdateJobContext{
		JobID:      jobID,
		JobExists:  exists,
		Title:      title,
		Status:     patch.Status,
		SlugTaken:  slugTaken,
		OrderPatch: patch.Order != nil,
	}
	if result := job.CanUpdateJob(guardCtx); !result.Allowed {
		switch {
		case !exists:
			return nil, errs.NewNotFoundError("job", jobID)
		case slugTaken && result.Field == "title":
			return nil, errs.NewDuplicateSlugError(job.Slugify(*title))
		default:
			return nil, errs.NewFieldError(result.Field, result.Reason)
		}
	}

	next := *record
	if title != nil {
		next.Title = *title
		next.Slug = job.Slugify(*title)
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.Tags != nil {
		next.Tags = job.NormalizeTags(*patch.Tags)
	}

	if sameJob(record, &next) {
		return s.recordToJob(record), nil
	}

	next.UpdatedAt = s.now()
	if err := s.jobRepo.Update(ctx, &next); err != nil {
		return nil, err
	}
	return s.recordToJob(&next), nil
}

// ReorderJob moves a job to a new rank and renumbers the board densely.
func (s *JobServiceImpl) ReorderJob(ctx context.Context, req primary.ReorderJobRequest) error {
	_, exists, err := s.lookup(ctx, req.JobID)
	if err != nil {
		return err
	}

	// Guard check
	if result := job.CanReorderJob(job.ReorderJobContext{JobID: req.JobID, JobExists: exists}); !result.Allowed {
		return errs.NewNotFoundError("job", req.JobID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moved := false
	err = s.jobRepo.Reorder(ctx, func(records []*secondary.JobRecord) ([]*secondary.JobRecord, error) {
		jobs := make([]job.Job, len(records))
		for i, r := range records {
			jobs[i] = job.Job{ID: r.ID, Order: r.Order}
		}
		if !job.IsDense(jobs) {
			zap.S().Named("jobs").Warnw("board ranks not dense, renumbering", "jobs", len(jobs))
			jobs = job.Renumber(jobs)
		}

		next, err := job.Reorder(jobs, req.JobID, req.FromOrder, req.ToOrder)
		if err != nil {
			return nil, err
		}

		out := make([]*secondary.JobRecord, len(next))
		for i, j := range next {
			out[i] = &secondary.JobRecord{ID: j.ID, Order: j.Order}
			if records[i].ID != j.ID {
				moved = true
			}
		}
		return out, nil
	})
	if err != nil {
		return err
	}

	if moved {
		metrics.IncreaseJobsReordered()
	}
	zap.S().Named("jobs").Debugw("job reordered", "id", req.JobID, "from", req.FromOrder, "to", req.ToOrder, "moved", moved)
	return nil
}

// lookup fetches a job, reporting absence as exists=false instead of an error.
func (s *JobServiceImpl) lookup(ctx context.Context, jobID string) (*secondary.JobRecord, bool, error) {
	record, err := s.jobRepo.GetByID(ctx, jobID)
	if errs.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// slugOwner returns the ID of the job holding slug, or "" if it is free.
func (s *JobServiceImpl) slugOwner(ctx context.Context, slug string) (string, error) {
	if slug == "" {
		return "", nil
	}
	record, err := s.jobRepo.GetBySlug(ctx, slug)
	if errs.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	return record.ID, nil
}

func sameJob(a, b *secondary.JobRecord) bool {
	if a.Title != b.Title || a.Slug != b.Slug || a.Status != b.Status || len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}

// Helper methods

func (s *JobServiceImpl) recordToJob(r *secondary.JobRecord) *primary.Job {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &primary.Job{
		ID:        r.ID,
		Title:     r.Title,
		Slug:      r.Slug,
		Status:    r.Status,
		Tags:      tags,
		Order:     r.Order,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure JobServiceImpl implements the interface
var _ primary.JobService = (*JobServiceImpl)(nil)
