package primary

import (
	"context"
	"time"
)

// JobService defines the primary port for job operations.
type JobService interface {
	// ListJobs lists jobs matching the filters, one page at a time.
	ListJobs(ctx context.Context, filters JobFilters, page PageRequest) (*JobPage, error)

	// CreateJob creates a job at the bottom of the board.
	// Fails with DuplicateSlugError if the derived slug is taken.
	CreateJob(ctx context.Context, req CreateJobRequest) (*Job, error)

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*Job, error)

	// UpdateJob applies a partial update. Order is not patchable.
	UpdateJob(ctx context.Context, jobID string, patch JobPatch) (*Job, error)

	// ReorderJob moves a job to a new rank and renumbers the board.
	ReorderJob(ctx context.Context, req ReorderJobRequest) error
}

// CreateJobRequest contains parameters for creating a job.
type CreateJobRequest struct {
	Title string   `json:"title" validate:"required"`
	Tags  []string `json:"tags"`
}

// JobPatch contains the fields of a job update. Nil fields are left alone.
// Order is carried only so it can be rejected.
type JobPatch struct {
	Title  *string   `json:"title,omitempty"`
	Status *string   `json:"status,omitempty" validate:"omitempty,oneof=active archived"`
	Tags   *[]string `json:"tags,omitempty"`
	Order  *int      `json:"order,omitempty"`
}

// ReorderJobRequest contains parameters for moving a job.
type ReorderJobRequest struct {
	JobID     string `json:"-"`
	FromOrder int    `json:"fromOrder"`
	ToOrder   int    `json:"toOrder"`
}

// JobFilters contains filter options for listing jobs.
type JobFilters struct {
	Search string // title or tag, case-insensitive
	Status string
	Sort   string // "order" (default), "title" or "createdAt"
}

// Job sort keys.
const (
	SortByOrder     = "order"
	SortByTitle     = "title"
	SortByCreatedAt = "createdAt"
)

// Job represents a job entity at the port boundary.
type Job struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	Tags      []string  `json:"tags"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobPage is one page of a job listing.
type JobPage struct {
	Data       []*Job     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
