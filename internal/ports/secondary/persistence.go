// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// JobRepository defines the secondary port for job persistence.
type JobRepository interface {
	// Create persists a new job at the bottom of the board. The rank is
	// computed in the same statement and written back to job.Order.
	Create(ctx context.Context, job *JobRecord) error

	// GetByID retrieves a job by its ID.
	GetByID(ctx context.Context, id string) (*JobRecord, error)

	// GetBySlug retrieves a job by its slug.
	GetBySlug(ctx context.Context, slug string) (*JobRecord, error)

	// Update writes title, slug, status, tags and updated_at. Order is untouched.
	Update(ctx context.Context, job *JobRecord) error

	// List retrieves one page of jobs matching the filters plus the total match count.
	List(ctx context.Context, filters JobFilters) ([]*JobRecord, int, error)

	// Reorder loads every job by rank inside one write transaction, hands
	// them to fn, and writes back the ranks fn changed.
	Reorder(ctx context.Context, fn func(jobs []*JobRecord) ([]*JobRecord, error)) error

	// GetNextID returns the next available job ID.
	GetNextID(ctx context.Context) (string, error)
}

// JobRecord represents a job as stored in persistence.
type JobRecord struct {
	ID        string
	Title     string
	Slug      string
	Status    string
	Tags      []string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobFilters contains filter options for querying jobs.
type JobFilters struct {
	Search string
	Status string
	Sort   string // "order", "title" or "createdAt"
	Limit  int
	Offset int
}

// CandidateRepository defines the secondary port for candidate persistence.
type CandidateRepository interface {
	// Create persists a new candidate together with its first timeline entry.
	// The ID is allocated on insert and written back to candidate and first.
	Create(ctx context.Context, candidate *CandidateRecord, first *TimelineRecord) error

	// GetByID retrieves a candidate by its ID.
	GetByID(ctx context.Context, id string) (*CandidateRecord, error)

	// Update writes the candidate and, when entry is not nil, appends it to
	// the timeline in the same transaction.
	Update(ctx context.Context, candidate *CandidateRecord, entry *TimelineRecord) error

	// List retrieves one page of candidates matching the filters plus the total match count.
	List(ctx context.Context, filters CandidateFilters) ([]*CandidateRecord, int, error)
}

// CandidateRecord represents a candidate as stored in persistence.
type CandidateRecord struct {
	ID        string
	Name      string
	Email     string
	Stage     string
	JobID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CandidateFilters contains filter options for querying candidates.
type CandidateFilters struct {
	Search string
	Stage  string
	JobID  string
	Limit  int
	Offset int
}

// TimelineRepository defines the secondary port for reading candidate
// history. Entries are appended only by CandidateRepository, in the same
// transaction as the candidate write.
type TimelineRepository interface {
	// ListByCandidate returns a candidate's entries by created_at, then insertion order.
	ListByCandidate(ctx context.Context, candidateID string) ([]*TimelineRecord, error)
}

// TimelineRecord represents a timeline entry as stored in persistence.
type TimelineRecord struct {
	ID          string
	CandidateID string
	Kind        string
	Stage       string
	Notes       string
	CreatedAt   time.Time
}

// AssessmentRepository defines the secondary port for assessment persistence.
type AssessmentRepository interface {
	// GetByJobID retrieves the assessment attached to a job.
	GetByJobID(ctx context.Context, jobID string) (*AssessmentRecord, error)

	// Upsert creates the job's assessment or replaces its title and sections.
	// A new assessment gets its ID on insert. ID and CreatedAt are written
	// back from the stored row.
	Upsert(ctx context.Context, assessment *AssessmentRecord) error

	// List retrieves every assessment, newest first.
	List(ctx context.Context) ([]*AssessmentRecord, error)
}

// AssessmentRecord represents an assessment as stored in persistence.
// Sections is the JSON encoding of the section list.
type AssessmentRecord struct {
	ID        string
	JobID     string
	Title     string
	Sections  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubmissionRepository defines the secondary port for submitted responses.
type SubmissionRepository interface {
	// Create persists a submission.
	Create(ctx context.Context, submission *SubmissionRecord) error

	// ListByAssessment retrieves submissions for an assessment, oldest first.
	ListByAssessment(ctx context.Context, assessmentID string) ([]*SubmissionRecord, error)
}

// SubmissionRecord represents submitted responses as stored in persistence.
// Responses is the JSON encoding of the answers keyed by question id.
type SubmissionRecord struct {
	ID           string
	AssessmentID string
	CandidateID  string
	Responses    string
	SubmittedAt  time.Time
}
