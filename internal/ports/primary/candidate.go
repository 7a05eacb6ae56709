package primary

import (
	"context"
	"time"
)

// CandidateService defines the primary port for candidate operations.
type CandidateService interface {
	// ListCandidates lists candidates matching the filters, one page at a time.
	ListCandidates(ctx context.Context, filters CandidateFilters, page PageRequest) (*CandidatePage, error)

	// CreateCandidate creates a candidate in the applied stage and records
	// the first timeline entry.
	CreateCandidate(ctx context.Context, req CreateCandidateRequest) (*Candidate, error)

	// GetCandidate retrieves a candidate by ID.
	GetCandidate(ctx context.Context, candidateID string) (*Candidate, error)

	// UpdateCandidate applies a partial update. A stage change or a note
	// appends to the timeline in the same transaction.
	UpdateCandidate(ctx context.Context, candidateID string, patch CandidatePatch) (*Candidate, error)

	// GetCandidateTimeline returns the candidate's history, oldest first.
	GetCandidateTimeline(ctx context.Context, candidateID string) ([]*TimelineEntry, error)
}

// CreateCandidateRequest contains parameters for creating a candidate.
type CreateCandidateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	JobID string `json:"jobId" validate:"required"`
}

// CandidatePatch contains the fields of a candidate update.
// Nil fields are left alone.
type CandidatePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Stage *string `json:"stage,omitempty" validate:"omitempty,stage"`
	Notes *string `json:"notes,omitempty"`
}

// CandidateFilters contains filter options for listing candidates.
type CandidateFilters struct {
	Search string // name or email, case-insensitive
	Stage  string
	JobID  string
}

// Candidate represents a candidate entity at the port boundary.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Stage     string    `json:"stage"`
	JobID     string    `json:"jobId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CandidatePage is one page of a candidate listing.
type CandidatePage struct {
	Data       []*Candidate `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// TimelineEntry represents one record of a candidate's history.
type TimelineEntry struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Kind        string    `json:"kind"`
	Stage       string    `json:"stage"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}
