package primary

import (
	"context"
	"time"

	"github.com/example/talentflow/internal/core/assessment"
)

// AssessmentService defines the primary port for assessment operations.
type AssessmentService interface {
	// GetAssessment returns the job's assessment, or nil if it has none.
	GetAssessment(ctx context.Context, jobID string) (*assessment.Assessment, error)

	// SaveAssessment creates or replaces the job's assessment.
	// Fails with CyclicConditionalError if conditionals form a loop.
	SaveAssessment(ctx context.Context, req SaveAssessmentRequest) (*assessment.Assessment, error)

	// PreviewAssessment evaluates responses without storing anything.
	PreviewAssessment(ctx context.Context, jobID string, responses assessment.Responses) (*AssessmentPreview, error)

	// SubmitAssessment validates and stores a candidate's responses.
	// Fails with NotFoundError if the job has no assessment.
	SubmitAssessment(ctx context.Context, req SubmitAssessmentRequest) (*SubmitAssessmentResponse, error)

	// ListAssessments returns every assessment, most recently updated first.
	ListAssessments(ctx context.Context) ([]*assessment.Assessment, error)

	// ListSubmissions returns the submissions to the job's assessment, oldest first.
	// Fails with NotFoundError if the job has no assessment.
	ListSubmissions(ctx context.Context, jobID string) ([]*Submission, error)
}

// SaveAssessmentRequest contains parameters for saving an assessment.
type SaveAssessmentRequest struct {
	JobID    string               `json:"-"`
	Title    string               `json:"title" validate:"required"`
	Sections []assessment.Section `json:"sections"`
}

// AssessmentPreview is the runtime view of a partially answered assessment.
type AssessmentPreview struct {
	Visible []string          `json:"visible"`
	Errors  map[string]string `json:"errors"`
	Valid   bool              `json:"valid"`
}

// SubmitAssessmentRequest contains parameters for a submission.
type SubmitAssessmentRequest struct {
	JobID       string               `json:"-"`
	CandidateID string               `json:"candidateId" validate:"required"`
	Responses   assessment.Responses `json:"responses"`
}

// SubmitAssessmentResponse contains the result of a submission.
type SubmitAssessmentResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// Submission is a stored set of responses. Only answers to questions that
// were visible at submit time are kept.
type Submission struct {
	ID           string               `json:"id"`
	AssessmentID string               `json:"assessmentId"`
	CandidateID  string               `json:"candidateId"`
	Responses    assessment.Responses `json:"responses"`
	SubmittedAt  time.Time            `json:"submittedAt"`
}
