package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/talentflow/internal/core/assessment"
	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/metrics"
	"github.com/example/talentflow/internal/ports/primary"
	"github.com/example/talentflow/internal/ports/secondary"
)

// AssessmentServiceImpl implements the AssessmentService interface.
type AssessmentServiceImpl struct {
	assessmentRepo secondary.AssessmentRepository
	submissionRepo secondary.SubmissionRepository
	jobRepo        secondary.JobRepository
	candidateRepo  secondary.CandidateRepository
	now            func() time.Time
	newID          func() string
}

// NewAssessmentService creates a new AssessmentService with injected dependencies.
func NewAssessmentService(
	assessmentRepo secondary.AssessmentRepository,
	submissionRepo secondary.SubmissionRepository,
	jobRepo secondary.JobRepository,
	candidateRepo secondary.CandidateRepository,
) *AssessmentServiceImpl {
	return &AssessmentServiceImpl{
		assessmentRepo: assessmentRepo,
		submissionRepo: submissionRepo,
		jobRepo:        jobRepo,
		candidateRepo:  candidateRepo,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          func() string { return uuid.New().String() },
	}
}

// GetAssessment returns the job's assessment, or nil if it has none.
func (s *AssessmentServiceImpl) GetAssessment(ctx context.Context, jobID string) (*assessment.Assessment, error) {
	record, err := s.assessmentRepo.GetByJobID(ctx, jobID)
	if errs.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recordToAssessment(record)
}

// SaveAssessment creates or replaces the job's assessment. The definition is
// checked as a whole, cycles included, before anything is written.
func (s *AssessmentServiceImpl) SaveAssessment(ctx context.Context, req primary.SaveAssessmentRequest) (*assessment.Assessment, error) {
	jobExists := true
	if _, err := s.jobRepo.GetByID(ctx, req.JobID); err != nil {
		if !errs.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check job: %w", err)
		}
		jobExists = false
	}

	// Guard check
	if result := assessment.CanSaveAssessment(assessment.SaveAssessmentContext{JobID: req.JobID, JobExists: jobExists}); !result.Allowed {
		return nil, errs.NewNotFoundError("job", req.JobID)
	}

	def := assessment.Assessment{
		JobID:    req.JobID,
		Title:    strings.TrimSpace(req.Title),
		Sections: req.Sections,
	}
	if def.Sections == nil {
		def.Sections = []assessment.Section{}
	}
	if err := assessment.CheckDefinition(def); err != nil {
		return nil, err
	}

	sections, err := json.Marshal(def.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sections: %w", err)
	}

	now := s.now()
	record := &secondary.AssessmentRecord{
		JobID:     def.JobID,
		Title:     def.Title,
		Sections:  string(sections),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.assessmentRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	metrics.IncreaseAssessmentsSaved()
	zap.S().Named("assessments").Debugw("assessment saved", "id", record.ID, "job", record.JobID, "questions", len(def.Questions()))

	def.ID = record.ID
	def.CreatedAt = record.CreatedAt
	def.UpdatedAt = record.UpdatedAt
	return &def, nil
}

// PreviewAssessment evaluates responses against the job's assessment
// without storing anything.
func (s *AssessmentServiceImpl) PreviewAssessment(ctx context.Context, jobID string, responses assessment.Responses) (*primary.AssessmentPreview, error) {
	a, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}

	failures := assessment.ValidateSubmission(*a, responses)
	return &primary.AssessmentPreview{
		Visible: assessment.VisibleIDs(*a, responses),
		Errors:  failures,
		Valid:   len(failures) == 0,
	}, nil
}

// SubmitAssessment validates and stores a candidate's responses. Only
// answers to questions visible at submit time are kept.
func (s *AssessmentServiceImpl) SubmitAssessment(ctx context.Context, req primary.SubmitAssessmentRequest) (*primary.SubmitAssessmentResponse, error) {
	a, err := s.load(ctx, req.JobID)
	if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}

	candidateExists := true
	if _, err := s.candidateRepo.GetByID(ctx, req.CandidateID); err != nil {
		if !errs.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check candidate: %w", err)
		}
		candidateExists = false
	}

	// Guard check
	result := assessment.CanSubmit(assessment.SubmitContext{
		JobID:            req.JobID,
		AssessmentExists: a != nil,
		CandidateID:      req.CandidateID,
		CandidateExists:  candidateExists,
	})
	if !result.Allowed {
		if a == nil {
			return nil, errs.NewNotFoundError("assessment for job", req.JobID)
		}
		return nil, errs.NewNotFoundError("candidate", req.CandidateID)
	}

	if failures := assessment.ValidateSubmission(*a, req.Responses); len(failures) > 0 {
		metrics.IncreaseSubmissions("rejected")
		return nil, errs.NewValidationError(failures)
	}

	stored, err := json.Marshal(assessment.VisibleResponses(*a, req.Responses))
	if err != nil {
		return nil, fmt.Errorf("failed to encode responses: %w", err)
	}

	record := &secondary.SubmissionRecord{
		ID:           s.newID(),
		AssessmentID: a.ID,
		CandidateID:  req.CandidateID,
		Responses:    string(stored),
		SubmittedAt:  s.now(),
	}
	if err := s.submissionRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	metrics.IncreaseSubmissions("accepted")
	return &primary.SubmitAssessmentResponse{ID: record.ID, Success: true}, nil
}

// ListAssessments returns every assessment, most recently updated first.
func (s *AssessmentServiceImpl) ListAssessments(ctx context.Context) ([]*assessment.Assessment, error) {
	records, err := s.assessmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	assessments := make([]*assessment.Assessment, 0, len(records))
	for _, r := range records {
		a, err := recordToAssessment(r)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

// ListSubmissions returns the submissions to the job's assessment, oldest first.
func (s *AssessmentServiceImpl) ListSubmissions(ctx context.Context, jobID string) ([]*primary.Submission, error) {
	a, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}

	records, err := s.submissionRepo.ListByAssessment(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]*primary.Submission, 0, len(records))
	for _, r := range records {
		sub := &primary.Submission{
			ID:           r.ID,
			AssessmentID: r.AssessmentID,
			CandidateID:  r.CandidateID,
			SubmittedAt:  r.SubmittedAt,
		}
		if err := json.Unmarshal([]byte(r.Responses), &sub.Responses); err != nil {
			return nil, fmt.Errorf("failed to decode responses of %s: %w", r.ID, err)
		}
		submissions = append(submissions, sub)
	}
	return submissions, nil
}

// load returns the job's assessment or a NotFoundError.
func (s *AssessmentServiceImpl) load(ctx context.Context, jobID string) (*assessment.Assessment, error) {
	record, err := s.assessmentRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return recordToAssessment(record)
}

// Helper methods

func recordToAssessment(r *secondary.AssessmentRecord) (*assessment.Assessment, error) {
	a := &assessment.Assessment{
		ID:        r.ID,
		JobID:     r.JobID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(r.Sections), &a.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections of %s: %w", r.ID, err)
	}
	if a.Sections == nil {
		a.Sections = []assessment.Section{}
	}
	return a, nil
}

// Ensure AssessmentServiceImpl implements the interface
var _ primary.AssessmentService = (*AssessmentServiceImpl)(nil)
