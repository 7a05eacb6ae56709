package cli

import (
	"context"
	"time"

	"github.com/fatih/color"

	"github.com/example/talentflow/internal/core/assessment"
	"github.com/example/talentflow/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

var created = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// mockJobService implements primary.JobService for testing
type mockJobService struct {
	listJobsFn   func(ctx context.Context, filters primary.JobFilters, page primary.PageRequest) (*primary.JobPage, error)
	getJobFn     func(ctx context.Context, jobID string) (*primary.Job, error)
	createJobFn  func(ctx context.Context, req primary.CreateJobRequest) (*primary.Job, error)
	updateJobFn  func(ctx context.Context, jobID string, patch primary.JobPatch) (*primary.Job, error)
	reorderJobFn func(ctx context.Context, req primary.ReorderJobRequest) error

	// Track calls for verification
	lastCreateReq  primary.CreateJobRequest
	lastPatch      primary.JobPatch
	lastReorderReq primary.ReorderJobRequest
}

func (m *mockJobService) ListJobs(ctx context.Context, filters primary.JobFilters, page primary.PageRequest) (*primary.JobPage, error) {
	if m.listJobsFn != nil {
		return m.listJobsFn(ctx, filters, page)
	}
	return &primary.JobPage{Data: []*primary.Job{}}, nil
}

func (m *mockJobService) GetJob(ctx context.Context, jobID string) (*primary.Job, error) {
	if m.getJobFn != nil {
		return m.getJobFn(ctx, jobID)
	}
	return &primary.Job{ID: jobID, Title: "Test Job", Slug: "test-job", Status: "active", Order: 2, CreatedAt: created}, nil
}

func (m *mockJobService) CreateJob(ctx context.Context, req primary.CreateJobRequest) (*primary.Job, error) {
	m.lastCreateReq = req
	if m.createJobFn != nil {
		return m.createJobFn(ctx, req)
	}
	return &primary.Job{ID: "JOB-001", Title: req.Title, Slug: "test-job", Status: "active", Tags: req.Tags, Order: 1}, nil
}

func (m *mockJobService) UpdateJob(ctx context.Context, jobID string, patch primary.JobPatch) (*primary.Job, error) {
	m.lastPatch = patch
	if m.updateJobFn != nil {
		return m.updateJobFn(ctx, jobID, patch)
	}
	job := &primary.Job{ID: jobID, Title: "Test Job", Status: "active"}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	return job, nil
}

func (m *mockJobService) ReorderJob(ctx context.Context, req primary.ReorderJobRequest) error {
	m.lastReorderReq = req
	if m.reorderJobFn != nil {
		return m.reorderJobFn(ctx, req)
	}
	return nil
}

// mockCandidateService implements primary.CandidateService for testing
type mockCandidateService struct {
	listFn     func(ctx context.Context, filters primary.CandidateFilters, page primary.PageRequest) (*primary.CandidatePage, error)
	updateFn   func(ctx context.Context, candidateID string, patch primary.CandidatePatch) (*primary.Candidate, error)
	timelineFn func(ctx context.Context, candidateID string) ([]*primary.TimelineEntry, error)

	lastCreateReq primary.CreateCandidateRequest
	lastPatch     primary.CandidatePatch
}

func (m *mockCandidateService) ListCandidates(ctx context.Context, filters primary.CandidateFilters, page primary.PageRequest) (*primary.CandidatePage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters, page)
	}
	return &primary.CandidatePage{Data: []*primary.Candidate{}}, nil
}

func (m *mockCandidateService) CreateCandidate(ctx context.Context, req primary.CreateCandidateRequest) (*primary.Candidate, error) {
	m.lastCreateReq = req
	return &primary.Candidate{ID: "CAND-001", Name: req.Name, Email: req.Email, JobID: req.JobID, Stage: "applied"}, nil
}

func (m *mockCandidateService) GetCandidate(ctx context.Context, candidateID string) (*primary.Candidate, error) {
	return &primary.Candidate{ID: candidateID, Name: "Ada Lovelace", Email: "ada@example.com", JobID: "JOB-001", Stage: "screen"}, nil
}

func (m *mockCandidateService) UpdateCandidate(ctx context.Context, candidateID string, patch primary.CandidatePatch) (*primary.Candidate, error) {
	m.lastPatch = patch
	if m.updateFn != nil {
		return m.updateFn(ctx, candidateID, patch)
	}
	c := &primary.Candidate{ID: candidateID, Stage: "applied"}
	if patch.Stage != nil {
		c.Stage = *patch.Stage
	}
	return c, nil
}

func (m *mockCandidateService) GetCandidateTimeline(ctx context.Context, candidateID string) ([]*primary.TimelineEntry, error) {
	if m.timelineFn != nil {
		return m.timelineFn(ctx, candidateID)
	}
	return []*primary.TimelineEntry{
		{ID: "t1", CandidateID: candidateID, Kind: "stage_change", Stage: "applied", Notes: "Applied to job", CreatedAt: created},
		{ID: "t2", CandidateID: candidateID, Kind: "stage_change", Stage: "screen", Notes: "Moved to screen stage", CreatedAt: created.Add(time.Hour)},
	}, nil
}

// mockAssessmentService implements primary.AssessmentService for testing
type mockAssessmentService struct {
	assessment  *assessment.Assessment
	preview     *primary.AssessmentPreview
	submitErr   error
	list        []*assessment.Assessment
	submissions []*primary.Submission
	listSubsErr error

	lastSaveReq   primary.SaveAssessmentRequest
	lastSubmitReq primary.SubmitAssessmentRequest
}

func (m *mockAssessmentService) GetAssessment(ctx context.Context, jobID string) (*assessment.Assessment, error) {
	return m.assessment, nil
}

func (m *mockAssessmentService) SaveAssessment(ctx context.Context, req primary.SaveAssessmentRequest) (*assessment.Assessment, error) {
	m.lastSaveReq = req
	return &assessment.Assessment{ID: "ASMT-001", JobID: req.JobID, Title: req.Title, Sections: req.Sections}, nil
}

func (m *mockAssessmentService) PreviewAssessment(ctx context.Context, jobID string, responses assessment.Responses) (*primary.AssessmentPreview, error) {
	return m.preview, nil
}

func (m *mockAssessmentService) SubmitAssessment(ctx context.Context, req primary.SubmitAssessmentRequest) (*primary.SubmitAssessmentResponse, error) {
	m.lastSubmitReq = req
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return &primary.SubmitAssessmentResponse{ID: "sub-1", Success: true}, nil
}

func (m *mockAssessmentService) ListAssessments(ctx context.Context) ([]*assessment.Assessment, error) {
	return m.list, nil
}

func (m *mockAssessmentService) ListSubmissions(ctx context.Context, jobID string) ([]*primary.Submission, error) {
	if m.listSubsErr != nil {
		return nil, m.listSubsErr
	}
	return m.submissions, nil
}
