package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/talentflow/internal/core/candidate"
	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/metrics"
	"github.com/example/talentflow/internal/ports/primary"
	"github.com/example/talentflow/internal/ports/secondary"
)

// CandidateServiceImpl implements the CandidateService interface.
type CandidateServiceImpl struct {
	candidateRepo secondary.CandidateRepository
	timelineRepo  secondary.TimelineRepository
	jobRepo       secondary.JobRepository
	now           func() time.Time
	newID         func() string
}

// NewCandidateService creates a new CandidateService with injected dependencies.
func NewCandidateService(
	candidateRepo secondary.CandidateRepository,
	timelineRepo secondary.TimelineRepository,
	jobRepo secondary.JobRepository,
) *CandidateServiceImpl {
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		timelineRepo:  timelineRepo,
		jobRepo:       jobRepo,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         func() string { return uuid.New().String() },
	}
}

// ListCandidates lists candidates matching the filters, one page at a time.
func (s *CandidateServiceImpl) ListCandidates(ctx context.Context, filters primary.CandidateFilters, page primary.PageRequest) (*primary.CandidatePage, error) {
	stage := ""
	if filters.Stage != "" {
		st, err := candidate.ParseStage(filters.Stage)
		if err != nil {
			return nil, errs.NewFieldError("stage", err.Error())
		}
		stage = string(st)
	}

	page = page.Normalize(primary.DefaultCandidatePageSize)
	records, total, err := s.candidateRepo.List(ctx, secondary.CandidateFilters{
		Search: strings.TrimSpace(filters.Search),
		Stage:  stage,
		JobID:  filters.JobID,
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	candidates := make([]*primary.Candidate, len(records))
	for i, r := range records {
		candidates[i] = recordToCandidate(r)
	}
	return &primary.CandidatePage{Data: candidates, Pagination: primary.NewPagination(page, total)}, nil
}

// CreateCandidate creates a candidate in the applied stage together with
// the first timeline entry.
func (s *CandidateServiceImpl) CreateCandidate(ctx context.Context, req primary.CreateCandidateRequest) (*primary.Candidate, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	jobExists := false
	if req.JobID != "" {
		_, err := s.jobRepo.GetByID(ctx, req.JobID)
		switch {
		case err == nil:
			jobExists = true
		case !errs.IsNotFound(err):
			return nil, fmt.Errorf("failed to check job: %w", err)
		}
	}

	// Guard check
	result := candidate.CanCreateCandidate(candidate.CreateCandidateContext{
		Name:      name,
		Email:     email,
		JobID:     req.JobID,
		JobExists: jobExists,
	})
	if !result.Allowed {
		return nil, errs.NewFieldError(result.Field, result.Reason)
	}

	now := s.now()
	record := &secondary.CandidateRecord{
		Name:      name,
		Email:     email,
		Stage:     string(candidate.InitialStage()),
		JobID:     req.JobID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	first := candidate.OnCreated("", now)
	first.ID = s.newID()

	if err := s.candidateRepo.Create(ctx, record, entryToRecord(first)); err != nil {
		return nil, err
	}

	metrics.IncreaseTimelineEntries(string(first.Kind))
	return recordToCandidate(record), nil
}

// GetCandidate retrieves a candidate by ID.
func (s *CandidateServiceImpl) GetCandidate(ctx context.Context, candidateID string) (*primary.Candidate, error) {
	record, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return recordToCandidate(record), nil
}

// UpdateCandidate applies a partial update. A stage change or a note is
// written to the timeline in the same transaction as the candidate; a
// rejected update writes nothing.
func (s *CandidateServiceImpl) UpdateCandidate(ctx context.Context, candidateID string, patch primary.CandidatePatch) (*primary.Candidate, error) {
	record, err := s.candidateRepo.GetByID(ctx, candidateID)
	exists := err == nil
	if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}

	// Guard check
	result := candidate.CanUpdateCandidate(candidate.UpdateCandidateContext{
		CandidateID:     candidateID,
		CandidateExists: exists,
		Name:            patch.Name,
		Email:           patch.Email,
		Stage:           patch.Stage,
	})
	if !result.Allowed {
		if !exists {
			return nil, errs.NewNotFoundError("candidate", candidateID)
		}
		return nil, errs.NewFieldError(result.Field, result.Reason)
	}

	update := candidate.Update{Name: patch.Name, Email: patch.Email, Notes: patch.Notes}
	if patch.Stage != nil {
		st, _ := candidate.ParseStage(*patch.Stage)
		update.Stage = &st
	}

	next, entry := candidate.PlanUpdate(recordToCore(record), update, s.now())

	var entryRecord *secondary.TimelineRecord
	if entry != nil {
		entry.ID = s.newID()
		entryRecord = entryToRecord(*entry)
	}

	nextRecord := coreToRecord(next)
	if err := s.candidateRepo.Update(ctx, nextRecord, entryRecord); err != nil {
		return nil, err
	}

	if entry != nil {
		metrics.IncreaseTimelineEntries(string(entry.Kind))
		if entry.Kind == candidate.EventStageChange {
			metrics.IncreaseStageTransitions(string(entry.Stage))
			zap.S().Named("candidates").Debugw("stage changed", "id", candidateID, "from", record.Stage, "to", entry.Stage)
		}
	}

	return recordToCandidate(nextRecord), nil
}

// GetCandidateTimeline returns the candidate's history, oldest first.
func (s *CandidateServiceImpl) GetCandidateTimeline(ctx context.Context, candidateID string) ([]*primary.TimelineEntry, error) {
	if _, err := s.candidateRepo.GetByID(ctx, candidateID); err != nil {
		return nil, err
	}

	records, err := s.timelineRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}

	entries := make([]*primary.TimelineEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.TimelineEntry{
			ID:          r.ID,
			CandidateID: r.CandidateID,
			Kind:        r.Kind,
			Stage:       r.Stage,
			Notes:       r.Notes,
			CreatedAt:   r.CreatedAt,
		}
	}
	return entries, nil
}

// Helper methods

func recordToCandidate(r *secondary.CandidateRecord) *primary.Candidate {
	return &primary.Candidate{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Stage:     r.Stage,
		JobID:     r.JobID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func recordToCore(r *secondary.CandidateRecord) candidate.Candidate {
	return candidate.Candidate{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Stage:     candidate.Stage(r.Stage),
		JobID:     r.JobID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func coreToRecord(c candidate.Candidate) *secondary.CandidateRecord {
	return &secondary.CandidateRecord{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Stage:     string(c.Stage),
		JobID:     c.JobID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func entryToRecord(e candidate.TimelineEntry) *secondary.TimelineRecord {
	return &secondary.TimelineRecord{
		ID:          e.ID,
		CandidateID: e.CandidateID,
		Kind:        string(e.Kind),
		Stage:       string(e.Stage),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}

// Ensure CandidateServiceImpl implements the interface
var _ primary.CandidateService = (*CandidateServiceImpl)(nil)
