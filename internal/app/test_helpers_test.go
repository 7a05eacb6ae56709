package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/ports/secondary"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// sequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// ============================================================================
// mockJobRepository
// ============================================================================

var _ secondary.JobRepository = (*mockJobRepository)(nil)

// mockJobRepository implements secondary.JobRepository in memory.
type mockJobRepository struct {
	jobs       map[string]*secondary.JobRecord
	nextID     int
	createErr  error
	listErr    error
	reorderErr error
	lastFilter secondary.JobFilters
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{jobs: make(map[string]*secondary.JobRecord)}
}

func (m *mockJobRepository) add(id, title string, order int) *secondary.JobRecord {
	r := &secondary.JobRecord{ID: id, Title: title, Slug: strings.ToLower(strings.ReplaceAll(title, " ", "-")), Status: "active", Order: order}
	m.jobs[id] = r
	return r
}

func (m *mockJobRepository) Create(ctx context.Context, job *secondary.JobRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, j := range m.jobs {
		if j.Slug == job.Slug {
			return errs.NewDuplicateSlugError(job.Slug)
		}
	}
	job.Order = len(m.jobs) + 1
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *mockJobRepository) GetByID(ctx context.Context, id string) (*secondary.JobRecord, error) {
	if j, ok := m.jobs[id]; ok {
		copied := *j
		return &copied, nil
	}
	return nil, errs.NewNotFoundError("job", id)
}

func (m *mockJobRepository) GetBySlug(ctx context.Context, slug string) (*secondary.JobRecord, error) {
	for _, j := range m.jobs {
		if j.Slug == slug {
			copied := *j
			return &copied, nil
		}
	}
	return nil, errs.NewNotFoundError("job", slug)
}

func (m *mockJobRepository) Update(ctx context.Context, job *secondary.JobRecord) error {
	existing, ok := m.jobs[job.ID]
	if !ok {
		return errs.NewNotFoundError("job", job.ID)
	}
	copied := *job
	copied.Order = existing.Order
	m.jobs[job.ID] = &copied
	return nil
}

func (m *mockJobRepository) ordered() []*secondary.JobRecord {
	out := make([]*secondary.JobRecord, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Order != out[k].Order {
			return out[i].Order < out[k].Order
		}
		return out[i].ID < out[k].ID
	})
	return out
}

func (m *mockJobRepository) List(ctx context.Context, filters secondary.JobFilters) ([]*secondary.JobRecord, int, error) {
	m.lastFilter = filters
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	all := m.ordered()
	total := len(all)
	start := min(filters.Offset, total)
	end := total
	if filters.Limit > 0 {
		end = min(start+filters.Limit, total)
	}
	return all[start:end], total, nil
}

func (m *mockJobRepository) Reorder(ctx context.Context, fn func([]*secondary.JobRecord) ([]*secondary.JobRecord, error)) error {
	if m.reorderErr != nil {
		return m.reorderErr
	}
	current := m.ordered()
	in := make([]*secondary.JobRecord, len(current))
	for i, j := range current {
		copied := *j
		in[i] = &copied
	}
	next, err := fn(in)
	if err != nil {
		return err
	}
	for _, j := range next {
		m.jobs[j.ID].Order = j.Order
	}
	return nil
}

func (m *mockJobRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("JOB-%03d", m.nextID), nil
}

// orderOf returns "ID:order" pairs in board order.
func (m *mockJobRepository) orderOf() string {
	var parts []string
	for _, j := range m.ordered() {
		parts = append(parts, fmt.Sprintf("%s:%d", j.ID, j.Order))
	}
	return strings.Join(parts, " ")
}

// ============================================================================
// mockCandidateRepository / mockTimelineRepository
// ============================================================================

var (
	_ secondary.CandidateRepository = (*mockCandidateRepository)(nil)
	_ secondary.TimelineRepository  = (*mockTimelineRepository)(nil)
)

// mockTimelineRepository implements secondary.TimelineRepository in memory.
type mockTimelineRepository struct {
	entries []*secondary.TimelineRecord
}

func (m *mockTimelineRepository) append(entry *secondary.TimelineRecord) {
	copied := *entry
	m.entries = append(m.entries, &copied)
}

func (m *mockTimelineRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*secondary.TimelineRecord, error) {
	out := []*secondary.TimelineRecord{}
	for _, e := range m.entries {
		if e.CandidateID == candidateID {
			out = append(out, e)
		}
	}
	return out, nil
}

// mockCandidateRepository implements secondary.CandidateRepository in memory.
// Timeline writes go to the shared timeline mock, as the real repository
// writes both tables in one transaction.
type mockCandidateRepository struct {
	candidates map[string]*secondary.CandidateRecord
	timeline   *mockTimelineRepository
	nextID     int
	updateErr  error
	lastFilter secondary.CandidateFilters
}

func newMockCandidateRepository(timeline *mockTimelineRepository) *mockCandidateRepository {
	return &mockCandidateRepository{
		candidates: make(map[string]*secondary.CandidateRecord),
		timeline:   timeline,
	}
}

func (m *mockCandidateRepository) add(id, jobID, stage string) *secondary.CandidateRecord {
	r := &secondary.CandidateRecord{ID: id, Name: "Test " + id, Email: strings.ToLower(id) + "@example.com", Stage: stage, JobID: jobID}
	m.candidates[id] = r
	return r
}

func (m *mockCandidateRepository) Create(ctx context.Context, candidate *secondary.CandidateRecord, first *secondary.TimelineRecord) error {
	m.nextID++
	candidate.ID = fmt.Sprintf("CAND-%03d", m.nextID)
	copied := *candidate
	m.candidates[candidate.ID] = &copied
	if first != nil {
		first.CandidateID = candidate.ID
		m.timeline.append(first)
	}
	return nil
}

func (m *mockCandidateRepository) GetByID(ctx context.Context, id string) (*secondary.CandidateRecord, error) {
	if c, ok := m.candidates[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, errs.NewNotFoundError("candidate", id)
}

func (m *mockCandidateRepository) Update(ctx context.Context, candidate *secondary.CandidateRecord, entry *secondary.TimelineRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.candidates[candidate.ID]; !ok {
		return errs.NewNotFoundError("candidate", candidate.ID)
	}
	copied := *candidate
	m.candidates[candidate.ID] = &copied
	if entry != nil {
		m.timeline.append(entry)
	}
	return nil
}

func (m *mockCandidateRepository) List(ctx context.Context, filters secondary.CandidateFilters) ([]*secondary.CandidateRecord, int, error) {
	m.lastFilter = filters
	var out []*secondary.CandidateRecord
	for _, c := range m.candidates {
		if filters.Stage != "" && c.Stage != filters.Stage {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, len(out), nil
}

// ============================================================================
// mockAssessmentRepository / mockSubmissionRepository
// ============================================================================

var (
	_ secondary.AssessmentRepository = (*mockAssessmentRepository)(nil)
	_ secondary.SubmissionRepository = (*mockSubmissionRepository)(nil)
)

// mockAssessmentRepository implements secondary.AssessmentRepository in memory.
type mockAssessmentRepository struct {
	byJob  map[string]*secondary.AssessmentRecord
	nextID int
}

func newMockAssessmentRepository() *mockAssessmentRepository {
	return &mockAssessmentRepository{byJob: make(map[string]*secondary.AssessmentRecord)}
}

func (m *mockAssessmentRepository) GetByJobID(ctx context.Context, jobID string) (*secondary.AssessmentRecord, error) {
	if a, ok := m.byJob[jobID]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, errs.NewNotFoundError("assessment for job", jobID)
}

func (m *mockAssessmentRepository) Upsert(ctx context.Context, assessment *secondary.AssessmentRecord) error {
	if existing, ok := m.byJob[assessment.JobID]; ok {
		assessment.ID = existing.ID
		assessment.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		assessment.ID = fmt.Sprintf("ASMT-%03d", m.nextID)
	}
	copied := *assessment
	m.byJob[assessment.JobID] = &copied
	return nil
}

func (m *mockAssessmentRepository) List(ctx context.Context) ([]*secondary.AssessmentRecord, error) {
	var out []*secondary.AssessmentRecord
	for _, a := range m.byJob {
		out = append(out, a)
	}
	return out, nil
}

// mockSubmissionRepository implements secondary.SubmissionRepository in memory.
type mockSubmissionRepository struct {
	submissions []*secondary.SubmissionRecord
}

func (m *mockSubmissionRepository) Create(ctx context.Context, submission *secondary.SubmissionRecord) error {
	copied := *submission
	m.submissions = append(m.submissions, &copied)
	return nil
}

func (m *mockSubmissionRepository) ListByAssessment(ctx context.Context, assessmentID string) ([]*secondary.SubmissionRecord, error) {
	var out []*secondary.SubmissionRecord
	for _, s := range m.submissions {
		if s.AssessmentID == assessmentID {
			out = append(out, s)
		}
	}
	return out, nil
}
