package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/ports/primary"
)

func TestCandidateAdapter_List(t *testing.T) {
	var gotPage primary.PageRequest
	mock := &mockCandidateService{
		listFn: func(ctx context.Context, filters primary.CandidateFilters, page primary.PageRequest) (*primary.CandidatePage, error) {
			gotPage = page
			return &primary.CandidatePage{
				Data: []*primary.Candidate{
					{ID: "CAND-001", Name: "Ada Lovelace", Email: "ada@example.com", JobID: "JOB-001", Stage: "tech"},
				},
				Pagination: primary.Pagination{Page: 2, PageSize: 20, Total: 21, TotalPages: 2},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewCandidateAdapter(mock, &buf)

	if _, err := adapter.List(context.Background(), primary.CandidateFilters{}, primary.PageRequest{Page: 2}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPage.Page != 2 {
		t.Errorf("expected page 2, got %d", gotPage.Page)
	}
	out := buf.String()
	for _, want := range []string{"CAND-001", "ada@example.com", "tech", "Page 2 of 2 (21 candidates)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCandidateAdapter_List_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCandidateAdapter(&mockCandidateService{}, &buf)

	if _, err := adapter.List(context.Background(), primary.CandidateFilters{Stage: "hired"}, primary.PageRequest{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No candidates found.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestCandidateAdapter_ShowIncludesTimeline(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCandidateAdapter(&mockCandidateService{}, &buf)

	if _, err := adapter.Show(context.Background(), "CAND-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Candidate: CAND-001", "Ada Lovelace", "Timeline:", "Applied to job", "Moved to screen stage"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "Applied to job") > strings.Index(out, "Moved to screen stage") {
		t.Error("expected timeline oldest first")
	}
}

func TestCandidateAdapter_Create(t *testing.T) {
	mock := &mockCandidateService{}
	var buf bytes.Buffer
	adapter := NewCandidateAdapter(mock, &buf)

	c, err := adapter.Create(context.Background(), "Grace Hopper", "grace@example.com", "JOB-002")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Stage != "applied" {
		t.Errorf("expected applied, got %s", c.Stage)
	}
	want := primary.CreateCandidateRequest{Name: "Grace Hopper", Email: "grace@example.com", JobID: "JOB-002"}
	if mock.lastCreateReq != want {
		t.Errorf("expected %+v, got %+v", want, mock.lastCreateReq)
	}
}

func TestCandidateAdapter_Move(t *testing.T) {
	tests := []struct {
		name      string
		notes     string
		wantNotes bool
	}{
		{name: "without note", notes: "", wantNotes: false},
		{name: "with note", notes: "Strong systems answers", wantNotes: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCandidateService{}
			var buf bytes.Buffer
			adapter := NewCandidateAdapter(mock, &buf)

			c, err := adapter.Move(context.Background(), "CAND-001", "offer", tt.notes)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if c.Stage != "offer" {
				t.Errorf("expected offer, got %s", c.Stage)
			}
			if (mock.lastPatch.Notes != nil) != tt.wantNotes {
				t.Errorf("notes patched = %v, want %v", mock.lastPatch.Notes != nil, tt.wantNotes)
			}
			if !strings.Contains(buf.String(), "is now in offer") {
				t.Errorf("unexpected output: %q", buf.String())
			}
		})
	}
}

func TestCandidateAdapter_Note(t *testing.T) {
	mock := &mockCandidateService{}
	adapter := NewCandidateAdapter(mock, &bytes.Buffer{})

	if _, err := adapter.Note(context.Background(), "CAND-001", "Follow up Friday"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastPatch.Stage != nil {
		t.Error("note must not change the stage")
	}
	if mock.lastPatch.Notes == nil || *mock.lastPatch.Notes != "Follow up Friday" {
		t.Errorf("unexpected patch: %+v", mock.lastPatch)
	}
}

func TestCandidateAdapter_Move_ValidationError(t *testing.T) {
	mock := &mockCandidateService{
		updateFn: func(ctx context.Context, candidateID string, patch primary.CandidatePatch) (*primary.Candidate, error) {
			return nil, errs.NewFieldError("stage", "unknown stage")
		},
	}
	var buf bytes.Buffer
	adapter := NewCandidateAdapter(mock, &buf)

	_, err := adapter.Move(context.Background(), "CAND-001", "interview", "")
	if !errs.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
