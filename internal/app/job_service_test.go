package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/ports/primary"
)

func newTestJobService() (*JobServiceImpl, *mockJobRepository) {
	repo := newMockJobRepository()
	svc := NewJobService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestCreateJob_AppendsToBoard(t *testing.T) {
	svc, _ := newTestJobService()
	ctx := context.Background()

	first, err := svc.CreateJob(ctx, primary.CreateJobRequest{Title: "  Senior Go Engineer ", Tags: []string{"Go", " Go", "", "Remote"}})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	second, err := svc.CreateJob(ctx, primary.CreateJobRequest{Title: "Data Analyst"})
	if err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	if first.Title != "Senior Go Engineer" || first.Slug != "senior-go-engineer" {
		t.Errorf("unexpected job %+v", first)
	}
	if first.Status != "active" {
		t.Errorf("Status = %q, want active", first.Status)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "Go" || first.Tags[1] != "Remote" {
		t.Errorf("Tags = %v", first.Tags)
	}
	if first.Order != 1 || second.Order != 2 {
		t.Errorf("orders = %d, %d", first.Order, second.Order)
	}
	if second.Tags == nil {
		t.Error("expected empty tags, got nil")
	}
	if !first.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v", first.CreatedAt)
	}
}

func TestCreateJob_Validation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr func(error) bool
	}{
		{"empty title", "", errs.IsValidation},
		{"blank title", "   ", errs.IsValidation},
		{"no slug characters", "!!!", errs.IsValidation},
		{"duplicate slug", "frontend developer", func(err error) bool {
			var dup *errs.DuplicateSlugError
			return errors.As(err, &dup) && dup.Slug == "frontend-developer"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestJobService()
			repo.add("JOB-100", "Frontend Developer", 1)

			_, err := svc.CreateJob(context.Background(), primary.CreateJobRequest{Title: tt.title})
			if !tt.wantErr(err) {
				t.Errorf("unexpected error %v", err)
			}
			if len(repo.jobs) != 1 {
				t.Errorf("expected no job written, have %d", len(repo.jobs))
			}
		})
	}
}

func TestGetJob_NotFound(t *testing.T) {
	svc, _ := newTestJobService()

	_, err := svc.GetJob(context.Background(), "JOB-404")
	if !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListJobs(t *testing.T) {
	svc, repo := newTestJobService()
	for i, title := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		repo.add(title, title, i+1)
	}

	page, err := svc.ListJobs(context.Background(), primary.JobFilters{Search: "  x "}, primary.PageRequest{Page: 2})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if repo.lastFilter.Limit != primary.DefaultJobPageSize || repo.lastFilter.Offset != 10 {
		t.Errorf("filter = %+v", repo.lastFilter)
	}
	if repo.lastFilter.Search != "x" {
		t.Errorf("Search = %q", repo.lastFilter.Search)
	}
	if len(page.Data) != 2 || page.Data[0].ID != "K" {
		t.Errorf("unexpected page data %v", page.Data)
	}
	want := primary.Pagination{Page: 2, PageSize: 10, Total: 12, TotalPages: 2}
	if page.Pagination != want {
		t.Errorf("Pagination = %+v, want %+v", page.Pagination, want)
	}
}

func TestListJobs_RejectsUnknownFilters(t *testing.T) {
	svc, _ := newTestJobService()
	ctx := context.Background()

	if _, err := svc.ListJobs(ctx, primary.JobFilters{Status: "closed"}, primary.PageRequest{}); !errs.IsValidation(err) {
		t.Errorf("expected ValidationError for status, got %v", err)
	}
	if _, err := svc.ListJobs(ctx, primary.JobFilters{Sort: "salary"}, primary.PageRequest{}); !errs.IsValidation(err) {
		t.Errorf("expected ValidationError for sort, got %v", err)
	}
}

func TestUpdateJob(t *testing.T) {
	svc, repo := newTestJobService()
	repo.add("JOB-001", "Backend Developer", 1)
	repo.add("JOB-002", "QA Engineer", 2)
	ctx := context.Background()

	updated, err := svc.UpdateJob(ctx, "JOB-001", primary.JobPatch{
		Title:  strPtr("Platform Engineer"),
		Status: strPtr("archived"),
		Tags:   &[]string{"Go", "Go"},
	})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}
	if updated.Slug != "platform-engineer" || updated.Status != "archived" || len(updated.Tags) != 1 {
		t.Errorf("unexpected job %+v", updated)
	}
	if updated.Order != 1 {
		t.Errorf("Order = %d, want 1", updated.Order)
	}
	if !updated.UpdatedAt.Equal(fixedNow) {
		t.Errorf("UpdatedAt = %v", updated.UpdatedAt)
	}
}

func TestUpdateJob_IsIdempotent(t *testing.T) {
	svc, repo := newTestJobService()
	repo.add("JOB-001", "Backend Developer", 1)
	ctx := context.Background()
	patch := primary.JobPatch{Title: strPtr("Go Developer")}

	first, err := svc.UpdateJob(ctx, "JOB-001", patch)
	if err != nil {
		t.Fatalf("first UpdateJob failed: %v", err)
	}
	// Own slug must not count as taken.
	second, err := svc.UpdateJob(ctx, "JOB-001", patch)
	if err != nil {
		t.Fatalf("second UpdateJob failed: %v", err)
	}
	if first.Title != second.Title || first.Slug != second.Slug || first.Order != second.Order {
		t.Errorf("second application changed the job: %+v vs %+v", first, second)
	}
}

func TestUpdateJob_Errors(t *testing.T) {
	order := 3
	tests := []struct {
		name    string
		jobID   string
		patch   primary.JobPatch
		wantErr func(error) bool
	}{
		{"missing job", "JOB-404", primary.JobPatch{Title: strPtr("X")}, errs.IsNotFound},
		{"order not patchable", "JOB-001", primary.JobPatch{Order: &order}, errs.IsValidation},
		{"bad status", "JOB-001", primary.JobPatch{Status: strPtr("closed")}, errs.IsValidation},
		{"blank title", "JOB-001", primary.JobPatch{Title: strPtr(" ")}, errs.IsValidation},
		{"slug of another job", "JOB-001", primary.JobPatch{Title: strPtr("QA engineer")}, func(err error) bool {
			var dup *errs.DuplicateSlugError
			return errors.As(err, &dup)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestJobService()
			repo.add("JOB-001", "Backend Developer", 1)
			repo.add("JOB-002", "QA Engineer", 2)

			_, err := svc.UpdateJob(context.Background(), tt.jobID, tt.patch)
			if !tt.wantErr(err) {
				t.Errorf("unexpected error %v", err)
			}
			if repo.jobs["JOB-001"].Title != "Backend Developer" {
				t.Error("job was modified")
			}
		})
	}
}

func TestReorderJob(t *testing.T) {
	tests := []struct {
		name string
		req  primary.ReorderJobRequest
		want string
	}{
		{"move down", primary.ReorderJobRequest{JobID: "B", FromOrder: 2, ToOrder: 4}, "A:1 C:2 D:3 B:4"},
		{"move to top", primary.ReorderJobRequest{JobID: "D", FromOrder: 4, ToOrder: 1}, "D:1 A:2 B:3 C:4"},
		{"same rank", primary.ReorderJobRequest{JobID: "C", FromOrder: 3, ToOrder: 3}, "A:1 B:2 C:3 D:4"},
		{"clamped high", primary.ReorderJobRequest{JobID: "A", FromOrder: 1, ToOrder: 99}, "B:1 C:2 D:3 A:4"},
		{"clamped low", primary.ReorderJobRequest{JobID: "C", FromOrder: 3, ToOrder: -5}, "C:1 A:2 B:3 D:4"},
		{"stale from", primary.ReorderJobRequest{JobID: "D", FromOrder: 1, ToOrder: 2}, "A:1 D:2 B:3 C:4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestJobService()
			for i, id := range []string{"A", "B", "C", "D"} {
				repo.add(id, "Job "+id, i+1)
			}

			if err := svc.ReorderJob(context.Background(), tt.req); err != nil {
				t.Fatalf("ReorderJob failed: %v", err)
			}
			if got := repo.orderOf(); got != tt.want {
				t.Errorf("board = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReorderJob_RepairsGappedBoard(t *testing.T) {
	tests := []struct {
		name string
		req  primary.ReorderJobRequest
		want string
	}{
		{"move", primary.ReorderJobRequest{JobID: "C", FromOrder: 7, ToOrder: 1}, "C:1 A:2 B:3"},
		{"same rank", primary.ReorderJobRequest{JobID: "B", FromOrder: 3, ToOrder: 3}, "A:1 B:2 C:3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestJobService()
			repo.add("A", "Job A", 1)
			repo.add("B", "Job B", 3)
			repo.add("C", "Job C", 7)

			if err := svc.ReorderJob(context.Background(), tt.req); err != nil {
				t.Fatalf("ReorderJob failed: %v", err)
			}
			if got := repo.orderOf(); got != tt.want {
				t.Errorf("board = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReorderJob_Errors(t *testing.T) {
	svc, repo := newTestJobService()
	repo.add("A", "Job A", 1)

	if err := svc.ReorderJob(context.Background(), primary.ReorderJobRequest{JobID: "Z", ToOrder: 1}); !errs.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}

	boom := errors.New("disk full")
	repo.reorderErr = boom
	if err := svc.ReorderJob(context.Background(), primary.ReorderJobRequest{JobID: "A", ToOrder: 1}); !errors.Is(err, boom) {
		t.Errorf("expected storage error, got %v", err)
	}
}
