package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/talentflow/internal/adapters/sqlite"
	"github.com/example/talentflow/internal/ports/secondary"
)

func TestSubmissionRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSubmissionRepository(db)
	ctx := context.Background()

	seedJob(t, db, "JOB-001", "Backend Developer", 1)
	seedCandidate(t, db, "CAND-001", "JOB-001", "Ada", "ada@example.com", "")
	seedCandidate(t, db, "CAND-002", "JOB-001", "Grace", "grace@example.com", "")
	seedAssessment(t, db, "ASMT-001", "JOB-001")

	late := &secondary.SubmissionRecord{ID: "sub-b", AssessmentID: "ASMT-001", CandidateID: "CAND-002", Responses: `{"q1":"yes"}`, SubmittedAt: base.Add(time.Minute)}
	early := &secondary.SubmissionRecord{ID: "sub-a", AssessmentID: "ASMT-001", CandidateID: "CAND-001", Responses: `{"q1":"no"}`, SubmittedAt: base}
	for _, s := range []*secondary.SubmissionRecord{late, early} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.ListByAssessment(ctx, "ASMT-001")
	if err != nil {
		t.Fatalf("ListByAssessment failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "sub-a" || got[1].ID != "sub-b" {
		t.Fatalf("unexpected submissions %+v", got)
	}
	if got[0].Responses != `{"q1":"no"}` || !got[0].SubmittedAt.Equal(base) {
		t.Errorf("unexpected record %+v", got[0])
	}
}

func TestSubmissionRepository_RequiresCandidate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSubmissionRepository(db)

	seedJob(t, db, "JOB-001", "Backend Developer", 1)
	seedAssessment(t, db, "ASMT-001", "JOB-001")

	err := repo.Create(context.Background(), &secondary.SubmissionRecord{ID: "sub-a", AssessmentID: "ASMT-001", CandidateID: "CAND-404", Responses: "{}", SubmittedAt: base})
	if err == nil {
		t.Fatal("expected foreign key error")
	}
}
