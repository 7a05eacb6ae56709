package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/talentflow/internal/ports/secondary"
)

// SubmissionRepository implements secondary.SubmissionRepository with SQLite.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SQLite submission repository.
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create persists a submission.
func (r *SubmissionRepository) Create(ctx context.Context, submission *secondary.SubmissionRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO assessment_submissions (id, assessment_id, candidate_id, responses, submitted_at) VALUES (?, ?, ?, ?, ?)",
		submission.ID, submission.AssessmentID, submission.CandidateID, submission.Responses, submission.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// ListByAssessment retrieves submissions for an assessment, oldest first.
func (r *SubmissionRepository) ListByAssessment(ctx context.Context, assessmentID string) ([]*secondary.SubmissionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, assessment_id, candidate_id, responses, submitted_at FROM assessment_submissions WHERE assessment_id = ? ORDER BY submitted_at ASC, rowid ASC",
		assessmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*secondary.SubmissionRecord
	for rows.Next() {
		var submittedAt time.Time
		record := &secondary.SubmissionRecord{}
		if err := rows.Scan(&record.ID, &record.AssessmentID, &record.CandidateID, &record.Responses, &submittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		record.SubmittedAt = submittedAt
		submissions = append(submissions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}
