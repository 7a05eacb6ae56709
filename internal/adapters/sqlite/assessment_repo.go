package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/ports/secondary"
)

// AssessmentRepository implements secondary.AssessmentRepository with SQLite.
type AssessmentRepository struct {
	db *sql.DB
}

// NewAssessmentRepository creates a new SQLite assessment repository.
func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const assessmentColumns = "id, job_id, title, sections, created_at, updated_at"

// GetByJobID retrieves the assessment attached to a job.
func (r *AssessmentRepository) GetByJobID(ctx context.Context, jobID string) (*secondary.AssessmentRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+assessmentColumns+" FROM assessments WHERE job_id = ?", jobID)
	record, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("assessment for job", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return record, nil
}

// Upsert inserts the job's assessment or replaces title and sections of the
// existing one. A new assessment gets its ID from the insert; the stored id
// and created_at are written back to the record.
func (r *AssessmentRepository) Upsert(ctx context.Context, assessment *secondary.AssessmentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The WHERE clause keeps SQLite from reading ON CONFLICT as a join constraint.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO assessments (id, job_id, title, sections, created_at, updated_at)
		 SELECT printf('ASMT-%03d', COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) + 1), ?, ?, ?, ?, ? FROM assessments WHERE true
		 ON CONFLICT(job_id) DO UPDATE SET
			title = excluded.title,
			sections = excluded.sections,
			updated_at = excluded.updated_at`,
		assessment.JobID, assessment.Title, assessment.Sections, assessment.CreatedAt, assessment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		"SELECT id, created_at FROM assessments WHERE job_id = ?", assessment.JobID,
	).Scan(&assessment.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("failed to read back assessment: %w", err)
	}
	assessment.CreatedAt = createdAt

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assessment: %w", err)
	}
	return nil
}

// List retrieves every assessment, newest first.
func (r *AssessmentRepository) List(ctx context.Context) ([]*secondary.AssessmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+assessmentColumns+" FROM assessments ORDER BY updated_at DESC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*secondary.AssessmentRecord
	for rows.Next() {
		record, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

func scanAssessment(s scanner) (*secondary.AssessmentRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.AssessmentRecord{}
	if err := s.Scan(&record.ID, &record.JobID, &record.Title, &record.Sections, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt
	return record, nil
}
