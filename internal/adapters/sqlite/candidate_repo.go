package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/ports/secondary"
)

// CandidateRepository implements secondary.CandidateRepository with SQLite.
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new SQLite candidate repository.
func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

const candidateColumns = "id, name, email, stage, job_id, created_at, updated_at"

// Create persists a new candidate and its first timeline entry atomically.
// The ID is allocated by the insert itself and written back to candidate
// and first.
func (r *CandidateRepository) Create(ctx context.Context, candidate *secondary.CandidateRecord, first *secondary.TimelineRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO candidates (id, name, email, stage, job_id, created_at, updated_at)
		 SELECT printf('CAND-%03d', COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) + 1), ?, ?, ?, ?, ?, ? FROM candidates
		 RETURNING id`,
		candidate.Name, candidate.Email, candidate.Stage, candidate.JobID, candidate.CreatedAt, candidate.UpdatedAt,
	).Scan(&candidate.ID)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	if first != nil {
		first.CandidateID = candidate.ID
		if err := insertTimeline(ctx, tx, first); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit candidate: %w", err)
	}
	return nil
}

// GetByID retrieves a candidate by its ID.
func (r *CandidateRepository) GetByID(ctx context.Context, id string) (*secondary.CandidateRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+candidateColumns+" FROM candidates WHERE id = ?", id)
	record, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("candidate", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return record, nil
}

// Update writes the candidate and appends entry, if any, in one transaction.
// Nothing is written when the candidate does not exist.
func (r *CandidateRepository) Update(ctx context.Context, candidate *secondary.CandidateRecord, entry *secondary.TimelineRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE candidates SET name = ?, email = ?, stage = ?, updated_at = ? WHERE id = ?",
		candidate.Name, candidate.Email, candidate.Stage, candidate.UpdatedAt, candidate.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errs.NewNotFoundError("candidate", candidate.ID)
	}

	if entry != nil {
		if err := insertTimeline(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit candidate update: %w", err)
	}
	return nil
}

// List retrieves one page of candidates matching the filters plus the total count.
func (r *CandidateRepository) List(ctx context.Context, filters secondary.CandidateFilters) ([]*secondary.CandidateRecord, int, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filters.Search != "" {
		pattern := containsPattern(filters.Search)
		where += ` AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}

	if filters.Stage != "" {
		where += " AND stage = ?"
		args = append(args, filters.Stage)
	}

	if filters.JobID != "" {
		where += " AND job_id = ?"
		args = append(args, filters.JobID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM candidates"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	query := "SELECT " + candidateColumns + " FROM candidates" + where + " ORDER BY CAST(SUBSTR(id, 6) AS INTEGER) ASC"
	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*secondary.CandidateRecord
	for rows.Next() {
		record, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, total, nil
}

func scanCandidate(s scanner) (*secondary.CandidateRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.CandidateRecord{}
	if err := s.Scan(&record.ID, &record.Name, &record.Email, &record.Stage, &record.JobID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt
	return record, nil
}
