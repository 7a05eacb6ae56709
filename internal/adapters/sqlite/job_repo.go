package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/ports/secondary"
)

// JobRepository implements secondary.JobRepository with SQLite.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new SQLite job repository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = "id, title, slug, status, tags, position, created_at, updated_at"

// Create persists a new job. The position is max+1, computed by the insert itself.
func (r *JobRepository) Create(ctx context.Context, job *secondary.JobRecord) error {
	tags, err := encodeTags(job.Tags)
	if err != nil {
		return err
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO jobs (id, title, slug, status, tags, position, created_at, updated_at)
		 SELECT ?, ?, ?, ?, ?, COALESCE(MAX(position), 0) + 1, ?, ? FROM jobs
		 RETURNING position`,
		job.ID, job.Title, job.Slug, job.Status, tags, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.Order)
	if isUniqueViolation(err, "jobs.slug") {
		return errs.NewDuplicateSlugError(job.Slug)
	}
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by its ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*secondary.JobRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	record, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("job", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return record, nil
}

// GetBySlug retrieves a job by its slug.
func (r *JobRepository) GetBySlug(ctx context.Context, slug string) (*secondary.JobRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE slug = ?", slug)
	record, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, errs.NewNotFoundError("job", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job by slug: %w", err)
	}
	return record, nil
}

// Update writes everything but the position.
func (r *JobRepository) Update(ctx context.Context, job *secondary.JobRecord) error {
	tags, err := encodeTags(job.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE jobs SET title = ?, slug = ?, status = ?, tags = ?, updated_at = ? WHERE id = ?",
		job.Title, job.Slug, job.Status, tags, job.UpdatedAt, job.ID,
	)
	if isUniqueViolation(err, "jobs.slug") {
		return errs.NewDuplicateSlugError(job.Slug)
	}
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errs.NewNotFoundError("job", job.ID)
	}

	return nil
}

// List retrieves one page of jobs matching the filters plus the total count.
func (r *JobRepository) List(ctx context.Context, filters secondary.JobFilters) ([]*secondary.JobRecord, int, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filters.Search != "" {
		pattern := containsPattern(filters.Search)
		where += ` AND (LOWER(title) LIKE ? ESCAPE '\' OR EXISTS (
			SELECT 1 FROM json_each(jobs.tags) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\'))`
		args = append(args, pattern, pattern)
	}

	if filters.Status != "" {
		where += " AND status = ?"
		args = append(args, filters.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := "SELECT " + jobColumns + " FROM jobs" + where
	switch filters.Sort {
	case "title":
		query += " ORDER BY title COLLATE NOCASE ASC, position ASC"
	case "createdAt":
		query += " ORDER BY created_at DESC, position ASC"
	default:
		query += " ORDER BY position ASC, id ASC"
	}

	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*secondary.JobRecord
	for rows.Next() {
		record, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, total, nil
}

// Reorder runs fn over every job by rank inside one IMMEDIATE transaction
// and writes back the positions that changed. Rows whose position changed
// also take the UpdatedAt fn set on them.
func (r *JobRepository) Reorder(ctx context.Context, fn func(jobs []*secondary.JobRecord) ([]*secondary.JobRecord, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT "+jobColumns+" FROM jobs ORDER BY position ASC, id ASC")
	if err != nil {
		return fmt.Errorf("failed to load jobs for reorder: %w", err)
	}
	var current []*secondary.JobRecord
	before := make(map[string]int)
	for rows.Next() {
		record, err := scanJob(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan job: %w", err)
		}
		current = append(current, record)
		before[record.ID] = record.Order
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load jobs for reorder: %w", err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	for _, job := range next {
		old, ok := before[job.ID]
		if !ok || old == job.Order {
			continue
		}
		updatedAt := job.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE jobs SET position = ?, updated_at = ? WHERE id = ?",
			job.Order, updatedAt, job.ID,
		); err != nil {
			return fmt.Errorf("failed to write position for %s: %w", job.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

// GetNextID returns the next available job ID.
func (r *JobRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM jobs",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next job ID: %w", err)
	}

	return fmt.Sprintf("JOB-%03d", maxID+1), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*secondary.JobRecord, error) {
	var (
		tags      string
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.JobRecord{}
	if err := s.Scan(&record.ID, &record.Title, &record.Slug, &record.Status, &tags, &record.Order, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &record.Tags); err != nil {
		return nil, fmt.Errorf("job %s has malformed tags: %w", record.ID, err)
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt
	return record, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}
