package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/talentflow/internal/ports/secondary"
)

// TimelineRepository implements secondary.TimelineRepository with SQLite.
// The table rejects updates, so entries can only be appended.
type TimelineRepository struct {
	db *sql.DB
}

// NewTimelineRepository creates a new SQLite timeline repository.
func NewTimelineRepository(db *sql.DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

// ListByCandidate returns entries by created_at, ties broken by insertion order.
func (r *TimelineRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*secondary.TimelineRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, candidate_id, kind, stage, notes, created_at FROM candidate_timeline WHERE candidate_id = ? ORDER BY created_at ASC, seq ASC",
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	defer rows.Close()

	entries := []*secondary.TimelineRecord{}
	for rows.Next() {
		var (
			notes     sql.NullString
			createdAt time.Time
		)
		record := &secondary.TimelineRecord{}
		if err := rows.Scan(&record.ID, &record.CandidateID, &record.Kind, &record.Stage, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan timeline entry: %w", err)
		}
		record.Notes = notes.String
		record.CreatedAt = createdAt
		entries = append(entries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}

	return entries, nil
}

func insertTimeline(ctx context.Context, ex execer, entry *secondary.TimelineRecord) error {
	var notes sql.NullString
	if entry.Notes != "" {
		notes = sql.NullString{String: entry.Notes, Valid: true}
	}

	_, err := ex.ExecContext(ctx,
		"INSERT INTO candidate_timeline (id, candidate_id, kind, stage, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, entry.CandidateID, entry.Kind, entry.Stage, notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append timeline entry: %w", err)
	}
	return nil
}
