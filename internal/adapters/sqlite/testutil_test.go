// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/talentflow/internal/db"
	"github.com/example/talentflow/internal/ports/secondary"
)

// base is the clock the seed helpers start from.
var base = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on&_txlock=immediate")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// openFileDBs opens n handles on one file database, the way a server and a
// CLI share the same file.
func openFileDBs(t *testing.T, n int) []*sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "talentflow.db")
	handles := make([]*sql.DB, n)
	for i := range handles {
		h, err := db.Open(path)
		if err != nil {
			t.Fatalf("failed to open file db: %v", err)
		}
		t.Cleanup(func() { h.Close() })
		handles[i] = h
	}
	return handles
}

// seedJob inserts a test job at the given position and returns its ID.
func seedJob(t *testing.T, db *sql.DB, id, title string, position int) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO jobs (id, title, slug, status, tags, position, created_at, updated_at) VALUES (?, ?, ?, 'active', '[]', ?, ?, ?)",
		id, title, id, position, base, base,
	)
	if err != nil {
		t.Fatalf("failed to seed job: %v", err)
	}
	return id
}

// seedCandidate inserts a test candidate and returns its ID.
func seedCandidate(t *testing.T, db *sql.DB, id, jobID, name, email, stage string) string {
	t.Helper()
	if stage == "" {
		stage = "applied"
	}
	_, err := db.Exec(
		"INSERT INTO candidates (id, name, email, stage, job_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, name, email, stage, jobID, base, base,
	)
	if err != nil {
		t.Fatalf("failed to seed candidate: %v", err)
	}
	return id
}

// seedAssessment inserts a test assessment and returns its ID.
func seedAssessment(t *testing.T, db *sql.DB, id, jobID string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO assessments (id, job_id, title, sections, created_at, updated_at) VALUES (?, ?, 'Test Assessment', '[]', ?, ?)",
		id, jobID, base, base,
	)
	if err != nil {
		t.Fatalf("failed to seed assessment: %v", err)
	}
	return id
}

// seedTimeline inserts a timeline entry directly.
func seedTimeline(t *testing.T, db *sql.DB, e *secondary.TimelineRecord) {
	t.Helper()
	var notes any
	if e.Notes != "" {
		notes = e.Notes
	}
	_, err := db.Exec(
		"INSERT INTO candidate_timeline (id, candidate_id, kind, stage, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.CandidateID, e.Kind, e.Stage, notes, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed timeline entry: %v", err)
	}
}

// positions returns id -> position for every job.
func positions(t *testing.T, db *sql.DB) map[string]int {
	t.Helper()
	rows, err := db.Query("SELECT id, position FROM jobs")
	if err != nil {
		t.Fatalf("failed to read positions: %v", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var pos int
		if err := rows.Scan(&id, &pos); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out[id] = pos
	}
	return out
}
