package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it through GetSchemaSQL() instead of hardcoding CREATE TABLE statements,
// so a repository that references a missing column fails with "no such column"
// at test time.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Bump nothing else; InitSchema stamps fresh installs at the latest version
const SchemaSQL = `
-- Jobs (board order is a dense 1..N rank held in position)
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL CHECK(status IN ('active', 'archived')) DEFAULT 'active',
	tags TEXT NOT NULL DEFAULT '[]',
	position INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_jobs_position ON jobs(position);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);

-- Candidates
CREATE TABLE IF NOT EXISTS candidates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	stage TEXT NOT NULL CHECK(stage IN ('applied', 'screen', 'tech', 'offer', 'hired', 'rejected')) DEFAULT 'applied',
	job_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (job_id) REFERENCES jobs(id)
);

CREATE INDEX IF NOT EXISTS idx_candidates_job ON candidates(job_id);
CREATE INDEX IF NOT EXISTS idx_candidates_stage ON candidates(stage);

-- Candidate timeline (append-only history)
CREATE TABLE IF NOT EXISTS candidate_timeline (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	candidate_id TEXT NOT NULL,
	stage TEXT NOT NULL,
	notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	kind TEXT NOT NULL CHECK(kind IN ('stage_change', 'note_added')) DEFAULT 'stage_change',
	FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_timeline_candidate ON candidate_timeline(candidate_id, created_at, seq);

CREATE TRIGGER IF NOT EXISTS candidate_timeline_append_only
BEFORE UPDATE ON candidate_timeline
BEGIN
	SELECT RAISE(ABORT, 'candidate_timeline is append-only');
END;

-- Assessments (one per job; sections stored as JSON)
CREATE TABLE IF NOT EXISTS assessments (
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	sections TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (job_id) REFERENCES jobs(id)
);

-- Assessment submissions
CREATE TABLE IF NOT EXISTS assessment_submissions (
	id TEXT PRIMARY KEY,
	assessment_id TEXT NOT NULL,
	candidate_id TEXT NOT NULL,
	responses TEXT NOT NULL DEFAULT '{}',
	submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (assessment_id) REFERENCES assessments(id) ON DELETE CASCADE,
	FOREIGN KEY (candidate_id) REFERENCES candidates(id)
);

CREATE INDEX IF NOT EXISTS idx_submissions_assessment ON assessment_submissions(assessment_id);
`

// InitSchema brings the database to the latest schema. A database without a
// schema_version table and without tables is a fresh install and gets
// SchemaSQL directly; anything else goes through the migrations.
func InitSchema(db *sql.DB) error {
	var versionTables int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&versionTables)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if versionTables > 0 {
		return RunMigrations(db)
	}

	var legacyTables int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('jobs', 'candidates')").Scan(&legacyTables)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if legacyTables > 0 {
		return RunMigrations(db)
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", LatestVersion()); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}
