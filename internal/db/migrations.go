package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_jobs_candidates_timeline",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_timeline_event_kind",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "create_assessments_and_submissions",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "make_timeline_append_only",
		Up:      migrationV4,
	},
}

// LatestVersion returns the version a fully migrated database is at.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations applies every migration newer than the recorded version.
// Each migration runs in its own transaction together with its version row.
func RunMigrations(db *sql.DB) error {
	log := zap.S().Named("migrations")

	if err := createVersionTable(db); err != nil {
		return err
	}

	// Get current schema version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Infow("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		log.Infow("migration completed", "version", migration.Version)
	}

	return nil
}

func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
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

		CREATE TABLE IF NOT EXISTS candidate_timeline (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			candidate_id TEXT NOT NULL,
			stage TEXT NOT NULL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_timeline_candidate ON candidate_timeline(candidate_id, created_at, seq);
	`)
	return err
}

// Existing rows were all written on stage changes.
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE candidate_timeline
		ADD COLUMN kind TEXT NOT NULL CHECK(kind IN ('stage_change', 'note_added')) DEFAULT 'stage_change'
	`)
	return err
}

func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			sections TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (job_id) REFERENCES jobs(id)
		);

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
	`)
	return err
}

func migrationV4(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TRIGGER IF NOT EXISTS candidate_timeline_append_only
		BEFORE UPDATE ON candidate_timeline
		BEGIN
			SELECT RAISE(ABORT, 'candidate_timeline is append-only');
		END;
	`)
	return err
}
