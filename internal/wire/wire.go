// Package wire provides dependency injection for the talentflow application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/talentflow/internal/adapters/cli"
	"github.com/example/talentflow/internal/adapters/sqlite"
	"github.com/example/talentflow/internal/app"
	"github.com/example/talentflow/internal/client"
	"github.com/example/talentflow/internal/config"
	"github.com/example/talentflow/internal/db"
	"github.com/example/talentflow/internal/ports/primary"
)

// Services bundles the primary ports. DB is nil when the services are
// backed by a remote API.
type Services struct {
	Jobs        primary.JobService
	Candidates  primary.CandidateService
	Assessments primary.AssessmentService
	DB          *sql.DB
}

// Close releases the local database, if any.
func (s *Services) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

var (
	services *Services
	cfg      *config.Config
	once     sync.Once
)

// Build creates the services for cfg. With an API URL configured they talk
// to that server, which must answer its health check, otherwise to the local
// SQLite database.
func Build(cfg *config.Config) (*Services, error) {
	if cfg.Remote() {
		c := client.New(cfg.API.URL, cfg.API.Timeout)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
		defer cancel()
		if err := c.Health(ctx); err != nil {
			return nil, fmt.Errorf("api server %s is not healthy: %w", cfg.API.URL, err)
		}
		return &Services{Jobs: c, Candidates: c, Assessments: c}, nil
	}

	path, err := DBPath(cfg)
	if err != nil {
		return nil, err
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return Local(database), nil
}

// DBPath returns the configured database path or the default one.
func DBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return db.DefaultPath()
}

// Local creates services over an open database.
func Local(database *sql.DB) *Services {
	// Create repository adapters (secondary ports) with the injected DB
	jobRepo := sqlite.NewJobRepository(database)
	candidateRepo := sqlite.NewCandidateRepository(database)
	timelineRepo := sqlite.NewTimelineRepository(database)
	assessmentRepo := sqlite.NewAssessmentRepository(database)
	submissionRepo := sqlite.NewSubmissionRepository(database)

	return &Services{
		Jobs:        app.NewJobService(jobRepo),
		Candidates:  app.NewCandidateService(candidateRepo, timelineRepo, jobRepo),
		Assessments: app.NewAssessmentService(assessmentRepo, submissionRepo, jobRepo, candidateRepo),
		DB:          database,
	}
}

// initServices loads the configuration and builds the services.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		zap.S().Fatalf("failed to load configuration: %v", err)
	}
	services, err = Build(cfg)
	if err != nil {
		zap.S().Fatalf("failed to initialize services: %v", err)
	}
}

// Config returns the singleton configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Get returns the singleton services.
func Get() *Services {
	once.Do(initServices)
	return services
}

// JobAdapter returns a new JobAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func JobAdapter() *cliadapter.JobAdapter {
	return JobAdapterWithOutput(os.Stdout)
}

// JobAdapterWithOutput returns a new JobAdapter writing to the given output.
func JobAdapterWithOutput(out io.Writer) *cliadapter.JobAdapter {
	return cliadapter.NewJobAdapter(Get().Jobs, out)
}

// CandidateAdapter returns a new CandidateAdapter writing to stdout.
func CandidateAdapter() *cliadapter.CandidateAdapter {
	return CandidateAdapterWithOutput(os.Stdout)
}

// CandidateAdapterWithOutput returns a new CandidateAdapter writing to the given output.
func CandidateAdapterWithOutput(out io.Writer) *cliadapter.CandidateAdapter {
	return cliadapter.NewCandidateAdapter(Get().Candidates, out)
}

// AssessmentAdapter returns a new AssessmentAdapter writing to stdout.
func AssessmentAdapter() *cliadapter.AssessmentAdapter {
	return AssessmentAdapterWithOutput(os.Stdout)
}

// AssessmentAdapterWithOutput returns a new AssessmentAdapter writing to the given output.
func AssessmentAdapterWithOutput(out io.Writer) *cliadapter.AssessmentAdapter {
	return cliadapter.NewAssessmentAdapter(Get().Assessments, out)
}
