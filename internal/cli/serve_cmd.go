package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/talentflow/internal/adapters/httpapi"
	"github.com/example/talentflow/internal/config"
	"github.com/example/talentflow/internal/db"
	"github.com/example/talentflow/internal/metrics"
	"github.com/example/talentflow/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API over the local database",
	Long: `Serve the talentflow JSON API.

The chaos layer (TALENTFLOW_CHAOS_ENABLED=true or --chaos) delays every API
request by a random latency and fails a share of mutating requests, so clients
can be exercised against a slow and flaky backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("address"); addr != "" {
			cfg.Address = addr
		}
		if chaos, _ := cmd.Flags().GetBool("chaos"); chaos {
			cfg.Chaos.Enabled = true
		}
		return runServer(cmd, cfg)
	},
}

func runServer(cmd *cobra.Command, cfg *config.Config) error {
	logger := zap.S().Named("serve")
	logger.Infof("using config: %s", cfg)

	path, err := wire.DBPath(cfg)
	if err != nil {
		return err
	}
	database, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	services := wire.Local(database)
	m := metrics.NewMiddleware("talentflow", nil)
	opts := httpapi.RouterOptions{
		CORSOrigins: cfg.GetCORSOrigins(),
		Metrics:     m,
		Gatherer:    metrics.NewRegistry(m),
		Logger:      zap.L(),
	}
	if cfg.Chaos.Enabled {
		opts.Chaos = httpapi.NewChaos(cfg.Chaos.MinLatency, cfg.Chaos.MaxLatency, cfg.Chaos.FailureRate)
		logger.Infow("chaos layer enabled",
			"min_latency", cfg.Chaos.MinLatency,
			"max_latency", cfg.Chaos.MaxLatency,
			"failure_rate", cfg.Chaos.FailureRate)
	}

	handler := httpapi.NewHandler(services.Jobs, services.Candidates, services.Assessments)
	router := httpapi.NewRouter(handler, opts)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	logger.Infow("starting api server", "address", cfg.Address, "db", path)
	return httpapi.NewServer(cfg.Address, router, nil).Run(ctx)
}

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	serveCmd.Flags().StringP("address", "a", "", "Listen address (default from TALENTFLOW_ADDRESS)")
	serveCmd.Flags().Bool("chaos", false, "Enable the chaos layer")
	return serveCmd
}
