// Package config loads talentflow settings from TALENTFLOW_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Prefix is prepended to every variable name, e.g. TALENTFLOW_ADDRESS.
const Prefix = "TALENTFLOW"

// Config holds all application configuration.
type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	Address  string `envconfig:"ADDRESS" default:":8080"`
	DBPath   string `envconfig:"DB_PATH" default:""` // empty means ~/.talentflow/talentflow.db
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	API      APIConfig
	CORS     CORSConfig
	Chaos    ChaosConfig
}

// APIConfig configures the CLI's remote mode.
type APIConfig struct {
	URL     string        `envconfig:"API_URL" default:""` // empty means use the local database
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
}

// CORSConfig configures the browser origins allowed to call the API.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// ChaosConfig configures the chaos layer of the API server.
type ChaosConfig struct {
	Enabled     bool          `envconfig:"CHAOS_ENABLED" default:"false"`
	MinLatency  time.Duration `envconfig:"CHAOS_MIN_LATENCY" default:"200ms"`
	MaxLatency  time.Duration `envconfig:"CHAOS_MAX_LATENCY" default:"1200ms"`
	FailureRate float64       `envconfig:"CHAOS_FAILURE_RATE" default:"0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, production, test)", c.Env)
	}
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("%s_ADDRESS must not be empty", Prefix)
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.API.URL != "" {
		u, err := url.Parse(c.API.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s_API_URL %q (must be an http(s) URL)", Prefix, c.API.URL)
		}
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%s_API_TIMEOUT must be positive", Prefix)
	}
	if c.Chaos.MinLatency < 0 {
		return fmt.Errorf("%s_CHAOS_MIN_LATENCY must be non-negative", Prefix)
	}
	if c.Chaos.MaxLatency < c.Chaos.MinLatency {
		return fmt.Errorf("%s_CHAOS_MAX_LATENCY (%s) cannot be below %s_CHAOS_MIN_LATENCY (%s)",
			Prefix, c.Chaos.MaxLatency, Prefix, c.Chaos.MinLatency)
	}
	if c.Chaos.FailureRate < 0 || c.Chaos.FailureRate > 1 {
		return fmt.Errorf("%s_CHAOS_FAILURE_RATE must be between 0 and 1", Prefix)
	}

	return nil
}

// Remote reports whether the CLI should talk to an API server instead of
// the local database.
func (c *Config) Remote() bool {
	return c.API.URL != ""
}

// GetCORSOrigins returns the list of trusted CORS origins.
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.Origins))
	for _, origin := range c.CORS.Origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// String renders the settings for the startup log.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Address=%s, DBPath=%q, LogLevel=%s, API.URL=%q, API.Timeout=%s, "+
		"CORS.Origins=%d, Chaos.Enabled=%t, Chaos.Latency=[%s,%s), Chaos.FailureRate=%.2f}",
		c.Env, c.Address, c.DBPath, c.LogLevel, c.API.URL, c.API.Timeout,
		len(c.CORS.Origins), c.Chaos.Enabled, c.Chaos.MinLatency, c.Chaos.MaxLatency, c.Chaos.FailureRate)
}
