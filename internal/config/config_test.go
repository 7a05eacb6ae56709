package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Remote())
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.Chaos.Enabled)
	assert.Equal(t, 200*time.Millisecond, cfg.Chaos.MinLatency)
	assert.Equal(t, 1200*time.Millisecond, cfg.Chaos.MaxLatency)
	assert.InDelta(t, 0.1, cfg.Chaos.FailureRate, 1e-9)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.GetCORSOrigins())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TALENTFLOW_ENV", "production")
	t.Setenv("TALENTFLOW_ADDRESS", "127.0.0.1:9000")
	t.Setenv("TALENTFLOW_API_URL", "http://localhost:9000")
	t.Setenv("TALENTFLOW_CHAOS_ENABLED", "true")
	t.Setenv("TALENTFLOW_CHAOS_FAILURE_RATE", "0.5")
	t.Setenv("TALENTFLOW_CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.True(t, cfg.Remote())
	assert.True(t, cfg.Chaos.Enabled)
	assert.InDelta(t, 0.5, cfg.Chaos.FailureRate, 1e-9)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetCORSOrigins())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:      "test",
			Address:  ":8080",
			LogLevel: "debug",
			API:      APIConfig{Timeout: time.Second},
			Chaos:    ChaosConfig{MinLatency: 200 * time.Millisecond, MaxLatency: 1200 * time.Millisecond, FailureRate: 0.1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad env", func(c *Config) { c.Env = "staging" }},
		{"empty address", func(c *Config) { c.Address = " " }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"api url without scheme", func(c *Config) { c.API.URL = "localhost:8080" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"inverted latency", func(c *Config) { c.Chaos.MaxLatency = 100 * time.Millisecond }},
		{"negative latency", func(c *Config) { c.Chaos.MinLatency = -time.Millisecond }},
		{"rate above one", func(c *Config) { c.Chaos.FailureRate = 1.5 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestString(t *testing.T) {
	cfg := &Config{
		Env:      "production",
		Address:  ":9000",
		DBPath:   "/var/lib/talentflow.db",
		LogLevel: "warn",
		API:      APIConfig{URL: "http://api", Timeout: 5 * time.Second},
		CORS:     CORSConfig{Origins: []string{"a", "b"}},
		Chaos:    ChaosConfig{Enabled: true, MinLatency: time.Millisecond, MaxLatency: 2 * time.Millisecond, FailureRate: 0.25},
	}

	s := cfg.String()
	assert.Contains(t, s, "Env=production")
	assert.Contains(t, s, `DBPath="/var/lib/talentflow.db"`)
	assert.Contains(t, s, "CORS.Origins=2")
	assert.Contains(t, s, "Chaos.FailureRate=0.25")
}
