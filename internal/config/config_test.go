package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
	assert.Equal(t, "data/market_profile.json", cfg.Paths.ProfileFile)
	assert.Equal(t, 30, cfg.Pricing.MinCalibrationCount)

	require.NoError(t, cfg.validate())
}

func TestLoadFromFile(t *testing.T) {
	content := `
server:
  port: 9090
  read_timeout: 5s
security:
  rate_limit:
    enabled: false
paths:
  profile_file: /var/lib/wpc/profile.json
pricing:
  min_calibration_count: 10
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "/var/lib/wpc/profile.json", cfg.Paths.ProfileFile)
	assert.Equal(t, 10, cfg.Pricing.MinCalibrationCount)

	// Untouched fields keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WPC_SERVER_PORT", "7070")
	t.Setenv("WPC_PATHS_PROFILE_FILE", "/tmp/profile.json")

	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/profile.json", cfg.Paths.ProfileFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "zero write timeout",
			mutate:  func(c *Config) { c.Server.WriteTimeout = 0 },
			wantErr: "write timeout",
		},
		{
			name:    "cors without origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
		{
			name:    "rate limit without rps",
			mutate:  func(c *Config) { c.Security.RateLimit.RPS = 0 },
			wantErr: "rate limit rps",
		},
		{
			name:    "rate limit without burst",
			mutate:  func(c *Config) { c.Security.RateLimit.Burst = 0 },
			wantErr: "rate limit burst",
		},
		{
			name:    "empty profile path",
			mutate:  func(c *Config) { c.Paths.ProfileFile = "" },
			wantErr: "profile file",
		},
		{
			name:    "zero calibration count",
			mutate:  func(c *Config) { c.Pricing.MinCalibrationCount = 0 },
			wantErr: "min calibration count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"
	cfg.Logging.Output = "syslog"
	require.NoError(t, cfg.validate())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)

	cfg = Default()
	cfg.Logging.Output = "file"
	require.NoError(t, cfg.validate())
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}
