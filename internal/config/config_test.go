package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, ".", cfg.Paths.DataDir)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, float64(50), cfg.Server.RateLimit.RPS)
	assert.Equal(t, 25, cfg.Server.RateLimit.Burst)
}

func TestLoadFrom_RateLimitDisabled(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
server:
  rate_limit:
    enabled: false
    rps: 10
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.False(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, float64(10), cfg.Server.RateLimit.RPS)
	assert.Equal(t, 25, cfg.Server.RateLimit.Burst)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
logging:
  level: debug
paths:
  data_dir: /srv/savi/data
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/savi/data", cfg.Paths.DataDir)
	// Unset fields still get defaults
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("SAVI_SERVER_PORT", "7070")
	t.Setenv("SAVI_PATHS_DATA_DIR", "/tmp/override")

	cfg, err := LoadFrom(configFile)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/override", cfg.Paths.DataDir)
}

func TestLoadFrom_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "invalid port",
			env:     map[string]string{"SAVI_SERVER_PORT": "99999"},
			wantErr: "invalid server port",
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"SAVI_LOGGING_LEVEL": "verbose"},
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid log output",
			env:     map[string]string{"SAVI_LOGGING_OUTPUT": "syslog"},
			wantErr: "invalid logging output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFrom(filepath.Join(t.TempDir(), "none.yaml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server: [not a map"), 0644))

	_, err := LoadFrom(configFile)
	assert.Error(t, err)
}
