package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/idesignres/iisim/pkg/api"
	"github.com/idesignres/iisim/pkg/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()

	cfg := &Config{}
	require.NoError(t, defaults.Set(cfg))
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, 10, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "Sources", cfg.Compiler.SourcesPath)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.False(t, cfg.API.Enabled)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Equal(t, map[string]int{"iisim:compile": 10}, cfg.Queues())
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Concurrency = -1 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: ErrInvalidShutdownTimeout,
		},
		{
			name:    "no metrics address",
			mutate:  func(c *Config) { c.MetricsAddr = "" },
			wantErr: ErrMetricsAddrRequired,
		},
		{
			name: "api without address",
			mutate: func(c *Config) {
				c.API.Enabled = true
				c.API.Addr = ""
			},
			wantErr: api.ErrAPIAddrRequired,
		},
		{
			name:    "invalid compiler section",
			mutate:  func(c *Config) { c.Compiler.OutputPath = "" },
			wantErr: compiler.ErrOutputPathRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	t.Run("invalid redis url", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Redis.URL = "mysql://localhost"

		require.Error(t, cfg.Validate())
	})

	t.Run("invalid schedule", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Scheduler.Enabled = true
		cfg.Scheduler.Schedule = "whenever"

		require.Error(t, cfg.Validate())
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging: debug
concurrency: 2
redis:
  url: redis://cache:6379/1
  prefix: plants
compiler:
  sourcesPath: /data/Sources
  verify: false
scheduler:
  enabled: true
  schedule: "@daily"
`), 0o600))

	t.Setenv(compiler.SourcesPathEnv, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
	assert.Equal(t, "/data/Sources", cfg.Compiler.SourcesPath)
	assert.Equal(t, "industries", cfg.Compiler.OutputPath)
	assert.False(t, cfg.Compiler.Verify)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "@daily", cfg.Scheduler.Schedule)
	assert.Equal(t, 10*time.Second, cfg.Scheduler.LeaseTTL)
	assert.Equal(t, map[string]int{"plants:compile": 10}, cfg.Queues())
	require.NoError(t, cfg.Validate())

	t.Run("environment overrides sources", func(t *testing.T) {
		t.Setenv(compiler.SourcesPathEnv, "/override")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/override", cfg.Compiler.SourcesPath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
