package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Setenv(SourcesPathEnv, "")

		config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "Sources", config.SourcesPath)
		assert.Equal(t, "industries", config.OutputPath)
		assert.Equal(t, 4, config.Concurrency)
		assert.InDelta(t, 5, config.MinUnits, 0)
		assert.InDelta(t, 1000, config.MaxUnits, 0)
		assert.True(t, config.Verify)
		require.NoError(t, config.Validate())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Setenv(SourcesPathEnv, "")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
sourcesPath: docs
outputPath: out
concurrency: 2
verify: false
`), 0o600))

		config, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "docs", config.SourcesPath)
		assert.Equal(t, "out", config.OutputPath)
		assert.Equal(t, 2, config.Concurrency)
		assert.False(t, config.Verify)
		assert.InDelta(t, 1000, config.MaxUnits, 0)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv(SourcesPathEnv, "/srv/industries")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sourcesPath: docs\n"), 0o600))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/industries", config.SourcesPath)

		config, err = NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "/srv/industries", config.SourcesPath)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("concurrency: [\n"), 0o600))

		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no sources", mutate: func(c *Config) { c.SourcesPath = "" }, wantErr: ErrSourcesPathRequired},
		{name: "no output", mutate: func(c *Config) { c.OutputPath = "" }, wantErr: ErrOutputPathRequired},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "reversed bounds", mutate: func(c *Config) { c.MinUnits = 10; c.MaxUnits = 1 }, wantErr: ErrInvalidUnitBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewConfig()
			require.NoError(t, err)

			tt.mutate(config)

			err = config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
