package cmd

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/idesignres/iisim/pkg/compiler"
	"github.com/idesignres/iisim/pkg/redis"
	"gopkg.in/yaml.v3"
)

// CLIConfig represents the configuration shared by the one-shot commands
type CLIConfig struct {
	// Compiler configuration
	Compiler compiler.Config `yaml:"compiler"`

	// Redis configuration, only needed for enqueue and the build cache
	Redis redis.Config `yaml:"redis"`

	// Use the Redis build cache for one-shot compilations
	BuildCache bool `yaml:"buildCache"`
}

// Validate validates the CLI configuration
func (c *CLIConfig) Validate() error {
	if err := c.Compiler.Validate(); err != nil {
		return fmt.Errorf("compiler: %w", err)
	}

	if c.BuildCache {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	return nil
}

// LoadCLIConfig loads CLI configuration from a YAML file. A missing file yields the
// defaults, and INDUSTRIES_PATH overrides the sources directory either way.
func LoadCLIConfig(path string) (*CLIConfig, error) {
	if path == "" {
		path = "config.yaml"
	}

	config := &CLIConfig{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if err == nil {
		if err := yaml.Unmarshal(yamlFile, config); err != nil {
			return nil, err
		}
	}

	if env := os.Getenv(compiler.SourcesPathEnv); env != "" {
		config.Compiler.SourcesPath = env
	}

	return config, nil
}
