package compiler

import (
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// SourcesPathEnv overrides the configured sources directory
const SourcesPathEnv = "INDUSTRIES_PATH"

// Config contains compiler settings
type Config struct {
	// Directory holding one subdirectory per industry
	SourcesPath string `yaml:"sourcesPath" default:"Sources"`
	// Directory receiving the generated artifacts
	OutputPath string `yaml:"outputPath" default:"industries"`
	// Directory with template overrides, empty for the embedded templates
	TemplatesPath string `yaml:"templatesPath"`
	// Industries compiled in parallel by CompileAll
	Concurrency int `yaml:"concurrency" default:"4"`
	// Outcome bounds used when the outcome declares no range
	MinUnits float64 `yaml:"minUnits" default:"5"`
	MaxUnits float64 `yaml:"maxUnits" default:"1000"`
	// Check the golden test values of every document before writing
	Verify bool `yaml:"verify" default:"true"`
	// Optional textfile receiving the metrics of one-shot runs
	MetricsTextfile string `yaml:"metricsTextfile"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SourcesPath == "" {
		return ErrSourcesPathRequired
	}

	if c.OutputPath == "" {
		return ErrOutputPathRequired
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.MinUnits > c.MaxUnits {
		return ErrInvalidUnitBounds
	}

	return nil
}

// NewConfig returns a configuration holding the defaults
func NewConfig() (*Config, error) {
	config := &Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	if path := os.Getenv(SourcesPathEnv); path != "" {
		config.SourcesPath = path
	}

	return config, nil
}

// LoadConfig loads compiler configuration from a YAML file. A missing file yields the
// defaults. The INDUSTRIES_PATH environment variable takes precedence over the file.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	if path != "" {
		yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}

		if err == nil {
			if err := yaml.Unmarshal(yamlFile, config); err != nil {
				return nil, err
			}
		}
	}

	if env := os.Getenv(SourcesPathEnv); env != "" {
		config.SourcesPath = env
	}

	return config, nil
}
