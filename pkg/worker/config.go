package worker

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/idesignres/iisim/pkg/api"
	"github.com/idesignres/iisim/pkg/compiler"
	"github.com/idesignres/iisim/pkg/redis"
	"github.com/idesignres/iisim/pkg/scheduler"
	"github.com/idesignres/iisim/pkg/tasks"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConcurrency is returned when concurrency is not positive
	ErrInvalidConcurrency = errors.New("concurrency must be positive")
	// ErrInvalidShutdownTimeout is returned when the shutdown timeout is not positive
	ErrInvalidShutdownTimeout = errors.New("shutdownTimeout must be positive")
	// ErrMetricsAddrRequired is returned when no metrics address is configured
	ErrMetricsAddrRequired = errors.New("metricsAddr is required")
)

// Config contains worker settings
type Config struct {
	Logging         string `yaml:"logging" default:"info"`
	MetricsAddr     string `yaml:"metricsAddr" default:":9090"`
	HealthCheckAddr string `yaml:"healthCheckAddr,omitempty"`
	PProfAddr       string `yaml:"pprofAddr,omitempty"`

	// Compile tasks processed in parallel
	Concurrency     int           `yaml:"concurrency" default:"10"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"30s"`
	// Lifetime of build cache entries, zero keeps them forever
	CacheTTL time.Duration `yaml:"cacheTTL" default:"24h"`

	Redis     redis.Config     `yaml:"redis"`
	Compiler  compiler.Config  `yaml:"compiler"`
	Scheduler scheduler.Config `yaml:"scheduler"`
	API       api.Config       `yaml:"api"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if c.MetricsAddr == "" {
		return ErrMetricsAddrRequired
	}

	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := c.Compiler.Validate(); err != nil {
		return fmt.Errorf("compiler: %w", err)
	}

	if err := c.Scheduler.Validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}

// Queues returns the asynq queues the worker consumes
func (c *Config) Queues() map[string]int {
	return map[string]int{
		c.Redis.PrefixQueue(tasks.QueueCompile): 10,
	}
}

// LoadConfig loads the worker configuration from a YAML file on top of the defaults.
// The INDUSTRIES_PATH environment variable takes precedence over the file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "worker.yaml"
	}

	config := &Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	if env := os.Getenv(compiler.SourcesPathEnv); env != "" {
		config.Compiler.SourcesPath = env
	}

	return config, nil
}
