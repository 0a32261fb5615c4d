// Package redis configures the Redis connection shared by the build cache, the task
// queue and leader election
package redis

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	ErrURLRequired = errors.New("redis URL is required")
)

// Config holds Redis client configuration
type Config struct {
	URL    string `yaml:"url" default:"redis://localhost:6379/0"`
	Prefix string `yaml:"prefix" default:"iisim"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrURLRequired
	}

	if _, err := redis.ParseURL(c.URL); err != nil {
		return fmt.Errorf("invalid redis URL: %w", err)
	}

	return nil
}

// Options parses the configured URL into client options
func (c *Config) Options() (*redis.Options, error) {
	return redis.ParseURL(c.URL)
}

// PrefixKey adds the configured prefix to a Redis key
func (c *Config) PrefixKey(key string) string {
	if c.Prefix == "" {
		return key
	}

	return fmt.Sprintf("%s:%s", c.Prefix, key)
}

// PrefixQueue adds the configured prefix to an Asynq queue name
func (c *Config) PrefixQueue(queue string) string {
	if c.Prefix == "" {
		return queue
	}

	return fmt.Sprintf("%s:%s", c.Prefix, queue)
}
