// Package api serves the industries found under the sources path over HTTP
package api

import (
	"errors"
	"time"
)

// Static errors
var (
	ErrAPIAddrRequired        = errors.New("api address is required when the api is enabled")
	ErrInvalidShutdownTimeout = errors.New("api shutdown timeout must be positive")
)

// Config controls the HTTP API started next to the worker
type Config struct {
	Enabled         bool          `yaml:"enabled" default:"false"`
	Addr            string        `yaml:"addr" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"10s"`
}

// Validate checks the listen address and shutdown timeout of an enabled api
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Addr == "" {
		return ErrAPIAddrRequired
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	return nil
}
