// Package scheduler enqueues periodic rebuilds of every industry
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	// ErrScheduleRequired is returned when the schedule is enabled without a cron expression
	ErrScheduleRequired = errors.New("rebuild schedule is required when enabled")
	// ErrInvalidSchedule is returned when the cron expression cannot be parsed
	ErrInvalidSchedule = errors.New("invalid rebuild schedule")
	// ErrInvalidLease is returned when the leader lease does not outlive its renewal
	ErrInvalidLease = errors.New("leaseTTL must be greater than renewInterval")
)

// Config defines the rebuild schedule
type Config struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule" default:"@every 1h"`
	// Leader lease, only the leader enqueues rebuilds
	LeaseTTL      time.Duration `yaml:"leaseTTL" default:"10s"`
	RenewInterval time.Duration `yaml:"renewInterval" default:"3s"`
}

// Validate checks if the scheduler configuration is valid
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Schedule == "" {
		return ErrScheduleRequired
	}

	if _, err := parser().Parse(c.Schedule); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	if c.LeaseTTL <= c.RenewInterval {
		return ErrInvalidLease
	}

	return nil
}

func parser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}
