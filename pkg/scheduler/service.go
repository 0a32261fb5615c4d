package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/observability"
	"github.com/idesignres/iisim/pkg/tasks"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	// ErrSchedulerDisabled is returned when a service is created from a disabled configuration
	ErrSchedulerDisabled = errors.New("rebuild schedule is disabled")
)

// Enqueuer enqueues compile tasks
type Enqueuer interface {
	EnqueueCompile(payload tasks.CompilePayload, opts ...asynq.Option) error
}

// Service defines the public interface for the rebuild scheduler
type Service interface {
	// Start registers the rebuild schedule and joins leader election
	Start(ctx context.Context) error

	// Stop waits for a running rebuild and leaves leader election
	Stop() error

	// Rebuild enqueues a compile task for every industry when this instance leads
	Rebuild(ctx context.Context) error
}

type service struct {
	log logrus.FieldLogger
	cfg *Config

	sourcesPath string
	enqueuer    Enqueuer
	elector     LeaderElector

	mu   sync.Mutex
	cron *cron.Cron
}

// NewService creates a rebuild scheduler enqueuing every industry found below sourcesPath
func NewService(log logrus.FieldLogger, cfg *Config, sourcesPath string, enqueuer Enqueuer, elector LeaderElector) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !cfg.Enabled {
		return nil, ErrSchedulerDisabled
	}

	return &service{
		log:         log.WithField("service", "scheduler"),
		cfg:         cfg,
		sourcesPath: sourcesPath,
		enqueuer:    enqueuer,
		elector:     elector,
	}, nil
}

func (s *service) Start(ctx context.Context) error {
	if err := s.elector.Start(ctx); err != nil {
		return fmt.Errorf("failed to start leader election: %w", err)
	}

	c := cron.New(cron.WithParser(parser()), cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.cfg.Schedule, func() {
		if err := s.Rebuild(ctx); err != nil {
			s.log.WithError(err).Error("Scheduled rebuild failed")
		}
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	s.log.WithField("schedule", s.cfg.Schedule).Info("Rebuild scheduler started")

	return nil
}

func (s *service) Stop() error {
	s.mu.Lock()
	c := s.cron
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}

	if err := s.elector.Stop(); err != nil {
		return err
	}

	s.log.Info("Rebuild scheduler stopped")

	return nil
}

func (s *service) Rebuild(ctx context.Context) error {
	if !s.elector.IsLeader() {
		observability.RecordScheduledRebuild("skipped")
		s.log.Debug("Not the leader, skipping rebuild")
		return nil
	}

	dirs, err := models.NewDiscovery(s.sourcesPath).Industries()
	if err != nil {
		observability.RecordScheduledRebuild("failed")
		return fmt.Errorf("failed to discover industries: %w", err)
	}

	var (
		errs     error
		enqueued int
	)

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}

		err := s.enqueuer.EnqueueCompile(tasks.CompilePayload{
			IndustryDir: dir,
			Trigger:     tasks.TriggerSchedule,
		})

		switch {
		case err == nil:
			enqueued++
		case errors.Is(err, tasks.ErrTaskAlreadyQueued):
			s.log.WithField("industry", dir).Debug("Compile task already queued")
		default:
			errs = multierr.Append(errs, fmt.Errorf("industry %s: %w", dir, err))
		}
	}

	if errs != nil {
		observability.RecordScheduledRebuild("failed")
		return errs
	}

	observability.RecordScheduledRebuild("enqueued")

	s.log.WithFields(logrus.Fields{
		"industries": len(dirs),
		"enqueued":   enqueued,
	}).Info("Scheduled rebuild enqueued")

	return nil
}

var _ Service = (*service)(nil)
