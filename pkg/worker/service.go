// Package worker runs the compile task worker
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	r "github.com/idesignres/iisim/pkg/redis"
	"github.com/idesignres/iisim/pkg/tasks"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Service defines the public interface for the worker service
type Service interface {
	// Start initializes and starts the worker service
	Start(ctx context.Context) error

	// Stop gracefully shuts down the worker service
	Stop() error

	// Running reports whether the task server is processing tasks
	Running() bool
}

type service struct {
	config *Config
	log    logrus.FieldLogger

	mu sync.RWMutex

	compiler tasks.Compiler
	redisOpt *redis.Options

	server *asynq.Server
}

// NewService creates a new worker service compiling tasks with c
func NewService(log logrus.FieldLogger, cfg *Config, c tasks.Compiler, redisOpt *redis.Options) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &service{
		log:      log.WithField("service", "worker"),
		config:   cfg,
		compiler: c,
		redisOpt: redisOpt,
	}, nil
}

// Start initializes and starts the worker service
func (s *service) Start(_ context.Context) error {
	handler := tasks.NewTaskHandler(s.log, s.compiler)

	queues := s.config.Queues()

	s.log.WithFields(logrus.Fields{
		"concurrency": s.config.Concurrency,
		"queues":      queues,
	}).Info("Starting worker service")

	srv := asynq.NewServer(r.ToAsynq(s.redisOpt), asynq.Config{
		Concurrency:     s.config.Concurrency,
		Queues:          queues,
		ShutdownTimeout: s.config.ShutdownTimeout,
		Logger:          s.log.WithField("component", "asynq"),
		LogLevel:        asynq.WarnLevel,
	})

	mux := asynq.NewServeMux()
	for taskType, handlerFunc := range handler.Routes() {
		mux.HandleFunc(taskType, handlerFunc)
	}

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start task server: %w", err)
	}

	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	s.log.Info("Worker service started successfully")

	return nil
}

// Stop gracefully shuts down the worker service
func (s *service) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	if srv != nil {
		srv.Shutdown()
	}

	s.log.Info("Worker service stopped successfully")

	return nil
}

func (s *service) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.server != nil
}

var _ Service = (*service)(nil)
