package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // pprof is intentionally exposed when pprofAddr is configured
	"time"

	"github.com/idesignres/iisim/pkg/api"
	"github.com/idesignres/iisim/pkg/api/handlers"
	"github.com/idesignres/iisim/pkg/cache"
	"github.com/idesignres/iisim/pkg/compiler"
	"github.com/idesignres/iisim/pkg/observability"
	r "github.com/idesignres/iisim/pkg/redis"
	"github.com/idesignres/iisim/pkg/scheduler"
	"github.com/idesignres/iisim/pkg/tasks"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Application wires the worker service, the rebuild scheduler and the auxiliary servers
type Application struct {
	config *Config
	logger logrus.FieldLogger

	redisClient *redis.Client
	queue       *tasks.QueueManager
	worker      Service
	scheduler   scheduler.Service
	api         api.Service

	healthServer *http.Server
	pprofServer  *http.Server
}

// NewApplication creates a new worker application
func NewApplication(cfg *Config, logger logrus.FieldLogger) *Application {
	return &Application{
		config: cfg,
		logger: logger,
	}
}

// Start initializes and starts the worker application
func (a *Application) Start(ctx context.Context) error {
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.logger.Info("Starting iisim worker...")

	observability.StartMetricsServer(a.logger, a.config.MetricsAddr)

	if a.config.HealthCheckAddr != "" {
		a.startHealthCheck()
	}

	if a.config.PProfAddr != "" {
		a.startPProf()
	}

	redisOpt, err := a.config.Redis.Options()
	if err != nil {
		return fmt.Errorf("failed to setup Redis: %w", err)
	}

	a.redisClient = redis.NewClient(redisOpt)

	c, err := compiler.New(a.logger, &a.config.Compiler,
		compiler.WithCache(cache.NewManager(a.redisClient, a.config.Redis.PrefixKey(""), a.config.CacheTTL)))
	if err != nil {
		return fmt.Errorf("failed to create compiler: %w", err)
	}

	a.worker, err = NewService(a.logger, a.config, c, redisOpt)
	if err != nil {
		return err
	}

	if err := a.worker.Start(ctx); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	if a.config.Scheduler.Enabled || a.config.API.Enabled {
		a.queue = tasks.NewQueueManager(r.ToAsynq(redisOpt), a.config.Redis.PrefixQueue(tasks.QueueCompile))
	}

	if a.config.Scheduler.Enabled {
		if err := a.startScheduler(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	if a.config.API.Enabled {
		a.api = api.NewService(&a.config.API, handlers.NewServer(c, a.queue, a.config.Compiler.SourcesPath, a.logger), a.logger)
		if err := a.api.Start(ctx); err != nil {
			return fmt.Errorf("failed to start api: %w", err)
		}
	}

	a.logger.Info("Worker started successfully")

	return nil
}

func (a *Application) startScheduler(ctx context.Context) error {
	elector := scheduler.NewLeaderElector(a.logger, a.redisClient, a.config.Redis.PrefixKey("scheduler:leader"), &a.config.Scheduler)

	svc, err := scheduler.NewService(a.logger, &a.config.Scheduler, a.config.Compiler.SourcesPath, a.queue, elector)
	if err != nil {
		return err
	}

	if err := svc.Start(ctx); err != nil {
		return err
	}

	a.scheduler = svc

	return nil
}

// Stop gracefully shuts down the worker application
func (a *Application) Stop() error {
	a.logger.Info("Shutting down worker...")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	var errs []error

	if a.api != nil {
		if err := a.api.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("api: %w", err))
		}
	}

	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("scheduler: %w", err))
		}
	}

	if a.worker != nil {
		if err := a.worker.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("worker: %w", err))
		}
	}

	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close queue manager")
		}
	}

	for _, server := range []*http.Server{a.healthServer, a.pprofServer} {
		if server == nil {
			continue
		}
		if err := server.Shutdown(ctx); err != nil {
			a.logger.WithError(err).WithField("addr", server.Addr).Error("Failed to shutdown server")
		}
	}

	if err := observability.StopMetricsServer(ctx); err != nil {
		a.logger.WithError(err).Error("Failed to shutdown metrics server")
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close Redis client")
		}
	}

	return multierr.Combine(errs...)
}

func (a *Application) ready() bool {
	return a.worker != nil && a.worker.Running()
}

func (a *Application) healthHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if a.ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("READY"))
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT READY"))
		}
	})
	return mux
}

func (a *Application) startHealthCheck() {
	a.logger.WithField("addr", a.config.HealthCheckAddr).Info("Starting health check server")

	a.healthServer = &http.Server{
		Addr:              a.config.HealthCheckAddr,
		Handler:           a.healthHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := a.healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()
}

func (a *Application) startPProf() {
	a.logger.WithField("addr", a.config.PProfAddr).Info("Starting pprof server")

	a.pprofServer = &http.Server{
		Addr:              a.config.PProfAddr,
		ReadHeaderTimeout: 120 * time.Second,
	}

	go func() {
		if err := a.pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.WithError(err).Error("Pprof server failed")
		}
	}()
}
