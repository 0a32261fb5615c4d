package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idesignres/iisim/internal/testutil"
	"github.com/idesignres/iisim/pkg/compiler"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompiler(t *testing.T, cfg *Config) *compiler.Compiler {
	t.Helper()

	c, err := compiler.New(logrus.New(), &cfg.Compiler)
	require.NoError(t, err)
	return c
}

func TestNewService(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) { c.Concurrency = 5 },
		},
		{
			name:    "invalid config - zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: true,
		},
		{
			name:    "invalid config - negative concurrency",
			mutate:  func(c *Config) { c.Concurrency = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			c := newTestCompiler(t, cfg)
			tt.mutate(cfg)

			svc, err := NewService(logrus.New(), cfg, c, &redis.Options{})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConcurrency)
				return
			}

			require.NoError(t, err)
			assert.False(t, svc.Running())
		})
	}
}

func TestServiceStartStop(t *testing.T) {
	_, opt := testutil.NewMiniredisOptions(t)

	cfg := defaultConfig(t)
	cfg.Concurrency = 1

	svc, err := NewService(logrus.New(), cfg, newTestCompiler(t, cfg), opt)
	require.NoError(t, err)

	require.NoError(t, svc.Start(context.Background()))
	assert.True(t, svc.Running())

	require.NoError(t, svc.Stop())
	assert.False(t, svc.Running())

	// Stopping twice is a no-op
	require.NoError(t, svc.Stop())
}

type stubService struct {
	running bool
}

func (s *stubService) Start(_ context.Context) error {
	s.running = true
	return nil
}

func (s *stubService) Stop() error {
	s.running = false
	return nil
}

func (s *stubService) Running() bool {
	return s.running
}

func TestHealthHandler(t *testing.T) {
	app := NewApplication(defaultConfig(t), logrus.New())
	handler := app.healthHandler()

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	assert.Equal(t, http.StatusOK, get("/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/ready").Code)

	worker := &stubService{}
	app.worker = worker
	assert.Equal(t, http.StatusServiceUnavailable, get("/ready").Code)

	require.NoError(t, worker.Start(context.Background()))
	rec := get("/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())
}

func TestApplicationStartInvalidConfig(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Concurrency = 0

	app := NewApplication(cfg, logrus.New())
	require.ErrorIs(t, app.Start(context.Background()), ErrInvalidConcurrency)
}
