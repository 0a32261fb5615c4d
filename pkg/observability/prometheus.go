// Package observability exposes the Prometheus metrics of iisim
package observability

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//nolint:gochecknoglobals // one metrics endpoint per process
var (
	metricsMu     sync.Mutex
	metricsServer *http.Server
)

// StartMetricsServer serves /metrics on addr. Later calls are no-ops while a
// server is running.
func StartMetricsServer(log logrus.FieldLogger, addr string) {
	metricsMu.Lock()
	defer metricsMu.Unlock()

	if metricsServer != nil {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.WithField("component", "metrics"),
	}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}
	metricsServer = srv

	go func() {
		log.WithField("addr", addr).Info("Serving metrics")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server failed")
		}
	}()
}

// StopMetricsServer shuts the metrics server down if one is running
func StopMetricsServer(ctx context.Context) error {
	metricsMu.Lock()
	srv := metricsServer
	metricsServer = nil
	metricsMu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}

// WriteToTextfile writes the current metrics in the text exposition format, for
// one-shot runs collected by the node exporter textfile collector
func WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
