package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// CompilationsTotal tracks the total number of industry compilations
	CompilationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iisim_compilations_total",
			Help: "Total number of industry compilations",
		},
		[]string{"industry", "status"}, // status: success, failed, cached
	)

	// CompilationDuration measures compilation duration in seconds
	CompilationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "iisim_compilation_duration_seconds",
			Help:    "Industry compilation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"industry", "status"},
	)

	// CompilationsRunning tracks the number of compilations in progress
	CompilationsRunning = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "iisim_compilations_running",
			Help: "Number of industry compilations in progress",
		},
		[]string{"industry"},
	)

	// IndustryProcesses tracks the number of processes of the last compiled industry
	IndustryProcesses = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "iisim_industry_processes",
			Help: "Number of processes in the last compilation of the industry",
		},
		[]string{"industry"},
	)

	// ArtifactBytes tracks the size of the last generated artifact
	ArtifactBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "iisim_artifact_bytes",
			Help: "Size of the last generated artifact in bytes",
		},
		[]string{"industry"},
	)

	// GoldenChecksTotal counts golden value verifications
	GoldenChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iisim_golden_checks_total",
			Help: "Total number of golden value verifications",
		},
		[]string{"industry", "result"}, // result: passed, failed
	)

	// TasksEnqueued counts total number of compile tasks enqueued
	TasksEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iisim_tasks_enqueued_total",
			Help: "Total number of compile tasks enqueued",
		},
		[]string{"industry", "trigger"}, // trigger: manual, schedule
	)

	// BuildCacheHits tracks build cache hits
	BuildCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iisim_build_cache_hits_total",
			Help: "Total number of build cache hits",
		},
		[]string{"industry"},
	)

	// BuildCacheMisses tracks build cache misses
	BuildCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iisim_build_cache_misses_total",
			Help: "Total number of build cache misses",
		},
		[]string{"industry"},
	)

	// ScheduledRebuildsTotal counts rebuild schedule ticks
	ScheduledRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iisim_scheduled_rebuilds_total",
			Help: "Total number of scheduled rebuild runs",
		},
		[]string{"status"}, // status: enqueued, skipped, failed
	)

	// SchedulerLeader is 1 while this instance owns the rebuild schedule
	SchedulerLeader = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "iisim_scheduler_leader",
			Help: "Whether this instance is the rebuild scheduler leader",
		},
	)

	// ErrorsTotal counts total number of errors
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iisim_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordCompilationStart records the start of a compilation
func RecordCompilationStart(industry string) {
	CompilationsRunning.WithLabelValues(industry).Inc()
}

// RecordCompilationComplete records compilation completion
func RecordCompilationComplete(industry, status string, duration float64) {
	CompilationsRunning.WithLabelValues(industry).Dec()
	CompilationsTotal.WithLabelValues(industry, status).Inc()
	CompilationDuration.WithLabelValues(industry, status).Observe(duration)
}

// RecordArtifact records the shape of a generated artifact
func RecordArtifact(industry string, processes, size int) {
	IndustryProcesses.WithLabelValues(industry).Set(float64(processes))
	ArtifactBytes.WithLabelValues(industry).Set(float64(size))
}

// RecordGoldenCheck records a golden value verification
func RecordGoldenCheck(industry, result string) {
	GoldenChecksTotal.WithLabelValues(industry, result).Inc()
}

// RecordTaskEnqueued records task enqueue
func RecordTaskEnqueued(industry, trigger string) {
	TasksEnqueued.WithLabelValues(industry, trigger).Inc()
}

// RecordBuildCacheHit records a build cache hit
func RecordBuildCacheHit(industry string) {
	BuildCacheHits.WithLabelValues(industry).Inc()
}

// RecordBuildCacheMiss records a build cache miss
func RecordBuildCacheMiss(industry string) {
	BuildCacheMisses.WithLabelValues(industry).Inc()
}

// RecordScheduledRebuild records a rebuild schedule tick
func RecordScheduledRebuild(status string) {
	ScheduledRebuildsTotal.WithLabelValues(status).Inc()
}

// RecordSchedulerLeader records leadership changes of the rebuild scheduler
func RecordSchedulerLeader(isLeader bool) {
	if isLeader {
		SchedulerLeader.Set(1)
		return
	}
	SchedulerLeader.Set(0)
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
