// Package metrics holds the Prometheus collectors shared by handlers,
// services and workers.
package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the dashboard backend. The
// collectors are created at package init so services can record into them
// without ordering concerns; Register exposes them.
var Metrics = struct {
	RefreshTotal       *prometheus.CounterVec
	RefreshDuration    prometheus.Histogram
	SnapshotRows       *prometheus.GaugeVec
	SnapshotGeneration *prometheus.GaugeVec
	RequestDuration    *prometheus.HistogramVec
	RequestsInFlight   prometheus.Gauge
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	ReportDuration     prometheus.Histogram
	ChatRequests       *prometheus.CounterVec
	DBPoolActive       prometheus.GaugeFunc
	DBPoolIdle         prometheus.GaugeFunc
}{
	RefreshTotal: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashtva_csv_refresh_total",
			Help: "CSV refresh attempts, by source and outcome.",
		},
		[]string{"source", "status"},
	),
	RefreshDuration: prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashtva_csv_refresh_duration_seconds",
			Help:    "Duration of CSV fetch and parse.",
			Buckets: prometheus.DefBuckets,
		},
	),
	SnapshotRows: prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashtva_snapshot_rows",
			Help: "Rows in the current snapshot, by source.",
		},
		[]string{"source"},
	),
	SnapshotGeneration: prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashtva_snapshot_generation",
			Help: "Generation of the current snapshot, by source.",
		},
		[]string{"source"},
	),
	RequestDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashtva_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	),
	RequestsInFlight: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashtva_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	),
	CacheHits: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashtva_cache_hits_total",
			Help: "Total report cache hits.",
		},
	),
	CacheMisses: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashtva_cache_misses_total",
			Help: "Total report cache misses.",
		},
	),
	ReportDuration: prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashtva_report_build_duration_seconds",
			Help:    "Duration of dashboard report aggregation.",
			Buckets: prometheus.DefBuckets,
		},
	),
	ChatRequests: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashtva_chat_requests_total",
			Help: "Chat collaborator requests, by outcome.",
		},
		[]string{"status"},
	),
}

// Register registers all collectors with the default registry. Call once
// at startup. pool may be nil when no database is configured.
func Register(pool *pgxpool.Pool) {
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "dashtva_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "dashtva_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.RefreshTotal,
		Metrics.RefreshDuration,
		Metrics.SnapshotRows,
		Metrics.SnapshotGeneration,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.ReportDuration,
		Metrics.ChatRequests,
	)
}
