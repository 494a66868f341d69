package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_dashboard_"

// Service constants, one per provider operation
const (
	ServiceGlobal   = "global"
	ServiceTrending = "trending"
	ServicePrices   = "prices"
	ServiceMarkets  = "markets"
)

var (
	// Global Coingecko request counter (all services)
	// Cardinality: ~4 (success, error, rate_limited, timeout)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all services",
		},
		[]string{"status"},
	)

	// Cardinality: ~16 (4 services × 4 statuses)
	ServiceCoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API per service",
		},
		[]string{"service", "status"},
	)

	// Cardinality: ~4
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	// Cardinality: ~8 (4 services × hit/miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Response cache lookups per service by result",
		},
		[]string{"service", "result"},
	)

	// Cardinality: ~4
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_invalidated_entries_total",
			Help: "Cache entries removed by explicit invalidation",
		},
		[]string{"service"},
	)

	// Cardinality: ~4
	RequestLatencyHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "request_latency_seconds",
			Help: "Latency of provider calls, cache hits included",
		},
		[]string{"service"},
	)

	// Cardinality: ~5 (dashboard panels)
	PanelRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "panel_refresh_duration_seconds",
			Help: "Time taken to refresh one dashboard panel",
		},
		[]string{"panel", "outcome"},
	)

	// Cardinality: ~5
	PanelRowsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "panel_rows",
			Help: "Number of rows currently shown by a dashboard panel",
		},
		[]string{"panel"},
	)
)

// MetricsWriter records metrics for one provider service
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordServiceCoingeckoRequest records a service-specific Coingecko API request
func (mw *MetricsWriter) RecordServiceCoingeckoRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	ServiceCoingeckoRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
	log.Debug().Str("service", mw.serviceName).Str("status", status).Msg("Metrics: Coingecko request recorded")
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}

// RecordCacheLookup records whether a lookup was served from the cache
func (mw *MetricsWriter) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(mw.serviceName, result).Inc()
}

// RecordInvalidation records entries removed by explicit invalidation
func (mw *MetricsWriter) RecordInvalidation(removed int) {
	if removed > 0 {
		CacheInvalidationsTotal.WithLabelValues(mw.serviceName).Add(float64(removed))
	}
}

// RecordLatency records how long a caller waited for a service result
func (mw *MetricsWriter) RecordLatency(start time.Time) {
	RequestLatencyHistogram.WithLabelValues(mw.serviceName).Observe(time.Since(start).Seconds())
}

// OnRequest implements the HTTP status handler used by the CoinGecko HTTP client
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordServiceCoingeckoRequest(status)
}

// OnRetry implements the HTTP status handler used by the CoinGecko HTTP client
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}

// RecordPanelRefresh records the duration and outcome of one panel refresh
func RecordPanelRefresh(panel string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	duration := time.Since(start)
	PanelRefreshDuration.WithLabelValues(panel, outcome).Observe(duration.Seconds())
	log.Debug().Str("panel", panel).Str("outcome", outcome).Dur("duration", duration).Msg("Metrics: panel refreshed")
}

// RecordPanelRows records how many rows a panel currently shows
func RecordPanelRows(panel string, rows int) {
	PanelRowsGauge.WithLabelValues(panel).Set(float64(rows))
}
