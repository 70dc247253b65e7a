package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the engine
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Store Metrics
	StoreWritesTotal       prometheus.CounterVec
	StoreLoadFailuresTotal prometheus.Counter

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	LettersSentTotal   prometheus.Counter
	RepliesTotal       prometheus.Counter
	AdsServedTotal     prometheus.Counter
	AdRequestsUnfilled prometheus.Counter
	AdImpressionsTotal prometheus.Counter
	AdClicksTotal      prometheus.Counter
	PayoutRunsTotal    prometheus.CounterVec
}

var (
	defaultOnce sync.Once
	defaultReg  *MetricsRegistry
)

// Default returns the process-wide registry, creating it on first use.
// promauto registers with the global Prometheus registerer, so the registry
// must only ever be built once per process.
func Default() *MetricsRegistry {
	defaultOnce.Do(func() { defaultReg = newMetricsRegistry() })
	return defaultReg
}

// newMetricsRegistry initializes a MetricsRegistry with all metrics
func newMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kholachithi_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kholachithi_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kholachithi_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Store Metrics
		StoreWritesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kholachithi_store_writes_total",
				Help: "Total full-collection write-throughs by collection key",
			},
			[]string{"collection"},
		),
		StoreLoadFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kholachithi_store_load_failures_total",
				Help: "Collection loads that fell back to seed data",
			},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kholachithi_cache_hits_total",
				Help: "Cache hits by cache key prefix",
			},
			[]string{"prefix"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kholachithi_cache_misses_total",
				Help: "Cache misses by cache key prefix",
			},
			[]string{"prefix"},
		),

		// Business Metrics
		LettersSentTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kholachithi_letters_sent_total",
				Help: "Letters accepted by the engine",
			},
		),
		RepliesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kholachithi_letter_replies_total",
				Help: "Letters transitioned to REPLIED",
			},
		),
		AdsServedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kholachithi_ads_served_total",
				Help: "Ad selections that returned a creative",
			},
		),
		AdRequestsUnfilled: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kholachithi_ad_requests_unfilled_total",
				Help: "Ad selections with no eligible creative",
			},
		),
		AdImpressionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kholachithi_ad_impressions_total",
				Help: "Recorded creative impressions",
			},
		),
		AdClicksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kholachithi_ad_clicks_total",
				Help: "Recorded creative clicks",
			},
		),
		PayoutRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kholachithi_payout_runs_total",
				Help: "Batch payout calculations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
}
