package providers

import (
	"spotter/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DestinationRemote = "remote"
	DestinationQueue  = "queue"

	FlushSuccess = "success"
	FlushFailure = "failure"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncSightingsSaved(destination string)
	IncFlushTotal(outcome string)
	ObserveFlushDuration(duration time.Duration)
	SetQueueSize(size int)
	SetOnline(online bool)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	sightingsSaved  *prometheus.CounterVec
	flushTotal      *prometheus.CounterVec
	flushDuration   prometheus.Histogram
	queueSize       prometheus.Gauge
	online          prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncSightingsSaved(destination string) {
	m.sightingsSaved.WithLabelValues(destination).Inc()
}

func (m *MetricsProvider) IncFlushTotal(outcome string) {
	m.flushTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveFlushDuration(duration time.Duration) {
	m.flushDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetQueueSize(size int) {
	m.queueSize.Set(float64(size))
}

func (m *MetricsProvider) SetOnline(online bool) {
	if online {
		m.online.Set(1)
		return
	}
	m.online.Set(0)
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "spotter_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spotter_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "spotter_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "spotter_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		sightingsSaved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "spotter_sightings_saved_total",
			Help: "Sightings saved, by destination (remote or queue)",
		}, []string{"destination"}),

		flushTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "spotter_queue_flush_total",
			Help: "Offline queue flush attempts, by outcome",
		}, []string{"outcome"}),

		flushDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "spotter_queue_flush_duration_seconds",
			Help:    "Duration of offline queue flushes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		queueSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "spotter_queue_size",
			Help: "Number of sightings waiting in the offline queue",
		}),

		online: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "spotter_remote_online",
			Help: "1 when the remote store is reachable, 0 otherwise",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncSightingsSaved(_ string)                       {}
func (n *noopMetrics) IncFlushTotal(_ string)                           {}
func (n *noopMetrics) ObserveFlushDuration(_ time.Duration)             {}
func (n *noopMetrics) SetQueueSize(_ int)                               {}
func (n *noopMetrics) SetOnline(_ bool)                                 {}
