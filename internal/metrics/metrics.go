package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	sourceFetches    *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	comparisonsTotal *prometheus.CounterVec
	snapshotsSaved   *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.sourceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_source_fetches_total",
			Help: "Total number of price source fetches",
		},
		[]string{"source", "status"},
	)
	r.fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketlens_fetch_duration_seconds",
			Help:    "Price source fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
	r.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_cache_lookups_total",
			Help: "Total number of series cache lookups",
		},
		[]string{"result"},
	)
	r.comparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_comparisons_total",
			Help: "Total number of comparison computations",
		},
		[]string{"kind"},
	)
	r.snapshotsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_snapshots_saved_total",
			Help: "Total number of series snapshots archived",
		},
		[]string{"status"},
	)

	reg.MustRegister(r.sourceFetches)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.cacheLookups)
	reg.MustRegister(r.comparisonsTotal)
	reg.MustRegister(r.snapshotsSaved)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordFetch records a price source fetch.
func (r *Registry) RecordFetch(source, status string, duration float64) {
	r.sourceFetches.WithLabelValues(source, status).Inc()
	r.fetchDuration.WithLabelValues(source).Observe(duration)
}

// RecordCacheLookup records a cache hit or miss.
func (r *Registry) RecordCacheLookup(hit bool) {
	if hit {
		r.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	r.cacheLookups.WithLabelValues("miss").Inc()
}

// RecordComparison records a comparison computation by kind.
func (r *Registry) RecordComparison(kind string) {
	r.comparisonsTotal.WithLabelValues(kind).Inc()
}

// RecordSnapshot records an archive write.
func (r *Registry) RecordSnapshot(status string) {
	r.snapshotsSaved.WithLabelValues(status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
