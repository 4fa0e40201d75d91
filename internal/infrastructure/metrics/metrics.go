// Package metrics exposes the console's Prometheus collectors.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the console records.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	staleResultsTotal *prometheus.CounterVec
	mutationsTotal    *prometheus.CounterVec
}

// New creates the collectors on a private registry together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "console",
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "console",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		upstreamRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "upstream_requests_total",
			Help:      "Marketplace API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		upstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "console",
			Name:      "upstream_request_duration_seconds",
			Help:      "Marketplace API call latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		staleResultsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "stale_results_discarded_total",
			Help:      "Tab loads whose results were dropped because a newer load started.",
		}, []string{"screen"}),
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "mutations_total",
			Help:      "Admin mutations by resource, action and outcome.",
		}, []string{"resource", "action", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.upstreamRequestsTotal,
		m.upstreamRequestDuration,
		m.staleResultsTotal,
		m.mutationsTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RequestStarted marks an HTTP request in flight and returns the func that
// records its completion.
func (m *Metrics) RequestStarted() func(method, path string, status int) {
	if m == nil {
		return func(string, string, int) {}
	}
	m.httpInFlight.Inc()
	start := time.Now()
	return func(method, path string, status int) {
		code := strconv.Itoa(status)
		m.httpRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
		m.httpInFlight.Dec()
	}
}

// ObserveUpstream records one marketplace API call.
func (m *Metrics) ObserveUpstream(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.upstreamRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// StaleDiscarded counts a load result that lost the race to a newer load.
func (m *Metrics) StaleDiscarded(screen string) {
	if m == nil {
		return
	}
	m.staleResultsTotal.WithLabelValues(screen).Inc()
}

// Mutation records the outcome of an admin create/update/delete/assign.
func (m *Metrics) Mutation(resource, action string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.mutationsTotal.WithLabelValues(resource, action, outcome).Inc()
}

var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// CanonicalPath replaces numeric path segments with ":id" so label
// cardinality stays bounded when the router has no matched route.
func CanonicalPath(path string) string {
	if path == "" {
		return "/"
	}
	for numericSegment.MatchString(path) {
		path = numericSegment.ReplaceAllString(path, "/:id$1")
	}
	return path
}
