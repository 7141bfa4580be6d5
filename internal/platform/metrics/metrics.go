package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// SolverCalls counts optimizer calls by outcome (ok, upstream_error, throttled, malformed)
	SolverCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solver_calls_total", Help: "Tour optimizer calls by outcome."},
		[]string{"outcome"},
	)
	// SolverDuration tracks optimizer round-trip latency in seconds
	SolverDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "solver_call_duration_seconds", Help: "Tour optimizer round-trip latency in seconds.", Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120}},
	)
	// SkippedLocations counts location rows dropped for missing coordinates
	SkippedLocations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "visit_rows_skipped_total", Help: "Location rows skipped because latitude or longitude is missing."},
	)
	// ProblemSize reports the stop and vehicle counts of the last assembled problem
	ProblemSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "routing_problem_size", Help: "Stops and vehicles in the last assembled routing problem."},
		[]string{"kind"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the service collectors on Registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolverCalls)
		Registry.MustRegister(SolverDuration)
		Registry.MustRegister(SkippedLocations)
		Registry.MustRegister(ProblemSize)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler serves the Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
