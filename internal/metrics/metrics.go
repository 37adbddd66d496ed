package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	AuthEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskboard",
		Name:      "auth_events_total",
		Help:      "Register, login and verify attempts, by outcome.",
	}, []string{"operation", "outcome"})

	// Task metrics

	TasksByStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "taskboard",
		Name:      "tasks",
		Help:      "Stored tasks across all users, by status.",
	}, []string{"status"})

	StatsRefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "taskboard",
		Name:      "stats_refresh_duration_seconds",
		Help:      "Time taken to recount tasks by status.",
		Buckets:   prometheus.DefBuckets,
	})

	StatsRefreshFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskboard",
		Name:      "stats_refresh_failures_total",
		Help:      "Task stats refreshes that failed.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskboard",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskboard",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "taskboard",
		Name:      "http_requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})
)

func Register() {
	prometheus.MustRegister(
		AuthEventsTotal,
		TasksByStatus,
		StatsRefreshDuration,
		StatsRefreshFailuresTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
		HTTPRequestsInFlight,
	)
}

// HealthHandlers is satisfied by *health.Checker.
type HealthHandlers interface {
	LivenessHandler() http.HandlerFunc
	ReadinessHandler() http.HandlerFunc
}

// NewServer serves /metrics alongside the liveness and readiness probes on
// a port separate from the public API.
func NewServer(addr string, checker HealthHandlers) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/livez", checker.LivenessHandler())
	mux.Handle("/readyz", checker.ReadinessHandler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
