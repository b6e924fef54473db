package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for client-side observability. Server-side deployments
// of the client (where a scrape endpoint exists) get request rates, latency
// and refresh health for free; the CLI simply never exposes them.
var (
	// apiRequestsTotal counts backend calls by method, endpoint and status.
	// Network failures are recorded with status "0".
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiftcare_api_requests_total",
			Help: "Total number of requests to the SwiftCare backend",
		},
		[]string{"method", "endpoint", "status"},
	)

	// apiRequestDuration measures backend call latency.
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swiftcare_api_request_duration_seconds",
			Help:    "SwiftCare backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// tokenRefreshTotal counts refresh attempts by result (success, failed).
	// A rising "failed" rate means sessions are being force-logged-out.
	tokenRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiftcare_token_refresh_total",
			Help: "Total number of access token refresh attempts",
		},
		[]string{"result"},
	)

	// authAttemptsTotal counts login/signup/google attempts by result.
	authAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiftcare_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"operation", "result"},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(tokenRefreshTotal)
	prometheus.MustRegister(authAttemptsTotal)
}

// observeRequest records one backend call. A status of 0 means the request
// never completed (network failure).
func observeRequest(method, endpoint string, status int, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// observeAuthAttempt records the outcome of an auth endpoint call.
func observeAuthAttempt(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	authAttemptsTotal.WithLabelValues(operation, result).Inc()
}
