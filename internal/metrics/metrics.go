// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EntriesLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strainlog_entries_logged_total",
			Help: "Total number of entries appended to the log",
		},
	)

	Recommendations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "strainlog_recommendations_total",
			Help: "Total number of recommendation requests served",
		},
	)

	Imports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainlog_imports_total",
			Help: "Total number of document imports by result",
		},
		[]string{"result"}, // "success", "invalid", "error"
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strainlog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strainlog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordEntryLogged counts one appended entry.
func RecordEntryLogged() {
	EntriesLogged.Inc()
}

// RecordRecommendation counts one served recommendation.
func RecordRecommendation() {
	Recommendations.Inc()
}

// RecordImport counts an import attempt under result.
func RecordImport(result string) {
	Imports.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
