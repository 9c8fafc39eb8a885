package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generation
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_generations_total",
			Help: "Generation requests by content type and result",
		},
		[]string{"content_type", "result"}, // result: success|error|empty
	)
	CompletionDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_completion_duration_seconds",
			Help:    "Latency of completion service calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
		[]string{"provider"},
	)
	CalendarRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "studio_calendar_rows",
			Help:    "Rows extracted per calendar reply",
			Buckets: []float64{0, 5, 10, 20, 25, 30, 40},
		},
	)

	// Downloads
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_exports_total",
			Help: "Downloads served by format",
		},
		[]string{"format"},
	)

	// HTTP
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		Generations,
		CompletionDurationSeconds,
		CalendarRows,
		Exports,
		HTTPRequests,
		HTTPDurationSeconds,
		Errors,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Generation
func IncGeneration(contentType, result string) {
	Generations.WithLabelValues(contentType, result).Inc()
}

func ObserveCompletion(provider string, d time.Duration) {
	CompletionDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}

func ObserveCalendarRows(n int) {
	CalendarRows.Observe(float64(n))
}

// Downloads
func IncExport(format string) {
	Exports.WithLabelValues(format).Inc()
}

// HTTP
func ObserveHTTP(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
