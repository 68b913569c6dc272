package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cadence_http_requests_total",
			Help: "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cadence_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	activeHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cadence_active_habits_total",
			Help: "Number of non-archived habits",
		},
	)

	completionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cadence_completions_recorded_total",
			Help: "Total habit completions recorded",
		},
	)

	xpAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cadence_xp_awarded_total",
			Help: "Total XP awarded across all completions",
		},
	)

	achievementsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cadence_achievements_unlocked_total",
			Help: "Total achievements unlocked",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path, r.Method, statusCode).Observe(duration)
	})
}
