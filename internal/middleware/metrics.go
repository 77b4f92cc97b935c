package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the HTTP server and the
// check pipeline.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ChecksTotal     *prometheus.CounterVec
	RowsProcessed   prometheus.Counter
	DuplicateRows   prometheus.Counter
}

// NewMetrics creates and registers the instruments on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "accheck_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "accheck_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "accheck_checks_total",
			Help: "Total duplicate checks by outcome.",
		}, []string{"outcome"}),
		RowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accheck_rows_processed_total",
			Help: "Total data rows examined across all checks.",
		}),
		DuplicateRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accheck_duplicate_rows_total",
			Help: "Total rows reported as duplicates across all checks.",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ChecksTotal,
		m.RowsProcessed,
		m.DuplicateRows,
	)
	return m
}

// Handler instruments HTTP requests with count and latency metrics
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordCheck records the outcome of one duplicate check
func (m *Metrics) RecordCheck(outcome string, totalProcessed, impactedCount int) {
	m.ChecksTotal.WithLabelValues(outcome).Inc()
	m.RowsProcessed.Add(float64(totalProcessed))
	m.DuplicateRows.Add(float64(impactedCount))
}
