// Package metrics exposes Prometheus counters for the API and the
// settlement engine.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method and status class.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warikan_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "status"})

	// RefreshesTotal counts settlement entry refreshes by outcome.
	RefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warikan_settlement_refreshes_total",
		Help: "Settlement entry refresh operations by outcome.",
	}, []string{"outcome"})

	// EntriesAdded counts entries inserted by the smart-merge reconciler.
	EntriesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warikan_settlement_entries_added_total",
		Help: "Entries inserted into draft sessions by refresh.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records a counter sample per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}
