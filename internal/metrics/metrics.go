package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "todo", Name: "http_requests_total", Help: "Number of HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "todo", Name: "http_request_duration_seconds", Help: "HTTP request latency by method and route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
)

// RegisterCollectors registers the HTTP collectors and, when db is non-nil,
// the connection pool statistics.
func RegisterCollectors(reg prometheus.Registerer, db *sql.DB) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	if db != nil {
		reg.MustRegister(collectors.NewDBStatsCollector(db, "todo"))
	}
}
