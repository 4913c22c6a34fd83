// Package metrics exposes Prometheus counters for creation events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	usersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "usermanager_users_created_total",
		Help: "Total number of users created",
	})
	projectsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "usermanager_projects_created_total",
		Help: "Total number of external projects created",
	})
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "usermanager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// IncUsersCreated increments the user creation counter. Called only after a
// successful creation; the counter never goes down.
func IncUsersCreated() {
	usersCreated.Inc()
}

// IncProjectsCreated increments the project link creation counter.
func IncProjectsCreated() {
	projectsCreated.Inc()
}

// ObserveRequest records one HTTP request duration.
func ObserveRequest(method, path, status string, seconds float64) {
	httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}
