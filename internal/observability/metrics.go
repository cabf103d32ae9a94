// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsSubmitted counts access requests created.
	RequestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "accessdesk_access_requests_submitted_total",
		Help: "Total number of access requests submitted",
	})

	// RequestDecisions counts decisions on access requests by outcome.
	RequestDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accessdesk_access_request_decisions_total",
		Help: "Total number of access request decisions by resulting status",
	}, []string{"status"})

	// AuthFailures counts failed authentication attempts by stage.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accessdesk_auth_failures_total",
		Help: "Total number of authentication failures by stage",
	}, []string{"stage"})

	// CatalogMutations counts software catalog changes by operation.
	CatalogMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accessdesk_catalog_mutations_total",
		Help: "Total number of software catalog mutations by operation",
	}, []string{"operation"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accessdesk_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
