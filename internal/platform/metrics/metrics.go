package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devpair_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "devpair_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Domain events, labelled by kind: user_registered, project_created,
	// pairing_request_created, pairing_request_<status>, comment_created.
	DomainEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devpair_domain_events_total",
			Help: "Total number of domain mutations by kind",
		},
		[]string{"kind"},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devpair_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devpair_auth_failures_total",
			Help: "Authentication failures by reason",
		},
		[]string{"reason"},
	)
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func IncDomainEvent(kind string) {
	DomainEvents.WithLabelValues(kind).Inc()
}

func IncNotification(notificationType string) {
	NotificationsCreated.WithLabelValues(notificationType).Inc()
}

func IncAuthFailure(reason string) {
	AuthFailures.WithLabelValues(reason).Inc()
}
