package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Outbox events handed to the broker, by event and result",
		},
		[]string{"event", "result"},
	)

	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Register, login and logout attempts by outcome",
		},
		[]string{"op", "result"},
	)

	// Revocation lookups that failed and let the token through.
	RevocationCheckFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_revocation_check_failures_total",
			Help: "Revocation list lookups that could not reach the store",
		},
	)

	ImageUploadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_upload_bytes",
			Help:    "Size of images written to object storage",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 6),
		},
		[]string{"prefix"},
	)
)

// Result labels an outcome for the counters above.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
