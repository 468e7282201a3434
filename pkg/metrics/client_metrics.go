package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics holds all webhook client Prometheus metrics.
type ClientMetrics struct {
	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	// Payload metrics
	ValidationRejectionsTotal prometheus.Counter
	EmbedCharacters           prometheus.Histogram

	// Operation metrics
	MessagesCreatedTotal prometheus.Counter
	MessagesEditedTotal  prometheus.Counter
	MessagesDeletedTotal prometheus.Counter
}

var (
	defaultOnce    sync.Once
	defaultMetrics *ClientMetrics
)

// Default returns the client metrics registered against the default
// Prometheus registry. Metric names are process-global, so every client
// instrumented through the default registry shares this one set;
// registering a second set would panic.
func Default() *ClientMetrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewClientMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// NewClientMetrics creates and registers all webhook client metrics with
// the given registerer. Passing nil registers against the default
// registry; callers wanting that should prefer Default, which is safe to
// call more than once.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &ClientMetrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "discord_webhook_requests_total",
			Help: "Total number of requests sent to the Discord API",
		}, []string{"method", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "discord_webhook_request_duration_seconds",
			Help:    "Time taken for Discord API request round trips",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),

		RequestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "discord_webhook_request_errors_total",
			Help: "Total number of failed Discord API requests by error kind",
		}, []string{"kind"}),

		ValidationRejectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "discord_webhook_validation_rejections_total",
			Help: "Total number of payloads rejected locally before sending",
		}),

		EmbedCharacters: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "discord_webhook_embed_characters",
			Help:    "Aggregate embed character counts of validated messages",
			Buckets: []float64{0, 250, 500, 1000, 2000, 4000, 6000},
		}),

		MessagesCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "discord_webhook_messages_created_total",
			Help: "Total number of messages created through the webhook",
		}),

		MessagesEditedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "discord_webhook_messages_edited_total",
			Help: "Total number of messages edited through the webhook",
		}),

		MessagesDeletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "discord_webhook_messages_deleted_total",
			Help: "Total number of messages deleted through the webhook",
		}),
	}
}
