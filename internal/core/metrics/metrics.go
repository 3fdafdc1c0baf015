package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookingbot"

// Message outcomes.
const (
	OutcomeHandled     = "handled"
	OutcomeRateLimited = "rate_limited"
	OutcomeIgnored     = "ignored"
	OutcomeError       = "error"
)

// AI outcomes.
const (
	AISuccess  = "success"
	AIRetry    = "retry"
	AIFallback = "fallback"
	AIApology  = "apology"
)

var messagesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_total",
		Help:      "Inbound messages by outcome",
	},
	[]string{"outcome"},
)

var aiRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "AI completion attempts and fallbacks",
	},
	[]string{"provider", "outcome"},
)

var aiLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_latency_seconds",
		Help:      "Latency of AI completions",
		Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 8, 10, 15, 20, 30},
	},
	[]string{"provider"},
)

var bookingsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Bookings written to the ledger",
	},
)

func init() {
	prometheus.MustRegister(messagesTotal, aiRequestsTotal, aiLatency, bookingsTotal)
}

// Register adds the collectors to a non-default registry.
func Register(reg prometheus.Registerer) {
	if reg == nil || reg == prometheus.DefaultRegisterer {
		return
	}
	reg.MustRegister(messagesTotal, aiRequestsTotal, aiLatency, bookingsTotal)
}

func Message(outcome string) {
	messagesTotal.WithLabelValues(outcome).Inc()
}

func AIRequest(provider, outcome string) {
	aiRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

func ObserveAILatency(provider string, d time.Duration) {
	aiLatency.WithLabelValues(provider).Observe(d.Seconds())
}

func Booking() {
	bookingsTotal.Inc()
}
