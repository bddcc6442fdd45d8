package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dutch_auction"

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "btc_rpc_client",
		Name:      "operations_total",
		Help:      "Count of Bitcoin node RPC operations.",
	}, []string{"operation", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "btc_rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Bitcoin node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})

	passRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "passes_total",
		Help:      "Count of reconciliation passes by pass and outcome.",
	}, []string{"pass", "outcome"})
	passDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "pass_duration_seconds",
		Help:      "Duration of completed reconciliation passes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"pass"})
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "status_transitions_total",
		Help:      "Count of committed auction status transitions.",
	}, []string{"from", "to"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "listener",
		Name:      "notifications_total",
		Help:      "Count of push notifications received by topic.",
	}, []string{"topic"})
)

// Pass outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped" // another pass held the gate
)

// ObserveRPC records a single RPC call outcome and duration.
func ObserveRPC(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	rpcRequestsTotal.WithLabelValues(operation, status).Inc()
	rpcRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// ObservePass records a reconciliation pass outcome. Duration is only recorded for passes that ran.
func ObservePass(pass string, outcome string, started time.Time) {
	passRunsTotal.WithLabelValues(pass, outcome).Inc()
	if outcome != OutcomeSkipped {
		passDuration.WithLabelValues(pass).Observe(time.Since(started).Seconds())
	}
}

// ObserveTransition records a committed status transition.
func ObserveTransition(from, to string) {
	transitionsTotal.WithLabelValues(from, to).Inc()
}

// ObserveNotification records a received push notification.
func ObserveNotification(topic string) {
	notificationsTotal.WithLabelValues(topic).Inc()
}
