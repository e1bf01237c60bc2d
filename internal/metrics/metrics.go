// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "socialhub"

var (
	// Labels: operation (send, accept, reject, cancel), outcome
	friendTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "friends",
		Name:      "transitions_total",
		Help:      "Friend workflow operations by outcome",
	}, []string{"operation", "outcome"})

	// Labels: type
	notificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifications",
		Name:      "created_total",
		Help:      "Notifications appended by type",
	}, []string{"type"})

	// Labels: operation
	txRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "tx_retries_total",
		Help:      "Transactions retried after a unique constraint collision",
	}, []string{"operation"})

	// Labels: method, route, status
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route", "status"})
)

func RecordFriendTransition(operation, outcome string) {
	friendTransitions.WithLabelValues(operation, outcome).Inc()
}

func RecordNotificationCreated(notificationType string) {
	notificationsCreated.WithLabelValues(notificationType).Inc()
}

func RecordTxRetry(operation string) {
	txRetries.WithLabelValues(operation).Inc()
}

func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
