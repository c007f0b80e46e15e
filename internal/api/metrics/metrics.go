// Package metrics defines the custom Prometheus metrics of the admin API.
// It is the single source of truth for metric names, labels and help strings.
//
// All metrics are registered with the default registry on package init via
// promauto and exposed on /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_api"

// ── Credential metrics ───────────────────────────────────────────────────────

// AuthOperationsTotal counts credential lifecycle calls.
// Labels:
//   - operation: "login", "refresh", "logout", "change_password",
//     "reset_send", "reset_confirm"
//   - result: "success" or the error kind ("bad_request", "unauthorized", …)
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of credential lifecycle operations, by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Authorization metrics ────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts guard decisions.
// Labels:
//   - operation: the route identity, "METHOD /path"
//   - result: "granted", "denied" or "unauthenticated"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Notification metrics ─────────────────────────────────────────────────────

// NotificationsTotal counts notifications by fate.
// Labels:
//   - event: the notification event name
//   - result: "delivered", "failed" or "dropped" (queue full)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications, by event and result.",
	},
	[]string{"event", "result"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures a single delivery attempt.
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of a single notification delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"event"},
)

// ResetTokensSweptTotal counts expired reset tokens removed by the sweeper.
var ResetTokensSweptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_swept_total",
		Help:      "Total number of expired reset tokens removed by the background sweeper.",
	},
)
