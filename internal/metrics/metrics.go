// Package metrics defines and registers all custom Prometheus metrics for the
// account management service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// through promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsCreatedTotal counts accounts created.
// Label:
//   - kind: the account kind (e.g. "user", "helper")
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of accounts created, by kind.",
	},
	[]string{"kind"},
)

// AccountsDeletedTotal counts accounts permanently removed.
var AccountsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of accounts deleted, by kind.",
	},
	[]string{"kind"},
)

// AccountErrorsTotal counts service errors returned to callers.
// Labels:
//   - kind: the account kind, or "recommendation" / "user_action"
//   - code: the machine-readable error code (e.g. "ACCOUNT_NOT_FOUND")
var AccountErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Total number of service errors, by kind and error code.",
	},
	[]string{"kind", "code"},
)

// ── Recommendation metrics ────────────────────────────────────────────────────

// RecommendationTransitionsTotal counts recommendation status changes.
// Label:
//   - status: the status entered ("pending" on creation, "approved", "rejected")
var RecommendationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendation_transitions_total",
		Help:      "Total number of helper recommendation status transitions.",
	},
	[]string{"status"},
)

// ApprovalCompensationsTotal counts compensating actions run after a failed approval.
// Labels:
//   - step: "delete_helper" or "unlink_helper"
//   - result: "ok" or "failed"
var ApprovalCompensationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_compensations_total",
		Help:      "Compensating actions executed after a failed approval step.",
	},
	[]string{"step", "result"},
)

// ApprovalDuration measures the full approval sequence.
// Label:
//   - outcome: "approved" or "error"
var ApprovalDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "approval_duration_seconds",
		Help:      "Duration of the helper recommendation approval sequence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ── User action metrics ───────────────────────────────────────────────────────

// ActionsQueueDepth tracks the number of actions waiting in each recorder worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActionsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "actions_queue_depth",
		Help:      "Current number of user actions pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

// ActionsRecordedTotal counts asynchronously recorded user actions.
// Label:
//   - result: "ok", "failed" or "dropped"
var ActionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_recorded_total",
		Help:      "Total number of asynchronously recorded user actions, by result.",
	},
	[]string{"result"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method, route (the echo path template), status (HTTP status code)
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
