// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace service. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Subscription metrics ──────────────────────────────────────────────────────

// BatchesAppliedTotal counts snapshot batches applied to the entity store.
// Label:
//   - collection: the tracked collection name (e.g. "jobs")
var BatchesAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_batches_applied_total",
		Help:      "Total number of subscription batches applied to the entity store.",
	},
	[]string{"collection"},
)

// SubscriptionRetriesTotal counts transient subscription failures that were
// retried. A failed batch is never applied; last-known-good values remain.
var SubscriptionRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_subscription_retries_total",
		Help:      "Total number of subscription errors that triggered a retry.",
	},
	[]string{"collection"},
)

// ── Write-path metrics ────────────────────────────────────────────────────────

// WritesRejectedTotal counts writes stopped by the precondition pipeline.
// Label:
//   - reason: "unauthenticated", "forbidden", "restricted", "content",
//     "validation", or "not_found"
var WritesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_rejected_total",
		Help:      "Total number of writes rejected before reaching the backend.",
	},
	[]string{"reason"},
)

// InterestRegistrationsTotal counts helper contact events.
// Label:
//   - result: "counted" (new pair) or "repeat" (idempotent replay)
var InterestRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interest_registrations_total",
		Help:      "Total number of register-interest calls, by idempotency result.",
	},
	[]string{"result"},
)

// InvariantViolationsTotal counts detected internal consistency failures
// (counter/set mismatch, orphaned comments). These indicate bugs and are
// logged loudly, never swallowed.
var InvariantViolationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invariant_violations_total",
		Help:      "Total number of detected internal consistency violations.",
	},
)
