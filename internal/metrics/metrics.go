// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blinkshare"

var (
	PaymentVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_verifications_total",
		Help:      "Payment confirmation checks by result (confirmed, rejected, error).",
	}, []string{"result"})

	ReconcilerRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciler_runs_total",
		Help:      "Completed reconciler passes by status.",
	}, []string{"status"})

	ReconcilerActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciler_actions_total",
		Help:      "Per-purchase reconciler outcomes.",
	}, []string{"action"})

	ReconcilerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reconciler_run_duration_seconds",
		Help:      "Wall time of a reconciler pass.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	RoleGrants = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_grants_total",
		Help:      "Role grants attempted after a confirmed payment, by status.",
	}, []string{"status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status class.",
	}, []string{"method", "route", "status"})
)

// Reconciler action labels.
const (
	ActionReminder3d     = "reminder_3d"
	ActionReminder1d     = "reminder_1d"
	ActionExpired        = "expired"
	ActionRevokeFailed   = "revoke_failed"
	ActionSkippedRenewal = "skipped_renewal"
	ActionRowError       = "row_error"
)
