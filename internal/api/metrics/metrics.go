// Package metrics defines and registers all custom Prometheus metrics for the
// member portal. It is the single source of truth for metric names, labels,
// and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges performed by the session
// manager on behalf of live sessions.
// Label:
//   - result: "success" or "failure"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access-token refreshes, by result.",
	},
	[]string{"result"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileFetchesTotal counts full-profile assemblies.
// Label:
//   - result: "success", "partial" (a secondary fetch degraded), or "failure"
var ProfileFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_fetches_total",
		Help:      "Total number of unified profile fetches, by result.",
	},
	[]string{"result"},
)

// ── Medical record metrics ────────────────────────────────────────────────────

// MedicalEntriesTotal counts history entries appended to the record store.
// Label:
//   - entry_type: the medical entry type (e.g. "injury_assessment")
var MedicalEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "medical_entries_total",
		Help:      "Total number of medical history entries recorded, by entry type.",
	},
	[]string{"entry_type"},
)

// SuspensionChangesTotal counts suspension slot updates.
// Label:
//   - action: "set" or "cleared"
var SuspensionChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suspension_changes_total",
		Help:      "Total number of suspension slot changes, by action.",
	},
	[]string{"action"},
)

// PassViewsTotal counts public medical-pass renders.
var PassViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pass_views_total",
		Help:      "Total number of public medical pass views.",
	},
)
