// Package metrics defines and registers all custom Prometheus metrics for the
// courier front-end service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "courierfront"

// ── Wizard metrics ────────────────────────────────────────────────────────────

// WizardTransitionsTotal counts wizard step changes.
// Labels:
//   - from: step name before the transition (e.g. "package")
//   - outcome: "advanced", "rejected", "retreated", "reset"
var WizardTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_transitions_total",
		Help:      "Total number of booking wizard transitions, by origin step and outcome.",
	},
	[]string{"from", "outcome"},
)

// PriceQueriesTotal counts price queries against the backend.
// Label:
//   - result: "single", "options", "skipped", "error"
var PriceQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_queries_total",
		Help:      "Total number of price queries, labelled by result shape.",
	},
	[]string{"result"},
)

// BookingSubmissionsTotal counts booking submissions.
// Label:
//   - result: "created", "identity_required", "failed"
var BookingSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_submissions_total",
		Help:      "Total number of booking submissions, labelled by result.",
	},
	[]string{"result"},
)

// ── Tracking metrics ──────────────────────────────────────────────────────────

// ActiveMonitors tracks the number of running live tracking monitors.
var ActiveMonitors = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tracking_monitors_active",
		Help:      "Current number of live tracking monitors.",
	},
)

// MonitorTicksTotal counts monitor refreshes.
// Label:
//   - result: "rendered", "stale", "error"
var MonitorTicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_monitor_ticks_total",
		Help:      "Total number of live tracking refreshes, labelled by result.",
	},
	[]string{"result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures calls to external HTTP services.
// Labels:
//   - upstream: "backend", "geocoder", "pincode"
//   - status: HTTP status code, or "error" on transport failure
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to upstream services.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"upstream", "status"},
)

// LookupCacheTotal counts lookup cache decisions.
// Labels:
//   - namespace: "geocode" or "pincode"
//   - result: "hit" or "miss"
var LookupCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_cache_total",
		Help:      "Total number of lookup cache checks, labelled by namespace and result.",
	},
	[]string{"namespace", "result"},
)

// ActiveWorkspaces tracks sessions holding live page state.
var ActiveWorkspaces = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "workspaces_active",
		Help:      "Current number of sessions with in-memory page state.",
	},
)
