// Package metrics defines all custom Prometheus metrics for the task
// tracker. It is the single source of truth for metric names, labels,
// and help strings; metrics self-register via promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasktracker"

// TasksCreatedTotal counts successfully created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TaskMutationsTotal counts successful task mutations.
// Label:
//   - operation: "update", "update_status", or "delete"
var TaskMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_mutations_total",
		Help:      "Total number of successful task mutations, by operation.",
	},
	[]string{"operation"},
)

// TrackingWriteFailuresTotal counts audit writes that failed after a
// successful task mutation. These are best-effort by design, so a
// non-zero value here is the only visible trace of a lost audit entry.
var TrackingWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_write_failures_total",
		Help:      "Total number of tracking entries that failed to persist.",
	},
)

// AuthFailuresTotal counts rejected requests at the auth gate.
// Label:
//   - reason: "missing_header", "malformed_header", or "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)
