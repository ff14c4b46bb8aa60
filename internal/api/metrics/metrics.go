// Package metrics defines and registers all custom Prometheus metrics for the
// lead distribution API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package init, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leadflow"

// UploadsTotal counts CSV upload attempts.
// Label:
//   - result: "ok" (distributed), "rejected" (bad headers, no valid rows, or
//     no agents), or "error" (storage or read failure)
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of CSV uploads, labelled by result.",
	},
	[]string{"result"},
)

// RowsTotal counts CSV data rows across all uploads.
// Label:
//   - outcome: "accepted" (distributed as a lead) or "dropped" (failed row
//     validation)
var RowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_total",
		Help:      "Total number of CSV rows processed, labelled by outcome.",
	},
	[]string{"outcome"},
)

// LeadsDistributedTotal counts leads assigned to agents.
var LeadsDistributedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_distributed_total",
		Help:      "Total number of leads distributed to agents.",
	},
)

// UploadDuration measures the full ingest pipeline for one upload, from
// file handoff to bulk insert.
var UploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_duration_seconds",
		Help:      "Duration of CSV parsing, validation, and distribution.",
		Buckets:   prometheus.DefBuckets,
	},
)
