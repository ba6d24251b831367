// Package metrics holds the Prometheus collectors recorded during an audit run.
//
// saintcloud is a short-lived CLI, so nothing is served over HTTP. The
// collectors live in a private [Registry] that the CLI can dump in the node
// exporter textfile format with [WriteTextfile].
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every saintcloud collector.
var Registry = prometheus.NewRegistry()

var (
	// Google API metrics
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saintcloud",
			Subsystem: "gcp",
			Name:      "api_calls_total",
			Help:      "Total number of Google API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "saintcloud",
			Subsystem: "gcp",
			Name:      "api_latency_seconds",
			Help:      "Latency of Google API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms to ~6s
		},
		[]string{"operation"},
	)

	// Aggregation metrics
	stageRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saintcloud",
			Subsystem: "aggregate",
			Name:      "stage_requests_total",
			Help:      "Total number of listing requests issued by aggregation stage",
		},
		[]string{"stage"},
	)

	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "saintcloud",
			Subsystem: "aggregate",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each aggregation stage in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
		},
		[]string{"stage"},
	)

	// Audit results
	orphanedVersions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "saintcloud",
			Subsystem: "audit",
			Name:      "orphaned_versions",
			Help:      "Number of versions without instances by project",
		},
		[]string{"project"},
	)

	deletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saintcloud",
			Subsystem: "audit",
			Name:      "deletions_total",
			Help:      "Total number of version deletions by result",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		apiCallsTotal,
		apiLatency,
		stageRequestsTotal,
		stageDuration,
		orphanedVersions,
		deletionsTotal,
	)
}

// Result label values.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// RecordAPICall records one Google API call.
func RecordAPICall(operation, result string, latency time.Duration) {
	apiCallsTotal.WithLabelValues(operation, result).Inc()
	apiLatency.WithLabelValues(operation).Observe(latency.Seconds())
}

// RecordStage records one completed aggregation stage.
func RecordStage(stage string, requests int, d time.Duration) {
	stageRequestsTotal.WithLabelValues(stage).Add(float64(requests))
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordOrphans sets the number of orphaned versions found in a project.
func RecordOrphans(project string, count int) {
	orphanedVersions.WithLabelValues(project).Set(float64(count))
}

// RecordDeletion records the outcome of one version deletion.
func RecordDeletion(result string) {
	deletionsTotal.WithLabelValues(result).Inc()
}

// WriteTextfile writes the current state of Registry to path in the
// Prometheus text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
