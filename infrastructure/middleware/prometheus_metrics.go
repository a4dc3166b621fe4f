// Package middleware provides cross-cutting concerns for the tally engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-ballot/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// It provides real-time monitoring of simulation throughput, input validation
// failures, and per-method execution performance for the tally engine.
type PrometheusMetrics struct {
	tallyRuns          *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	ballotsPerRun      *prometheus.HistogramVec
	executionLatency   *prometheus.HistogramVec
	operationCounter   *prometheus.CounterVec
	systemGauges       *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and registers
// all required metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a PrometheusMetrics instance registered
// against the provided registerer. Tests use this with a private registry to
// avoid duplicate registration across instances.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		// Simulation-level metrics.
		tallyRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tally_runs_total",
				Help: "Total number of completed simulation runs.",
			},
			[]string{"election"},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "validation_failures_total",
				Help: "Total number of requests rejected during input validation.",
			},
			[]string{"stage"},
		),
		ballotsPerRun: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ballots_per_run",
				Help:    "Distribution of total ballot weight per simulation run.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"election"},
		),

		// General execution metrics for comprehensive observability.
		executionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tally_execution_duration_seconds",
				Help:    "Execution time of tally engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "election"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tally_operations_total",
				Help: "Total number of operations performed by the tally engine.",
			},
			[]string{"operation", "status", "election"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tally_system_state",
				Help: "Current system state values for the tally engine.",
			},
			[]string{"metric", "election"},
		),
	}
}

// electionLabel extracts the election label, defaulting when absent so a
// missing label never breaks metric recording.
func electionLabel(labels map[string]string) string {
	if election, ok := labels["election"]; ok && election != "" {
		return election
	}
	return "unknown"
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.executionLatency.WithLabelValues(operation, electionLabel(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "tally_runs_total":
		pm.tallyRuns.WithLabelValues(electionLabel(labels)).Add(value)
	case "validation_failures_total":
		stage, ok := labels["stage"]
		if !ok {
			stage = "unknown"
		}
		pm.validationFailures.WithLabelValues(stage).Add(value)
	case "unit_failures_total":
		unit, ok := labels["unit"]
		if !ok {
			unit = "unknown"
		}
		pm.operationCounter.WithLabelValues(unit, "error", electionLabel(labels)).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, "success", electionLabel(labels)).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.systemGauges.WithLabelValues(metric, electionLabel(labels)).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "ballots_per_run":
		pm.ballotsPerRun.WithLabelValues(electionLabel(labels)).Observe(value)
	default:
		pm.executionLatency.WithLabelValues(metric, electionLabel(labels)).Observe(value)
	}
}
