package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics(t *testing.T) *PrometheusMetrics {
	t.Helper()
	return NewPrometheusMetricsWith(prometheus.NewRegistry())
}

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	pm := newTestMetrics(t)

	t.Run("tally runs", func(t *testing.T) {
		pm.RecordCounter("tally_runs_total", 1, map[string]string{"election": "council"})
		pm.RecordCounter("tally_runs_total", 1, map[string]string{"election": "council"})

		assert.Equal(t, 2.0, testutil.ToFloat64(pm.tallyRuns.WithLabelValues("council")))
	})

	t.Run("validation failures by stage", func(t *testing.T) {
		pm.RecordCounter("validation_failures_total", 1, map[string]string{"stage": "ballots"})

		assert.Equal(t, 1.0, testutil.ToFloat64(pm.validationFailures.WithLabelValues("ballots")))
	})

	t.Run("unit failures route to operation counter", func(t *testing.T) {
		pm.RecordCounter("unit_failures_total", 1, map[string]string{
			"unit":     "irv",
			"election": "council",
		})

		assert.Equal(t, 1.0,
			testutil.ToFloat64(pm.operationCounter.WithLabelValues("irv", "error", "council")))
	})

	t.Run("unrecognized metric counts as generic operation", func(t *testing.T) {
		pm.RecordCounter("custom_thing", 3, nil)

		assert.Equal(t, 3.0,
			testutil.ToFloat64(pm.operationCounter.WithLabelValues("custom_thing", "success", "unknown")))
	})
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	pm := newTestMetrics(t)

	pm.RecordGauge("candidates_standing", 4, map[string]string{"election": "council"})

	assert.Equal(t, 4.0,
		testutil.ToFloat64(pm.systemGauges.WithLabelValues("candidates_standing", "council")))
}

func TestPrometheusMetrics_RecordLatencyAndHistogram(t *testing.T) {
	pm := newTestMetrics(t)

	pm.RecordLatency("simulation_run", 50*time.Millisecond, map[string]string{"election": "council"})
	pm.RecordHistogram("ballots_per_run", 28, map[string]string{"election": "council"})
	pm.RecordHistogram("other_distribution", 1.5, nil)

	assert.Equal(t, 1, testutil.CollectAndCount(pm.ballotsPerRun))
	assert.Equal(t, 2, testutil.CollectAndCount(pm.executionLatency),
		"latency and fallback histogram share the execution metric")
}

func TestPrometheusMetrics_MissingLabelsDefaulted(t *testing.T) {
	pm := newTestMetrics(t)

	pm.RecordCounter("tally_runs_total", 1, nil)
	pm.RecordCounter("validation_failures_total", 1, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(pm.tallyRuns.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.validationFailures.WithLabelValues("unknown")))
}
