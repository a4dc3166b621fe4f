// Package testutils provides shared fixtures and test doubles for the
// tally engine's test suites.
package testutils

import (
	"sync"
	"time"

	"github.com/ahrav/go-ballot/internal/ports"
)

// FourWayCandidates is the candidate line of the reference scenario used
// across the test suites: four candidates, 28 voters, no first-round
// majority, and a Condorcet cycle.
const FourWayCandidates = "Alice, Bob, Chen, Diego"

// FourWayBallots is the ballot text matching FourWayCandidates.
const FourWayBallots = `10: Alice > Bob > Chen > Diego
8: Bob > Diego > Chen > Alice
6: Chen > Alice > Bob > Diego
4: Diego > Chen > Alice > Bob`

// MetricCall records one call made against a RecordingCollector.
type MetricCall struct {
	// Kind is the collector method invoked: latency, counter, gauge, or
	// histogram.
	Kind string
	// Name is the metric or operation name.
	Name string
	// Value is the recorded value; for latency calls it is the duration
	// in seconds.
	Value float64
	// Labels are the labels attached to the call.
	Labels map[string]string
}

// Compile-time check that RecordingCollector satisfies the port.
var _ ports.MetricsCollector = (*RecordingCollector)(nil)

// RecordingCollector is a MetricsCollector test double that records every
// call for later inspection. It is safe for concurrent use.
type RecordingCollector struct {
	mu    sync.Mutex
	calls []MetricCall
}

// NewRecordingCollector creates an empty RecordingCollector.
func NewRecordingCollector() *RecordingCollector { return &RecordingCollector{} }

// RecordLatency implements ports.MetricsCollector.
func (r *RecordingCollector) RecordLatency(operation string, d time.Duration, labels map[string]string) {
	r.record(MetricCall{Kind: "latency", Name: operation, Value: d.Seconds(), Labels: labels})
}

// RecordCounter implements ports.MetricsCollector.
func (r *RecordingCollector) RecordCounter(metric string, value float64, labels map[string]string) {
	r.record(MetricCall{Kind: "counter", Name: metric, Value: value, Labels: labels})
}

// RecordGauge implements ports.MetricsCollector.
func (r *RecordingCollector) RecordGauge(metric string, value float64, labels map[string]string) {
	r.record(MetricCall{Kind: "gauge", Name: metric, Value: value, Labels: labels})
}

// RecordHistogram implements ports.MetricsCollector.
func (r *RecordingCollector) RecordHistogram(metric string, value float64, labels map[string]string) {
	r.record(MetricCall{Kind: "histogram", Name: metric, Value: value, Labels: labels})
}

func (r *RecordingCollector) record(call MetricCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

// Calls returns a copy of all recorded calls in order.
func (r *RecordingCollector) Calls() []MetricCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MetricCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsFor returns the recorded calls for a single metric name.
func (r *RecordingCollector) CallsFor(name string) []MetricCall {
	var out []MetricCall
	for _, call := range r.Calls() {
		if call.Name == name {
			out = append(out, call)
		}
	}
	return out
}
