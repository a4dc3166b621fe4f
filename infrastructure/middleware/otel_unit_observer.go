package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Unit = (*ObservedUnit)(nil)

// ObservedUnit wraps a tally unit with OpenTelemetry tracing and per-unit
// metrics. It creates a span for each execution, annotates it with the run
// metadata carried in the simulation state, and records latency and failure
// counts through the metrics collector.
type ObservedUnit struct {
	next    ports.Unit
	metrics ports.MetricsCollector
	tracer  trace.Tracer
}

// NewObservedUnit wraps the given unit with observability.
// The metrics collector may be nil, in which case only tracing is emitted.
func NewObservedUnit(next ports.Unit, metrics ports.MetricsCollector) *ObservedUnit {
	return &ObservedUnit{
		next:    next,
		metrics: metrics,
		tracer:  otel.Tracer("tally-engine"),
	}
}

// Observe returns a unit decorator that wraps every unit in an ObservedUnit.
// It plugs into the simulator's decorator chain.
func Observe(metrics ports.MetricsCollector) func(ports.Unit) ports.Unit {
	return func(next ports.Unit) ports.Unit {
		return NewObservedUnit(next, metrics)
	}
}

// Name returns the name of the wrapped unit.
func (o *ObservedUnit) Name() string { return o.next.Name() }

// Validate delegates to the wrapped unit.
func (o *ObservedUnit) Validate() error { return o.next.Validate() }

// Execute runs the wrapped unit inside a span and records its outcome.
func (o *ObservedUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	ctx, span := o.tracer.Start(ctx, "Unit.Execute",
		trace.WithAttributes(attribute.String("tally.unit", o.next.Name())))
	defer span.End()

	labels := map[string]string{"unit": o.next.Name()}
	if execCtx, ok := state.GetExecutionContext(); ok {
		span.SetAttributes(
			attribute.String("tally.run_id", execCtx.RunID),
			attribute.String("tally.election", execCtx.ElectionName),
		)
		labels["election"] = execCtx.ElectionName
	}

	start := time.Now()
	newState, err := o.next.Execute(ctx, state)
	elapsed := time.Since(start)

	if o.metrics != nil {
		o.metrics.RecordLatency("unit_execution", elapsed, labels)
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if o.metrics != nil {
			o.metrics.RecordCounter("unit_failures_total", 1, labels)
		}
		return newState, err
	}

	span.SetStatus(codes.Ok, "tally completed")
	return newState, nil
}
