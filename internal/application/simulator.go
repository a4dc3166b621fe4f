package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// Methods selects which voting methods a simulation runs.
type Methods struct {
	// IRV enables the instant-runoff tally.
	IRV bool
	// Borda enables the Borda count.
	Borda bool
	// Condorcet enables the pairwise comparison.
	Condorcet bool
}

// None reports whether no method is selected.
func (m Methods) None() bool { return !m.IRV && !m.Borda && !m.Condorcet }

// Request is one simulation request: raw candidate text, raw ballot
// text, and the set of methods to run. The texts are validated before
// any method executes; a validation error aborts the whole request and
// no partial results are produced.
type Request struct {
	// CandidatesText is the comma-separated candidate list.
	CandidatesText string

	// BallotsText is the multi-line "count: ranking" ballot input.
	BallotsText string

	// ElectionName optionally names the election for reports and
	// observability labels.
	ElectionName string

	// Methods selects the voting methods to run.
	Methods Methods
}

// UnitDecorator wraps a tally unit with cross-cutting behavior such as
// tracing or per-unit metrics. Decorators are applied in registration
// order, innermost first.
type UnitDecorator func(ports.Unit) ports.Unit

// Simulator orchestrates election simulations. It validates raw input,
// creates the selected tally units through the registry, executes them
// against an immutable simulation state, and assembles the final report.
// A Simulator is safe for concurrent use; every run operates on private
// state.
type Simulator struct {
	// registry creates tally units by method type.
	registry ports.UnitRegistry
	// metrics is the optional metrics collector; nil disables metrics.
	metrics ports.MetricsCollector
	// decorators wrap each unit before execution.
	decorators []UnitDecorator
}

// NewSimulator creates a Simulator backed by the given registry.
// The metrics collector may be nil to disable metrics collection.
func NewSimulator(
	registry ports.UnitRegistry,
	metrics ports.MetricsCollector,
	decorators ...UnitDecorator,
) (*Simulator, error) {
	if registry == nil {
		return nil, fmt.Errorf("unit registry cannot be nil")
	}

	return &Simulator{
		registry:   registry,
		metrics:    metrics,
		decorators: decorators,
	}, nil
}

// Run validates the raw request input, then executes the selected
// methods with their default configurations. Parsing follows the
// original input contract: candidate errors surface before ballot
// errors, per-line ballot errors carry the raw 1-based line number, and
// the no-method check runs only after the input itself proved valid.
func (s *Simulator) Run(ctx context.Context, req Request) (*domain.Report, error) {
	candidates, err := ParseCandidates(req.CandidatesText)
	if err != nil {
		s.recordValidationFailure("candidates")
		return nil, err
	}

	ballots, err := ParseBallots(req.BallotsText, candidates)
	if err != nil {
		s.recordValidationFailure("ballots")
		return nil, err
	}

	election, err := domain.NewElection(candidates, ballots)
	if err != nil {
		// Unreachable for parser output; kept so a future parser bug
		// cannot smuggle an invalid election past validation.
		s.recordValidationFailure("election")
		return nil, err
	}

	if req.Methods.None() {
		return nil, domain.ErrNoMethodSelected
	}

	units, err := s.defaultUnits(req.Methods)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, req.ElectionName, election, units)
}

// RunElection executes pre-configured tally units against an already
// validated election. This is the entry point used by the election
// loader, whose units carry parameters from the election file.
// Units execute in the order given.
func (s *Simulator) RunElection(
	ctx context.Context,
	name string,
	election *domain.Election,
	units []ports.Unit,
) (*domain.Report, error) {
	if election == nil {
		return nil, fmt.Errorf("election cannot be nil")
	}

	if len(units) == 0 {
		return nil, domain.ErrNoMethodSelected
	}

	return s.run(ctx, name, election, units)
}

// defaultUnits creates the selected methods with default configurations,
// in the deterministic execution order irv, borda, condorcet.
func (s *Simulator) defaultUnits(m Methods) ([]ports.Unit, error) {
	var selected []string
	if m.IRV {
		selected = append(selected, domain.MethodIRV)
	}
	if m.Borda {
		selected = append(selected, domain.MethodBorda)
	}
	if m.Condorcet {
		selected = append(selected, domain.MethodCondorcet)
	}

	units := make([]ports.Unit, 0, len(selected))
	for _, methodType := range selected {
		unit, err := s.registry.CreateUnit(methodType, methodType, nil)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return units, nil
}

// run executes the units in order over a fresh simulation state and
// assembles the report from whichever results were produced.
func (s *Simulator) run(
	ctx context.Context,
	name string,
	election *domain.Election,
	units []ports.Unit,
) (*domain.Report, error) {
	start := time.Now()
	runID := uuid.NewString()

	state := domain.NewState().WithExecutionContext(domain.ExecutionContext{
		RunID:        runID,
		ElectionName: name,
	})
	state = domain.With(state, domain.KeyElection, election)

	for _, unit := range units {
		wrapped := unit
		for _, decorate := range s.decorators {
			wrapped = decorate(wrapped)
		}

		var err error
		state, err = wrapped.Execute(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("method %s failed: %w", unit.Name(), err)
		}
	}

	report := &domain.Report{
		RunID:        runID,
		ElectionName: name,
		Candidates:   append([]string(nil), election.Candidates...),
		TotalWeight:  election.TotalWeight(),
		Timestamp:    time.Now(),
	}
	if irv, ok := domain.Get(state, domain.KeyIRVResult); ok {
		report.IRV = irv
	}
	if borda, ok := domain.Get(state, domain.KeyBordaResult); ok {
		report.Borda = borda
	}
	if condorcet, ok := domain.Get(state, domain.KeyCondorcetResult); ok {
		report.Condorcet = condorcet
	}

	if s.metrics != nil {
		labels := map[string]string{"election": name}
		s.metrics.RecordCounter("tally_runs_total", 1, labels)
		s.metrics.RecordHistogram("ballots_per_run", float64(election.TotalWeight()), labels)
		s.metrics.RecordLatency("simulation_run", time.Since(start), labels)
	}

	return report, nil
}

// recordValidationFailure counts a rejected request. Validation errors
// represent expected user-input mistakes, not system faults, so they are
// counted but never treated as internal failures.
func (s *Simulator) recordValidationFailure(stage string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCounter("validation_failures_total", 1, map[string]string{"stage": stage})
}
