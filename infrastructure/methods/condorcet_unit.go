package methods

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var (
	_ ports.Unit     = (*CondorcetUnit)(nil)
	_ domain.Tallier = (*CondorcetUnit)(nil)
)

// CondorcetUnit implements pairwise comparison: it builds the full
// head-to-head victory matrix and declares a winner only for a candidate
// who beats every other candidate by strict majority of pairwise weight.
// A tied pair counts for neither side. The unit is stateless and
// thread-safe for concurrent execution.
type CondorcetUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config CondorcetConfig
}

// CondorcetConfig defines the configuration parameters for the
// CondorcetUnit.
type CondorcetConfig struct {
	// Completion selects the fallback rule applied when no candidate
	// beats all others. Currently only "none" is supported: the result
	// simply reports that no Condorcet winner exists.
	Completion string `yaml:"completion" json:"completion" validate:"required,oneof=none"`
}

// NewCondorcetUnit creates a new CondorcetUnit with the specified
// configuration.
// Returns an error if the name is empty or configuration validation fails.
func NewCondorcetUnit(name string, config CondorcetConfig) (*CondorcetUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &CondorcetUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *CondorcetUnit) Name() string { return u.name }

// Execute runs the pairwise tally against the election stored in state
// and returns a new state containing the Condorcet result.
func (u *CondorcetUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	election, ok := domain.Get(state, domain.KeyElection)
	if !ok {
		return state, ErrNilElection
	}

	result, err := u.Tally(election)
	if err != nil {
		return state, fmt.Errorf("condorcet tally failed: %w", err)
	}

	return domain.With(state, domain.KeyCondorcetResult, result.(*domain.CondorcetResult)), nil
}

// Tally implements the domain.Tallier interface. For every ballot, each
// ordered pair (earlier, later) within its ranking adds the ballot's
// weight to pairwise[earlier][later]. Candidates unranked by a ballot
// gain nothing against anyone from it. The winner, when one exists, is
// the first candidate in candidate-set order whose victory count equals
// candidateCount-1.
func (u *CondorcetUnit) Tally(election *domain.Election) (domain.MethodResult, error) {
	if election == nil {
		return nil, ErrNilElection
	}

	pairwise := make(map[string]map[string]int, election.CandidateCount())
	for _, name := range election.Candidates {
		pairwise[name] = make(map[string]int)
	}

	for _, ballot := range election.Ballots {
		for i, winner := range ballot.Ranking {
			for _, loser := range ballot.Ranking[i+1:] {
				pairwise[winner][loser] += ballot.Weight
			}
		}
	}

	victories := make(map[string]int, election.CandidateCount())
	for _, a := range election.Candidates {
		victories[a] = 0
		for _, b := range election.Candidates {
			if a == b {
				continue
			}
			if pairwise[a][b] > pairwise[b][a] {
				victories[a]++
			}
		}
	}

	result := &domain.CondorcetResult{
		Pairwise:  pairwise,
		Victories: victories,
	}

	beatsAll := election.CandidateCount() - 1
	for _, name := range election.Candidates {
		if victories[name] == beatsAll {
			result.Winner = name
			break
		}
	}

	return result, nil
}

// Validate checks if the unit is properly configured and ready for
// execution.
func (u *CondorcetUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// unit's configuration struct with validation.
// Returns an error if YAML parsing or validation fails.
func (u *CondorcetUnit) UnmarshalParameters(params yaml.Node) error {
	var config CondorcetConfig

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	u.config = config
	return nil
}

// DefaultCondorcetConfig returns a CondorcetConfig with sensible defaults.
func DefaultCondorcetConfig() CondorcetConfig {
	return CondorcetConfig{Completion: "none"}
}

// CreateCondorcetUnit is a factory function that creates a CondorcetUnit
// from a configuration map, following the UnitFactory pattern.
// This function is used by the unit registry for dynamic unit creation.
func CreateCondorcetUnit(id string, config map[string]any) (*CondorcetUnit, error) {
	unitConfig := DefaultCondorcetConfig()

	if completion, ok := config["completion"].(string); ok {
		unitConfig.Completion = completion
	}

	return NewCondorcetUnit(id, unitConfig)
}
