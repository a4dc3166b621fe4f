package methods

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var (
	_ ports.Unit     = (*BordaUnit)(nil)
	_ domain.Tallier = (*BordaUnit)(nil)
)

// BordaUnit implements the Borda count: a positional scoring method that
// awards each ranked candidate weight*(maxPoints-position) points, where
// maxPoints is candidateCount-1. Candidates omitted from a partial
// ranking receive no points from that ballot; there is no penalty.
// The unit is stateless and thread-safe for concurrent execution.
type BordaUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config BordaConfig
}

// BordaConfig defines the configuration parameters for the BordaUnit.
type BordaConfig struct {
	// Scoring selects the positional scoring scheme.
	// Currently only "classic" is supported: the top rank of a full
	// ballot earns candidateCount-1 points, descending by one per
	// position to zero.
	Scoring string `yaml:"scoring" json:"scoring" validate:"required,oneof=classic"`
}

// NewBordaUnit creates a new BordaUnit with the specified configuration.
// Returns an error if the name is empty or configuration validation fails.
func NewBordaUnit(name string, config BordaConfig) (*BordaUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &BordaUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *BordaUnit) Name() string { return u.name }

// Execute runs the Borda count against the election stored in state and
// returns a new state containing the Borda result.
func (u *BordaUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	election, ok := domain.Get(state, domain.KeyElection)
	if !ok {
		return state, ErrNilElection
	}

	result, err := u.Tally(election)
	if err != nil {
		return state, fmt.Errorf("borda tally failed: %w", err)
	}

	return domain.With(state, domain.KeyBordaResult, result.(*domain.BordaResult)), nil
}

// Tally implements the domain.Tallier interface. Every candidate starts
// at zero, so unranked candidates still appear in the output. The winner
// is the candidate with the strictly highest score; ties are broken by
// first occurrence in candidate-set order, which keeps the descending
// standing stable and deterministic.
func (u *BordaUnit) Tally(election *domain.Election) (domain.MethodResult, error) {
	if election == nil {
		return nil, ErrNilElection
	}

	scores := make(map[string]int, election.CandidateCount())
	for _, name := range election.Candidates {
		scores[name] = 0
	}

	maxPoints := election.CandidateCount() - 1
	for _, ballot := range election.Ballots {
		for position, name := range ballot.Ranking {
			scores[name] += ballot.Weight * (maxPoints - position)
		}
	}

	standing := slices.Clone(election.Candidates)
	sort.SliceStable(standing, func(i, j int) bool {
		return scores[standing[i]] > scores[standing[j]]
	})

	return &domain.BordaResult{
		Winner:   standing[0],
		Scores:   scores,
		Standing: standing,
	}, nil
}

// Validate checks if the unit is properly configured and ready for
// execution.
func (u *BordaUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// unit's configuration struct with validation.
// Returns an error if YAML parsing or validation fails.
func (u *BordaUnit) UnmarshalParameters(params yaml.Node) error {
	var config BordaConfig

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	u.config = config
	return nil
}

// DefaultBordaConfig returns a BordaConfig with sensible defaults.
func DefaultBordaConfig() BordaConfig {
	return BordaConfig{Scoring: "classic"}
}

// CreateBordaUnit is a factory function that creates a BordaUnit from a
// configuration map, following the UnitFactory pattern.
// This function is used by the unit registry for dynamic unit creation.
func CreateBordaUnit(id string, config map[string]any) (*BordaUnit, error) {
	unitConfig := DefaultBordaConfig()

	if scoring, ok := config["scoring"].(string); ok {
		unitConfig.Scoring = scoring
	}

	return NewBordaUnit(id, unitConfig)
}
