package methods

import (
	"context"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

var (
	_ ports.Unit     = (*IRVUnit)(nil)
	_ domain.Tallier = (*IRVUnit)(nil)
)

// IRVUnit implements instant-runoff voting: repeated elimination of the
// lowest-tally candidates with vote transfer to each ballot's next live
// preference, until a strict majority winner emerges or at most one
// candidate remains.
//
// Elimination removes the entire cohort tied at the minimum tally in a
// single round, not one candidate at a time. This can remove several
// candidates in one step and is preserved as the specified tie policy;
// changing it would change election outcomes.
//
// The unit is stateless and thread-safe for concurrent execution.
type IRVUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config IRVConfig
}

// IRVConfig defines the configuration parameters for the IRVUnit.
type IRVConfig struct {
	// EliminationRule selects the per-round elimination policy.
	// Currently only "lowest_cohort" is supported: all candidates tied
	// at the minimum tally are eliminated simultaneously.
	EliminationRule string `yaml:"elimination_rule" json:"elimination_rule" validate:"required,oneof=lowest_cohort"`

	// MaxRounds optionally caps the number of elimination rounds; zero
	// means unlimited. Rounds are naturally bounded by candidateCount-1,
	// so the cap is a safety valve rather than an expected stop.
	MaxRounds int `yaml:"max_rounds" json:"max_rounds" validate:"gte=0"`
}

// NewIRVUnit creates a new IRVUnit with the specified configuration.
// Returns an error if the name is empty or configuration validation fails.
func NewIRVUnit(name string, config IRVConfig) (*IRVUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &IRVUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *IRVUnit) Name() string { return u.name }

// Execute runs the instant-runoff tally against the election stored in
// state and returns a new state containing the IRV result.
func (u *IRVUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	election, ok := domain.Get(state, domain.KeyElection)
	if !ok {
		return state, ErrNilElection
	}

	result, err := u.Tally(election)
	if err != nil {
		return state, fmt.Errorf("irv tally failed: %w", err)
	}

	return domain.With(state, domain.KeyIRVResult, result.(*domain.IRVResult)), nil
}

// Tally implements the domain.Tallier interface. It runs elimination
// rounds over the election and records every round into the audit trail,
// including the final round in which a winner or stop condition was found.
//
// Per-round semantics:
//   - Each ballot counts its full weight toward its first-ranked candidate
//     still in contention. Ballots with no live choice are exhausted and
//     contribute to neither tally nor total.
//   - A candidate wins on a tally strictly exceeding half the round total.
//   - Otherwise the entire cohort at the minimum tally is eliminated,
//     where remaining candidates absent from the tally count as zero.
//   - A round with zero total stops the tally with no winner.
func (u *IRVUnit) Tally(election *domain.Election) (domain.MethodResult, error) {
	if election == nil {
		return nil, ErrNilElection
	}

	// A single-candidate election has an immediate winner and no rounds.
	if election.CandidateCount() == 1 {
		return &domain.IRVResult{Winner: election.Candidates[0]}, nil
	}

	remaining := slices.Clone(election.Candidates)
	var rounds []domain.Round

	for len(remaining) > 1 {
		if u.config.MaxRounds > 0 && len(rounds) >= u.config.MaxRounds {
			// Cap reached with multiple candidates standing: no winner.
			return &domain.IRVResult{Rounds: rounds}, nil
		}

		live := make(map[string]struct{}, len(remaining))
		for _, name := range remaining {
			live[name] = struct{}{}
		}

		tally := make(map[string]int, len(remaining))
		total := 0
		for _, ballot := range election.Ballots {
			for _, choice := range ballot.Ranking {
				if _, ok := live[choice]; ok {
					tally[choice] += ballot.Weight
					total += ballot.Weight
					break
				}
			}
		}

		// Record the round before any decision so the trail is complete
		// regardless of outcome.
		rounds = append(rounds, domain.Round{
			Tally:     tally,
			Total:     total,
			Remaining: slices.Clone(remaining),
		})

		// Every ballot is exhausted: stop with no winner.
		if total == 0 {
			return &domain.IRVResult{Rounds: rounds}, nil
		}

		// Strict majority check. At most one candidate can exceed half
		// the total, so scanning in candidate-set order is deterministic.
		for _, name := range remaining {
			if tally[name]*2 > total {
				return &domain.IRVResult{Winner: name, Rounds: rounds}, nil
			}
		}

		// Eliminate every candidate tied at the minimum tally, keeping
		// candidate-set order for the survivors.
		lowest := tally[remaining[0]]
		for _, name := range remaining[1:] {
			if votes := tally[name]; votes < lowest {
				lowest = votes
			}
		}

		survivors := remaining[:0]
		for _, name := range remaining {
			if tally[name] != lowest {
				survivors = append(survivors, name)
			}
		}
		remaining = survivors
	}

	result := &domain.IRVResult{Rounds: rounds}
	if len(remaining) == 1 {
		result.Winner = remaining[0]
	}
	return result, nil
}

// Validate checks if the unit is properly configured and ready for
// execution.
func (u *IRVUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters into the
// unit's configuration struct with validation.
// Returns an error if YAML parsing or validation fails.
func (u *IRVUnit) UnmarshalParameters(params yaml.Node) error {
	var config IRVConfig

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	u.config = config
	return nil
}

// DefaultIRVConfig returns an IRVConfig with sensible defaults.
func DefaultIRVConfig() IRVConfig {
	return IRVConfig{EliminationRule: "lowest_cohort"}
}

// CreateIRVUnit is a factory function that creates an IRVUnit from a
// configuration map, following the UnitFactory pattern.
// This function is used by the unit registry for dynamic unit creation.
func CreateIRVUnit(id string, config map[string]any) (*IRVUnit, error) {
	unitConfig := DefaultIRVConfig()

	if rule, ok := config["elimination_rule"].(string); ok {
		unitConfig.EliminationRule = rule
	}

	if maxRounds, ok := config["max_rounds"].(int); ok {
		unitConfig.MaxRounds = maxRounds
	}

	return NewIRVUnit(id, unitConfig)
}
