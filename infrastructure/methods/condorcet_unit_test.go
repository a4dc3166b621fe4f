package methods

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
)

func TestNewCondorcetUnit(t *testing.T) {
	tests := []struct {
		name     string
		unitName string
		config   CondorcetConfig
		wantErr  bool
	}{
		{
			name:     "valid configuration",
			unitName: "condorcet",
			config:   DefaultCondorcetConfig(),
		},
		{
			name:     "empty name rejected",
			unitName: "",
			config:   DefaultCondorcetConfig(),
			wantErr:  true,
		},
		{
			name:     "unknown completion rule rejected",
			unitName: "condorcet",
			config:   CondorcetConfig{Completion: "schulze"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewCondorcetUnit(tt.unitName, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.unitName, unit.Name())
		})
	}
}

func TestCondorcetUnit_Tally_BeatsAllWinner(t *testing.T) {
	unit, err := NewCondorcetUnit("condorcet", DefaultCondorcetConfig())
	require.NoError(t, err)

	// Bob beats Alice 5:4 and Chen 7:2 head to head.
	election := mustElection(t,
		[]string{"Alice", "Bob", "Chen"},
		[]domain.Ballot{
			{Weight: 4, Ranking: []string{"Alice", "Bob", "Chen"}},
			{Weight: 3, Ranking: []string{"Bob", "Chen", "Alice"}},
			{Weight: 2, Ranking: []string{"Chen", "Bob", "Alice"}},
		},
	)

	result, err := unit.Tally(election)
	require.NoError(t, err)

	condorcet := result.(*domain.CondorcetResult)
	assert.Equal(t, "Bob", condorcet.Winner)
	assert.Equal(t, 2, condorcet.Victories["Bob"])
	assert.Equal(t, 5, condorcet.Pairwise["Bob"]["Alice"])
	assert.Equal(t, 4, condorcet.Pairwise["Alice"]["Bob"])
}

func TestCondorcetUnit_Tally_CyclicPreferencesHaveNoWinner(t *testing.T) {
	unit, err := NewCondorcetUnit("condorcet", DefaultCondorcetConfig())
	require.NoError(t, err)

	// The four-way scenario forms a cycle: Alice beats Bob, Bob beats
	// Chen, Chen beats Alice, and everyone beats Diego.
	result, err := unit.Tally(fourWayElection(t))
	require.NoError(t, err)

	condorcet := result.(*domain.CondorcetResult)
	winner, found := condorcet.WinnerName()
	assert.False(t, found)
	assert.Empty(t, winner)

	assert.Equal(t, map[string]int{
		"Alice": 2,
		"Bob":   2,
		"Chen":  2,
		"Diego": 0,
	}, condorcet.Victories)

	assert.Equal(t, 20, condorcet.Pairwise["Alice"]["Bob"])
	assert.Equal(t, 8, condorcet.Pairwise["Bob"]["Alice"])
	assert.Equal(t, 18, condorcet.Pairwise["Chen"]["Alice"])
	assert.Equal(t, 10, condorcet.Pairwise["Alice"]["Chen"])
}

func TestCondorcetUnit_Tally_PairwiseWeightBound(t *testing.T) {
	unit, err := NewCondorcetUnit("condorcet", DefaultCondorcetConfig())
	require.NoError(t, err)

	election := fourWayElection(t)
	result, err := unit.Tally(election)
	require.NoError(t, err)

	condorcet := result.(*domain.CondorcetResult)
	total := election.TotalWeight()
	for _, a := range election.Candidates {
		assert.Zero(t, condorcet.Pairwise[a][a], "no candidate pairwise-beats itself")
		for _, b := range election.Candidates {
			if a == b {
				continue
			}
			assert.LessOrEqual(t,
				condorcet.Pairwise[a][b]+condorcet.Pairwise[b][a], total,
				"opposed weight cannot exceed total ballot weight for %s vs %s", a, b)
		}
	}
}

func TestCondorcetUnit_Tally_TiedPairCountsForNeither(t *testing.T) {
	unit, err := NewCondorcetUnit("condorcet", DefaultCondorcetConfig())
	require.NoError(t, err)

	election := mustElection(t,
		[]string{"Alice", "Bob"},
		[]domain.Ballot{
			{Weight: 3, Ranking: []string{"Alice", "Bob"}},
			{Weight: 3, Ranking: []string{"Bob", "Alice"}},
		},
	)

	result, err := unit.Tally(election)
	require.NoError(t, err)

	condorcet := result.(*domain.CondorcetResult)
	assert.Empty(t, condorcet.Winner)
	assert.Equal(t, map[string]int{"Alice": 0, "Bob": 0}, condorcet.Victories)
}

func TestCondorcetUnit_Execute(t *testing.T) {
	unit, err := NewCondorcetUnit("condorcet", DefaultCondorcetConfig())
	require.NoError(t, err)

	state := domain.With(domain.NewState(), domain.KeyElection, fourWayElection(t))

	newState, err := unit.Execute(context.Background(), state)
	require.NoError(t, err)

	result, ok := domain.Get(newState, domain.KeyCondorcetResult)
	require.True(t, ok)
	assert.Empty(t, result.Winner)
	assert.Len(t, result.Victories, 4)

	_, err = unit.Execute(context.Background(), domain.NewState())
	assert.ErrorIs(t, err, ErrNilElection)
}

func TestCondorcetUnit_UnmarshalParameters(t *testing.T) {
	unit, err := NewCondorcetUnit("condorcet", DefaultCondorcetConfig())
	require.NoError(t, err)

	assert.NoError(t, unit.UnmarshalParameters(yamlNode(t, "completion: none")))
	assert.Error(t, unit.UnmarshalParameters(yamlNode(t, "completion: minimax")))
}

func TestCreateCondorcetUnit(t *testing.T) {
	unit, err := CreateCondorcetUnit("cond1", nil)
	require.NoError(t, err)
	assert.Equal(t, "cond1", unit.Name())

	_, err = CreateCondorcetUnit("cond2", map[string]any{"completion": "bogus"})
	assert.Error(t, err)
}
