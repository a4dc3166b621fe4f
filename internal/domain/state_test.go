package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateGetAndWith(t *testing.T) {
	state := NewState()

	_, ok := Get(state, KeyElection)
	assert.False(t, ok, "empty state should not contain an election")

	election, err := NewElection(
		[]string{"Alice", "Bob"},
		[]Ballot{{Weight: 5, Ranking: []string{"Alice"}}},
	)
	require.NoError(t, err)

	updated := With(state, KeyElection, election)

	_, ok = Get(state, KeyElection)
	assert.False(t, ok, "original state must be unchanged")

	got, ok := Get(updated, KeyElection)
	require.True(t, ok)
	assert.Equal(t, election.Candidates, got.Candidates)
	assert.Equal(t, election.Ballots, got.Ballots)
}

func TestStateImmutabilityDeepCopy(t *testing.T) {
	result := &BordaResult{
		Winner: "Bob",
		Scores: map[string]int{"Alice": 46, "Bob": 50},
	}

	state := With(NewState(), KeyBordaResult, result)

	// Mutating the value handed to With must not leak into the state.
	result.Scores["Bob"] = 0

	got, ok := Get(state, KeyBordaResult)
	require.True(t, ok)
	assert.Equal(t, 50, got.Scores["Bob"])

	// Mutating a retrieved value must not leak into the state either.
	got.Scores["Alice"] = 0
	again, ok := Get(state, KeyBordaResult)
	require.True(t, ok)
	assert.Equal(t, 46, again.Scores["Alice"])
}

func TestStateExecutionContext(t *testing.T) {
	state := NewState()

	_, ok := state.GetExecutionContext()
	assert.False(t, ok)

	seeded := state.WithExecutionContext(ExecutionContext{
		RunID:        "run-123",
		ElectionName: "city-council",
	})

	ctx, ok := seeded.GetExecutionContext()
	require.True(t, ok)
	assert.Equal(t, "run-123", ctx.RunID)
	assert.Equal(t, "city-council", ctx.ElectionName)
}

func TestStateWithMultiple(t *testing.T) {
	state := NewState().WithMultiple(map[string]any{
		"execution.run_id":        "run-9",
		"execution.election_name": "club-vote",
	})

	runID, ok := Get(state, KeyRunID)
	require.True(t, ok)
	assert.Equal(t, "run-9", runID)

	assert.ElementsMatch(t, []string{"execution.run_id", "execution.election_name"}, state.Keys())
}
