package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-ballot/internal/domain"
)

func TestRenderReport_AllSections(t *testing.T) {
	report := &domain.Report{
		ElectionName: "council",
		Candidates:   []string{"Alice", "Bob"},
		TotalWeight:  9,
		IRV: &domain.IRVResult{
			Winner: "Alice",
			Rounds: []domain.Round{
				{
					Tally:     map[string]int{"Alice": 5, "Bob": 4},
					Total:     9,
					Remaining: []string{"Alice", "Bob"},
				},
			},
		},
		Borda: &domain.BordaResult{
			Winner:   "Alice",
			Scores:   map[string]int{"Alice": 5, "Bob": 4},
			Standing: []string{"Alice", "Bob"},
		},
		Condorcet: &domain.CondorcetResult{
			Winner:    "Alice",
			Victories: map[string]int{"Alice": 1, "Bob": 0},
		},
	}

	want := `Election: council
Total ballots: 9

Instant Runoff (IRV)
  Round 1 (remaining: Alice, Bob):
    Alice: 5
    Bob: 4
    Total counted: 9
  Winner: Alice

Borda Count
  Alice: 5 points
  Bob: 4 points
  Winner: Alice

Condorcet (pairwise)
  Alice: 1 pairwise wins
  Bob: 0 pairwise wins
  Condorcet winner: Alice

`
	assert.Equal(t, want, renderReport(report))
}

func TestRenderReport_SkipsUnselectedMethods(t *testing.T) {
	report := &domain.Report{
		Candidates:  []string{"Alice", "Bob"},
		TotalWeight: 3,
		Borda: &domain.BordaResult{
			Winner:   "Bob",
			Scores:   map[string]int{"Alice": 1, "Bob": 2},
			Standing: []string{"Bob", "Alice"},
		},
	}

	out := renderReport(report)
	assert.NotContains(t, out, "Instant Runoff")
	assert.NotContains(t, out, "Condorcet")
	assert.Contains(t, out, "Borda Count\n  Bob: 2 points\n  Alice: 1 points\n  Winner: Bob\n")
	assert.NotContains(t, out, "Election:", "unnamed election omits the header")
}

func TestRenderReport_NoWinnerCases(t *testing.T) {
	report := &domain.Report{
		Candidates:  []string{"Alice", "Bob"},
		TotalWeight: 4,
		IRV:         &domain.IRVResult{Rounds: []domain.Round{}},
		Condorcet: &domain.CondorcetResult{
			Victories: map[string]int{"Alice": 0, "Bob": 0},
		},
	}

	out := renderReport(report)
	assert.Contains(t, out, "  Winner: No winner\n")
	assert.Contains(t, out, "  No Condorcet winner found.\n")
}
