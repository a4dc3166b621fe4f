package domain

import "time"

// Round is the audit record of a single IRV elimination round. Rounds are
// appended to the trail as they are computed and never mutated afterwards.
type Round struct {
	// Tally maps each remaining candidate that received at least one live
	// first choice to the weight counted for them this round.
	Tally map[string]int `json:"tally"`

	// Total is the sum of all tallied weights this round. Exhausted
	// ballots contribute to neither a tally nor the total, so Total is
	// the majority denominator.
	Total int `json:"total"`

	// Remaining lists the candidates still in contention at the start of
	// the round, in candidate-set order.
	Remaining []string `json:"remaining"`
}

// IRVResult holds the outcome of an instant-runoff tally: the winner, if
// one emerged, and the full round-by-round trail needed to audit how the
// winner was reached.
type IRVResult struct {
	// Winner is the winning candidate, or empty when no winner could be
	// declared (every ballot exhausted before a majority emerged).
	Winner string `json:"winner,omitempty"`

	// Rounds is the append-only elimination trail. It is empty when the
	// election started with a single candidate.
	Rounds []Round `json:"rounds"`
}

// Method returns the canonical method name for IRV results.
func (r *IRVResult) Method() string { return MethodIRV }

// WinnerName returns the winning candidate and whether one was found.
func (r *IRVResult) WinnerName() (string, bool) { return r.Winner, r.Winner != "" }

// BordaResult holds the outcome of a Borda count: every candidate's
// positional score and the winner under stable descending order.
type BordaResult struct {
	// Winner is the candidate with the strictly highest score; ties are
	// broken by first occurrence in candidate-set order.
	Winner string `json:"winner"`

	// Scores maps every candidate to their total positional score.
	// Unranked candidates appear with a score of zero.
	Scores map[string]int `json:"scores"`

	// Standing lists the candidates in descending score order, stable
	// with respect to candidate-set order.
	Standing []string `json:"standing"`
}

// Method returns the canonical method name for Borda results.
func (r *BordaResult) Method() string { return MethodBorda }

// WinnerName returns the winning candidate and whether one was found.
// A Borda count over a valid election always produces a winner.
func (r *BordaResult) WinnerName() (string, bool) { return r.Winner, r.Winner != "" }

// CondorcetResult holds the pairwise comparison outcome: the full victory
// matrix, per-candidate pairwise win counts, and the beats-all winner when
// one exists.
type CondorcetResult struct {
	// Winner is the candidate who beats every other candidate head to
	// head, or empty when no Condorcet winner exists.
	Winner string `json:"winner,omitempty"`

	// Pairwise maps ordered pairs of distinct candidates to the total
	// weight of ballots ranking the first strictly before the second.
	// Absent entries mean zero.
	Pairwise map[string]map[string]int `json:"pairwise"`

	// Victories maps each candidate to the number of opponents they beat
	// by strict majority of head-to-head weight. Ties count for neither.
	Victories map[string]int `json:"victories"`
}

// Method returns the canonical method name for Condorcet results.
func (r *CondorcetResult) Method() string { return MethodCondorcet }

// WinnerName returns the Condorcet winner and whether one exists.
func (r *CondorcetResult) WinnerName() (string, bool) { return r.Winner, r.Winner != "" }

// Report is the assembled output of one simulation run across the
// selected voting methods. Method fields are nil when the corresponding
// method was not requested.
type Report struct {
	// RunID uniquely identifies this simulation run (a UUID).
	RunID string `json:"run_id"`

	// ElectionName is the configured name of the election, if any.
	ElectionName string `json:"election_name,omitempty"`

	// Candidates lists the election's candidates in their original order,
	// preserved so renderers can present results deterministically.
	Candidates []string `json:"candidates"`

	// TotalWeight is the combined weight of all ballots.
	TotalWeight int `json:"total_weight"`

	// IRV holds the instant-runoff outcome when that method was selected.
	IRV *IRVResult `json:"irv,omitempty"`

	// Borda holds the Borda count outcome when that method was selected.
	Borda *BordaResult `json:"borda,omitempty"`

	// Condorcet holds the pairwise outcome when that method was selected.
	Condorcet *CondorcetResult `json:"condorcet,omitempty"`

	// Timestamp records when this report was created.
	Timestamp time.Time `json:"timestamp"`
}
