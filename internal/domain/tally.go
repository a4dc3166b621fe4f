package domain

// Canonical voting method names used in configuration, state keys, and
// metric labels.
const (
	MethodIRV       = "irv"
	MethodBorda     = "borda"
	MethodCondorcet = "condorcet"
)

// MethodResult is implemented by the per-method result types. It gives
// the orchestration layer a uniform way to ask which method produced a
// result and whether a winner was found, while the concrete types retain
// the full audit data defined for each method.
type MethodResult interface {
	// Method returns the canonical method name.
	Method() string

	// WinnerName returns the winning candidate and whether one was found.
	WinnerName() (string, bool)
}

// Tallier defines the interface for voting-method engines. Each
// implementation is a pure function of the election: it reads the
// candidate set and ballots, allocates private output, and never mutates
// shared data, so independent tallies may run concurrently.
//
// Implementations must be deterministic. Tie-breaking and winner
// selection depend on candidate-set order, which is stable and specified,
// so the same election always produces the same result.
type Tallier interface {
	// Tally computes the outcome for the given election.
	// The election must have been validated by NewElection; Tally is
	// total over valid input and only returns an error for programming
	// mistakes such as a nil election.
	Tally(election *Election) (MethodResult, error)
}
