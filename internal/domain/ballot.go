// Package domain contains pure, dependency-free domain models and types
// for the election tallying engine.
package domain

import "fmt"

// Ballot represents a weighted ranked ballot. Weight is the number of
// identical ballots cast, and Ranking lists candidate names in order of
// preference. A ranking may be partial: candidates omitted from it simply
// receive no support from this ballot.
type Ballot struct {
	// Weight is the number of voters who cast this exact ranking.
	// It must be strictly positive.
	Weight int `json:"weight"`

	// Ranking holds distinct candidate names ordered from most to least
	// preferred. Every name must belong to the election's candidate set.
	Ranking []string `json:"ranking"`
}

// NewBallot creates a Ballot and enforces the invariants that do not
// require knowledge of the candidate set: a positive weight, a non-empty
// ranking, and no duplicate names within the ranking.
// Membership of the ranking in the candidate set is checked by NewElection.
func NewBallot(weight int, ranking []string) (Ballot, error) {
	if weight <= 0 {
		return Ballot{}, fmt.Errorf("%w: weight %d", ErrInvalidCount, weight)
	}

	if len(ranking) == 0 {
		return Ballot{}, ErrEmptyRanking
	}

	seen := make(map[string]struct{}, len(ranking))
	for _, name := range ranking {
		if _, dup := seen[name]; dup {
			return Ballot{}, fmt.Errorf("%w: %s", ErrDuplicateInRanking, name)
		}
		seen[name] = struct{}{}
	}

	return Ballot{Weight: weight, Ranking: ranking}, nil
}

// Election is the immutable input to every voting method: an ordered set
// of unique candidate names and a non-empty collection of ballots.
// Candidate order is the input order and is used as the tie-break and
// display order throughout the engine.
//
// Construct elections through NewElection so the invariants hold; treat
// the fields as read-only afterwards. Methods never mutate the receiver,
// so a single Election can be shared across concurrent tally runs.
type Election struct {
	// Candidates lists the unique candidate names in input order.
	Candidates []string `json:"candidates"`

	// Ballots holds the weighted ballots. Order is irrelevant to results
	// but preserved for reproducibility.
	Ballots []Ballot `json:"ballots"`
}

// NewElection validates and assembles an election from a candidate set
// and a ballot collection. It enforces candidate uniqueness and
// non-emptiness, requires at least one ballot, and checks every ballot
// ranking against the candidate set.
func NewElection(candidates []string, ballots []Ballot) (*Election, error) {
	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCandidate, name)
		}
		seen[name] = struct{}{}
	}

	if len(candidates) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	if len(ballots) == 0 {
		return nil, ErrEmptyBallotSet
	}

	for _, ballot := range ballots {
		if _, err := NewBallot(ballot.Weight, ballot.Ranking); err != nil {
			return nil, err
		}
		for _, name := range ballot.Ranking {
			if _, ok := seen[name]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCandidate, name)
			}
		}
	}

	return &Election{Candidates: candidates, Ballots: ballots}, nil
}

// CandidateCount returns the number of candidates standing.
func (e *Election) CandidateCount() int { return len(e.Candidates) }

// HasCandidate reports whether name belongs to the candidate set.
func (e *Election) HasCandidate(name string) bool {
	for _, c := range e.Candidates {
		if c == name {
			return true
		}
	}
	return false
}

// TotalWeight returns the combined weight of all ballots, i.e. the total
// number of voters represented by the election.
func (e *Election) TotalWeight() int {
	total := 0
	for _, b := range e.Ballots {
		total += b.Weight
	}
	return total
}
