// Package application orchestrates election simulations: it parses and
// validates raw input, manages the method registry, and runs the selected
// voting methods against a validated election.
package application

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"

	"github.com/ahrav/go-ballot/internal/domain"
)

// suggestionMaxDistance caps how far an unknown name may be from a known
// candidate before the parser stops offering a "did you mean" hint.
const suggestionMaxDistance = 2

// ParseCandidates parses a comma-separated candidate list into an ordered
// candidate set. Names are trimmed and NFC-normalized, and empty tokens
// are dropped. The duplicate check runs while scanning, so a duplicate
// name is reported before an empty result would be.
func ParseCandidates(raw string) ([]string, error) {
	var candidates []string
	seen := make(map[string]struct{})

	for _, token := range strings.Split(raw, ",") {
		name := norm.NFC.String(strings.TrimSpace(token))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, &domain.ParseError{
				Names: []string{name},
				Err:   domain.ErrDuplicateCandidate,
			}
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return nil, domain.NewParseError(0, domain.ErrEmptyCandidateSet)
	}

	return candidates, nil
}

// ParseBallots parses multi-line ballot text against a candidate set.
// Each non-blank line must have the form "count: ranking", where count is
// a positive integer and the ranking is a list of candidate names
// separated by "," or ">" indifferently. Blank lines are skipped but
// still counted, so every error reports the 1-based line number of the
// raw input. Per-line errors fire before the aggregate empty-ballot-set
// check.
func ParseBallots(raw string, candidates []string) ([]domain.Ballot, error) {
	known := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		known[name] = struct{}{}
	}

	var ballots []domain.Ballot
	for idx, line := range strings.Split(raw, "\n") {
		lineNo := idx + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		countText, rankingText, found := strings.Cut(line, ":")
		if !found {
			return nil, domain.NewParseError(lineNo, domain.ErrMalformedLine)
		}

		count, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil || count <= 0 {
			return nil, domain.NewParseError(lineNo, domain.ErrInvalidCount)
		}

		ranking, err := parseRanking(rankingText, lineNo)
		if err != nil {
			return nil, err
		}

		if unknown := unknownNames(ranking, known); len(unknown) > 0 {
			return nil, &domain.ParseError{
				Line:       lineNo,
				Names:      unknown,
				Suggestion: closestCandidate(unknown[0], candidates),
				Err:        domain.ErrUnknownCandidate,
			}
		}

		if len(ranking) == 0 {
			return nil, domain.NewParseError(lineNo, domain.ErrEmptyRanking)
		}

		ballot, err := domain.NewBallot(count, ranking)
		if err != nil {
			return nil, domain.NewParseError(lineNo, err)
		}
		ballots = append(ballots, ballot)
	}

	if len(ballots) == 0 {
		return nil, domain.NewParseError(0, domain.ErrEmptyBallotSet)
	}

	return ballots, nil
}

// parseRanking tokenizes the ranking side of a ballot line. "," and ">"
// both act as separators; tokens are trimmed and NFC-normalized, empty
// tokens dropped, and duplicates rejected.
func parseRanking(text string, lineNo int) ([]string, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '>'
	})

	ranking := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		name := norm.NFC.String(strings.TrimSpace(token))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, &domain.ParseError{
				Line:  lineNo,
				Names: []string{name},
				Err:   domain.ErrDuplicateInRanking,
			}
		}
		seen[name] = struct{}{}
		ranking = append(ranking, name)
	}

	return ranking, nil
}

// unknownNames returns the ranking entries absent from the candidate set,
// in ranking order.
func unknownNames(ranking []string, known map[string]struct{}) []string {
	var unknown []string
	for _, name := range ranking {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// closestCandidate returns the known candidate nearest to name by edit
// distance, or empty when nothing is close enough to be a plausible typo.
// The suggestion is advisory context for error messages only; it never
// affects whether input is accepted.
func closestCandidate(name string, candidates []string) string {
	best := ""
	bestDistance := suggestionMaxDistance + 1
	for _, candidate := range candidates {
		if distance := levenshtein.ComputeDistance(name, candidate); distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}
