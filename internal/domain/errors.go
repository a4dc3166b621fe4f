package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors surfaced while building an election from raw input.
// All of them are detected synchronously during parsing or construction;
// the voting methods themselves are total over validated elections and
// never fail once input has been accepted.
var (
	// ErrDuplicateCandidate indicates that a candidate name appears more
	// than once in the candidate list.
	ErrDuplicateCandidate = errors.New("duplicate candidate name")

	// ErrEmptyCandidateSet indicates that no candidate names were provided.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrMalformedLine indicates a ballot line missing the "count: ranking"
	// separator.
	ErrMalformedLine = errors.New("malformed ballot line")

	// ErrInvalidCount indicates a ballot count that is not a positive integer.
	ErrInvalidCount = errors.New("invalid ballot count")

	// ErrDuplicateInRanking indicates a candidate repeated within a single
	// ballot ranking.
	ErrDuplicateInRanking = errors.New("duplicate candidate in ranking")

	// ErrUnknownCandidate indicates a ranking entry that is not part of the
	// candidate set.
	ErrUnknownCandidate = errors.New("unknown candidate")

	// ErrEmptyRanking indicates a ballot whose ranking contains no
	// candidates after tokenization.
	ErrEmptyRanking = errors.New("empty ballot ranking")

	// ErrEmptyBallotSet indicates that no ballots were produced from the
	// input.
	ErrEmptyBallotSet = errors.New("empty ballot set")

	// ErrNoMethodSelected indicates that a simulation was requested with
	// no voting method enabled. It is raised by the orchestration layer,
	// never by the methods themselves.
	ErrNoMethodSelected = errors.New("no voting method selected")
)

// ParseError annotates a validation error with the position and names
// needed to render a useful user-facing message. Line is the 1-based line
// number of the raw ballot input, counting blank lines; it is zero for
// errors that are not tied to a particular line.
type ParseError struct {
	// Line is the 1-based input line the error refers to, or zero.
	Line int

	// Names lists the candidate names involved, such as the unknown
	// names on a ballot line.
	Names []string

	// Suggestion optionally holds the closest known candidate name for
	// an unknown-candidate error.
	Suggestion string

	// Err is the underlying sentinel describing the error kind.
	Err error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Err.Error())
	if len(e.Names) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Names, ", "))
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}

// Unwrap returns the underlying sentinel, supporting errors.Is checks.
func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a ParseError for the given line and sentinel.
func NewParseError(line int, err error) *ParseError {
	return &ParseError{Line: line, Err: err}
}
