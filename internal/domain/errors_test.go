package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "line number prefixes message",
			err:  NewParseError(3, ErrMalformedLine),
			want: "line 3: malformed ballot line",
		},
		{
			name: "aggregate error carries no line",
			err:  NewParseError(0, ErrEmptyBallotSet),
			want: "empty ballot set",
		},
		{
			name: "names are appended",
			err: &ParseError{
				Line:  2,
				Names: []string{"Mallory", "Eve"},
				Err:   ErrUnknownCandidate,
			},
			want: "line 2: unknown candidate: Mallory, Eve",
		},
		{
			name: "suggestion is appended",
			err: &ParseError{
				Line:       1,
				Names:      []string{"Alce"},
				Suggestion: "Alice",
				Err:        ErrUnknownCandidate,
			},
			want: `line 1: unknown candidate: Alce (did you mean "Alice"?)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	err := NewParseError(7, ErrInvalidCount)

	assert.True(t, errors.Is(err, ErrInvalidCount))
	assert.False(t, errors.Is(err, ErrMalformedLine))
}
