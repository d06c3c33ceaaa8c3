package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{name: "single element", input: []string{"a"}, expected: []string{"a"}},
		{name: "trims and drops blanks", input: []string{"  a ", "", "   ", "b"}, expected: []string{"a", "b"}},
		{name: "keeps first occurrence order", input: []string{"b", "a", " b", "a "}, expected: []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupe_TypedValues(t *testing.T) {
	type sponsorshipID [2]byte
	a, b := sponsorshipID{1}, sponsorshipID{2}

	assert.Equal(t, []sponsorshipID{a, b}, Dedupe([]sponsorshipID{a, b, a, a, b}))
}
