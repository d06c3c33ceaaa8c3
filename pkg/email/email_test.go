package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "marie@example.org", Normalize("  Marie@Example.ORG "))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"marie@example.org", true},
		{"marie.dupont+parrain@example.org", true},
		{"", false},
		{"not-an-email", false},
		{"Marie <marie@example.org>", false},
		{"@example.org", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.in))
		})
	}
}

func TestDeriveFullName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"marie.dupont@example.org", "Marie Dupont"},
		{"JEAN_pierre-martin@example.org", "Jean Martin"},
		{"solo@example.org", "Solo"},
		{"42@example.org", ""},
		{"no-at-sign", "No Sign"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFullName(tt.in))
		})
	}
}
