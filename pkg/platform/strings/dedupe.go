// Package strings provides small slice helpers used at input boundaries.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and blank entries from raw input values,
// trimming whitespace from each element. Order of first occurrence is kept.
//
//	DedupeAndTrim([]string{"  a ", "b", "a", "", "  "}) // []string{"a", "b"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return Dedupe(trimmed)
}

// Dedupe removes repeated values, keeping the first occurrence of each.
func Dedupe[T comparable](values []T) []T {
	if len(values) == 0 {
		return values
	}
	seen := make(map[T]struct{}, len(values))
	result := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
