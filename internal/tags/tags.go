// Package tags implements tag normalization and the case-insensitive
// equality rules shared by the project store, planner, and revert engine.
package tags

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a raw tag: Unicode NFC, trimmed, with internal
// whitespace runs collapsed to single spaces. An empty result means
// "no tag" and must be skipped by the caller.
func Normalize(raw string) string {
	s := norm.NFC.String(raw)
	return strings.Join(strings.Fields(s), " ")
}

// Equal reports case-insensitive equality of two tags.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Contains reports whether list already holds candidate under the
// case-insensitive equality rule.
func Contains(list []string, candidate string) bool {
	for _, t := range list {
		if Equal(t, candidate) {
			return true
		}
	}
	return false
}
