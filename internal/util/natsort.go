package util

import (
	"strings"
	"unicode"
)

// NaturalLess compares two strings using natural (numeric-aware,
// case-insensitive) ordering, so "img2.jpg" sorts before "img10.jpg".
func NaturalLess(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := rune(a[i]), rune(b[j])

		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			// Compare the full digit runs numerically
			ia := i
			for i < len(a) && unicode.IsDigit(rune(a[i])) {
				i++
			}
			jb := j
			for j < len(b) && unicode.IsDigit(rune(b[j])) {
				j++
			}

			// Strip leading zeros so "007" and "7" compare equal in value
			na := strings.TrimLeft(a[ia:i], "0")
			nb := strings.TrimLeft(b[jb:j], "0")

			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}

		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}

	return len(a)-i < len(b)-j
}
