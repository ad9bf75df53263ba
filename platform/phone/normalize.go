// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import "strings"

// Clean keeps ASCII decimal digits and a single leading '+'.
// A '+' is kept only when it is the first character retained.
func Clean(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
