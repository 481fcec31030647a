package utils

import (
	// Go Internal Packages
	"strings"
)

// StripSeparators removes the spaces and dashes people type inside phone-style numbers.
func StripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '\t':
			return -1
		}
		return r
	}, s)
}

// MaskAccountNumber keeps the first two and last three characters visible.
func MaskAccountNumber(s string) string {
	if len(s) <= 5 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-5) + s[len(s)-3:]
}
