package utils

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidInput reports whether a prefix is worth querying: valid UTF-8,
// no control characters and not a run of one repeated character.
func IsValidInput(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return !IsRepetitive(s)
}

// IsRepetitive checks if a string is one character repeated 3+ times,
// like "aaa" or "zzzz"
func IsRepetitive(s string) bool {
	if utf8.RuneCountInString(s) <= 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}

// FormatWithCommas formats the integer part of a weight with comma
// separators and keeps up to two decimals, e.g. 1234567.5 -> "1,234,567.5"
func FormatWithCommas(weight float64) string {
	str := strconv.FormatFloat(weight, 'f', -1, 64)
	intPart, frac, hasFrac := strings.Cut(str, ".")
	if hasFrac && len(frac) > 2 {
		frac = frac[:2]
	}

	var sb strings.Builder
	for i, char := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(char)
	}
	if hasFrac {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}
