// Package stringutil provides common string manipulation utilities.
package stringutil

import "strings"

// Ellipsis marks truncated text.
const Ellipsis = "..."

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TruncateRunes shortens s to at most limit runes, ending the cut text with
// Ellipsis. Limits too small to hold the ellipsis cut without one.
//
// Example:
//
//	TruncateRunes("hello world", 5) returns "he..."
//	TruncateRunes("你好世界你好", 5) returns "你好..."
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= len(Ellipsis) {
		return string(runes[:limit])
	}
	return strings.TrimSpace(string(runes[:limit-len(Ellipsis)])) + Ellipsis
}
