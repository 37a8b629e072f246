// File: stringx.go
// Title: String Utility Functions
// Description: Unicode-aware helpers used for command-name matching and
//              terminal table output: blank checks, padding, truncation
//              and edit distance for "did you mean" suggestions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-14 v0.2.0: Reduced to matching and layout helpers, added Distance

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Truncate shortens s to maxLen runes, ending in ellipsis when cut.
// Multi-byte characters are never split.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// PadRight pads s with pad to width runes. Longer strings are returned as-is.
func PadRight(s string, width int, pad rune) string {
	count := utf8.RuneCountInString(s)
	if count >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-count)
}

// Distance returns the Levenshtein edit distance between a and b,
// comparing runes case-insensitively.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Closest returns the candidate nearest to s within maxDistance edits.
// Ties go to the earlier candidate.
func Closest(s string, candidates []string, maxDistance int) (string, bool) {
	best, bestDistance := "", maxDistance+1
	for _, candidate := range candidates {
		if d := Distance(s, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best, best != ""
}
