package domain

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// NormalizeFoodName canonicalizes a free-text food name for comparison.
// Lowercases, replaces every non letter/digit/whitespace character with a
// space, collapses whitespace runs, and trims. Total: any input (including
// the empty string) yields a valid, possibly empty, result. Idempotent.
func NormalizeFoodName(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
