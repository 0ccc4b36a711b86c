package usecase

import (
	"strings"

	"github.com/foodgapp/backend/internal/domain"
)

// Match kinds reported by the matcher cascade.
const (
	MatchExact    = "exact"
	MatchTokenSet = "tokenset"
	MatchContains = "contains"
	MatchFuzzy    = "fuzzy"
)

// fuzzyMatchThreshold is the minimum similarity ratio for a fuzzy hit.
const fuzzyMatchThreshold = 0.75

// Matcher finds the best local dataset row for a normalized query using an
// ordered strategy cascade: exact, token-set, substring, fuzzy. The first
// strategy that produces a hit wins; within a strategy, the first row in the
// table's original order wins.
type Matcher struct {
	index domain.FoodIndex
}

// NewMatcher creates a matcher over the given index.
func NewMatcher(index domain.FoodIndex) *Matcher {
	return &Matcher{index: index}
}

// Find returns the best matching row and the match kind, or (nil, "") when
// no strategy succeeds.
func (m *Matcher) Find(normalizedQuery string) (*domain.ReferenceFood, string) {
	if m.index == nil || normalizedQuery == "" {
		return nil, ""
	}

	if row, ok := m.index.Exact(normalizedQuery); ok {
		return row, MatchExact
	}

	rows := m.index.Rows()
	queryTokens := tokenSet(normalizedQuery)

	for i := range rows {
		rowTokens := tokenSet(rows[i].NormalizedName)
		if isSubset(queryTokens, rowTokens) || isSubset(rowTokens, queryTokens) {
			return &rows[i], MatchTokenSet
		}
	}

	for i := range rows {
		if strings.Contains(rows[i].NormalizedName, normalizedQuery) {
			return &rows[i], MatchContains
		}
	}

	if name, ok := m.bestFuzzyName(normalizedQuery); ok {
		if row, found := m.index.Exact(name); found {
			return row, MatchFuzzy
		}
	}

	return nil, ""
}

// bestFuzzyName scans the distinct normalized names for the single closest
// one, accepting it only when the similarity ratio meets the threshold.
func (m *Matcher) bestFuzzyName(query string) (string, bool) {
	bestName := ""
	bestRatio := 0.0

	for _, name := range m.index.Names() {
		if ratio := similarityRatio(query, name); ratio > bestRatio {
			bestRatio = ratio
			bestName = name
		}
	}

	if bestRatio < fuzzyMatchThreshold {
		return "", false
	}
	return bestName, true
}

// tokenSet splits a normalized name into its set of whitespace-separated tokens.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(s) {
		set[token] = true
	}
	return set
}

// isSubset reports whether every token of a appears in b. Empty sets never
// qualify so a blank name cannot match everything.
func isSubset(a, b map[string]bool) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for token := range a {
		if !b[token] {
			return false
		}
	}
	return true
}

// similarityRatio computes an edit-distance based similarity in [0, 1]:
// 1 means identical, 0 means nothing in common.
func similarityRatio(s1, s2 string) float64 {
	if s1 == s2 {
		return 1
	}

	longest := len([]rune(s1))
	if l2 := len([]rune(s2)); l2 > longest {
		longest = l2
	}
	if longest == 0 {
		return 1
	}

	return 1 - float64(levenshteinDistance(s1, s2))/float64(longest)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of a full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
