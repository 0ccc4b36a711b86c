package domain

import (
	"fmt"
	"strings"
)

// minMeaningfulValue is the threshold below which a micronutrient reading is
// considered noise and omitted from the formatted summary.
const minMeaningfulValue = 0.1

// MicroNutrient is one extracted micronutrient reading from a provider.
type MicroNutrient struct {
	Name  string
	Value float64
	Unit  string
}

// FormatMicroNutrients renders provider micronutrient readings as
// "Name: <value><unit>" entries joined by ", ". Readings below the
// meaningful-value threshold are dropped; an empty result means the provider
// had nothing worth reporting.
func FormatMicroNutrients(entries []MicroNutrient) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Value < minMeaningfulValue {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %.1f%s", e.Name, e.Value, e.Unit))
	}
	return strings.Join(parts, ", ")
}
