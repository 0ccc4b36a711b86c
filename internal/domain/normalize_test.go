package domain

import "testing"

func TestNormalizeFoodName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "pork adobo", "pork adobo"},
		{"mixed case", "Pork Adobo", "pork adobo"},
		{"punctuation becomes space", "Pork-Adobo!!", "pork adobo"},
		{"whitespace collapses", "  pork   adobo  ", "pork adobo"},
		{"digits kept", "7up float", "7up float"},
		{"only punctuation", "?!,.", ""},
		{"empty input", "", ""},
		{"tabs and newlines", "pork\tadobo\n", "pork adobo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFoodName(tt.input); got != tt.want {
				t.Errorf("NormalizeFoodName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeFoodName_Idempotent(t *testing.T) {
	inputs := []string{"Pork-Adobo!!", "  Chicken   Curry ", "café au lait", "", "123!?abc"}

	for _, input := range inputs {
		once := NormalizeFoodName(input)
		twice := NormalizeFoodName(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
