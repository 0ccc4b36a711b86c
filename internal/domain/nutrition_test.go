package domain

import "testing"

func TestAtwaterCalories(t *testing.T) {
	tests := []struct {
		name                string
		protein, carbs, fat float64
		want                float64
	}{
		{"all zero", 0, 0, 0, 0},
		{"protein only", 10, 0, 0, 40},
		{"carbs only", 0, 10, 0, 40},
		{"fat only", 0, 0, 10, 90},
		{"mixed", 4, 20, 2, 114},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AtwaterCalories(tt.protein, tt.carbs, tt.fat); got != tt.want {
				t.Errorf("AtwaterCalories(%v, %v, %v) = %v, want %v", tt.protein, tt.carbs, tt.fat, got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"rounds half up", 1.005, 1.0}, // 1.005 is stored below 1.005 in binary
		{"two decimals kept", 17.91, 17.91},
		{"truncates long fraction", 1.23456, 1.23},
		{"negative clamps to zero", -3.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.input); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMicroNutrients(t *testing.T) {
	t.Run("formats and joins entries", func(t *testing.T) {
		got := FormatMicroNutrients([]MicroNutrient{
			{Name: "Fiber", Value: 2.5, Unit: "g"},
			{Name: "Sodium", Value: 300, Unit: "mg"},
		})
		want := "Fiber: 2.5g, Sodium: 300.0mg"
		if got != want {
			t.Errorf("FormatMicroNutrients() = %q, want %q", got, want)
		}
	})

	t.Run("drops values below threshold", func(t *testing.T) {
		got := FormatMicroNutrients([]MicroNutrient{
			{Name: "Iron", Value: 0.05, Unit: "mg"},
			{Name: "Calcium", Value: 120, Unit: "mg"},
		})
		want := "Calcium: 120.0mg"
		if got != want {
			t.Errorf("FormatMicroNutrients() = %q, want %q", got, want)
		}
	})

	t.Run("empty when nothing meaningful", func(t *testing.T) {
		got := FormatMicroNutrients([]MicroNutrient{{Name: "Iron", Value: 0.01, Unit: "mg"}})
		if got != "" {
			t.Errorf("FormatMicroNutrients() = %q, want empty", got)
		}
	})
}

func TestReferenceFoodHasMacros(t *testing.T) {
	row := ReferenceFood{}
	if row.HasMacros() {
		t.Error("HasMacros() = true for zero row, want false")
	}
	row.CarbsGrams = 0.5
	if !row.HasMacros() {
		t.Error("HasMacros() = false with nonzero carbs, want true")
	}
}
