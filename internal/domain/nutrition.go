package domain

import "math"

// NutrientRecord is the resolved nutrient profile for one (food, grams) query.
// Source is a "+"-joined trail of every strategy or provider that contributed
// (e.g. "FEL-exact", "USDA", "FEL-exact+USDA-micro", "API_Ninjas+Atwater").
// LookupPath is the primary source only.
type NutrientRecord struct {
	ID             string  `json:"id"`
	FoodID         string  `json:"foodId"`
	CategoryID     string  `json:"categoryId"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Fat            float64 `json:"fat"`
	Carbs          float64 `json:"carbs"`
	Sugar          float64 `json:"sugar"`
	MicroNutrients string  `json:"microNutrients"`
	GramAmount     float64 `json:"gramAmount"`
	Source         string  `json:"source"`
	LookupPath     string  `json:"lookupPath"`
}

// ReferenceFood is one row of the local food-composition table, pre-normalized
// at load time. Nutrient values are per 100 g; PortionGrams is the authored
// reference portion kept as metadata only.
type ReferenceFood struct {
	RawName        string
	NormalizedName string
	PortionGrams   float64
	EnergyKcal     float64
	ProteinGrams   float64
	FatGrams       float64
	CarbsGrams     float64
	SugarGrams     float64
	Category       string
	MicroNutrients string
}

// HasMacros reports whether the row carries any usable macronutrient data.
func (r *ReferenceFood) HasMacros() bool {
	return r.ProteinGrams > 0 || r.FatGrams > 0 || r.CarbsGrams > 0
}

// FoodQuery is one (food name, grams) pair to resolve.
type FoodQuery struct {
	FoodName string  `json:"foodName"`
	Grams    float64 `json:"grams"`
}

// AtwaterCalories derives energy from macronutrients using the 4/4/9
// kcal-per-gram equivalence.
func AtwaterCalories(protein, carbs, fat float64) float64 {
	return 4*protein + 4*carbs + 9*fat
}

// Round2 rounds a nutrient value to 2 decimal places, clamping negative or
// non-finite inputs to zero so records always carry well-formed numbers.
func Round2(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
