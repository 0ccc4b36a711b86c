package domain

import "context"

// FoodIndex is the read-only view of the local food-composition table.
// Implementations are immutable after load and safe for concurrent reads.
type FoodIndex interface {
	// Exact returns the first row whose normalized name equals name.
	Exact(name string) (*ReferenceFood, bool)
	// Rows returns all rows in the original table order.
	Rows() []ReferenceFood
	// Names returns the distinct normalized names in first-seen order.
	Names() []string
}

// NutritionProvider is one external nutrition data source. Lookup returns a
// record scaled to grams, or ErrNoData/ErrMissingCredentials when the source
// has nothing to offer. Implementations never panic and bound their own
// network timeouts.
type NutritionProvider interface {
	Name() string
	Lookup(ctx context.Context, foodName string, grams float64) (*NutrientRecord, error)
}

// ResultCache memoizes resolver output keyed by the normalized food name and
// the gram amount rounded to the nearest whole unit. Implementations must be
// safe for concurrent use.
type ResultCache interface {
	Get(foodName string, grams float64) (*NutrientRecord, bool)
	Put(foodName string, grams float64, record *NutrientRecord)
}

// FoodRecognizer turns an uploaded image into a free-text food name.
type FoodRecognizer interface {
	RecognizeFood(ctx context.Context, image []byte) (string, error)
}
