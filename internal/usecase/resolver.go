package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/foodgapp/backend/internal/domain"
)

// Source labels used in the provenance trail.
const (
	sourceLocalPrefix = "FEL-"
	sourceAtwater     = "Atwater"
	sourceNone        = "None"
	lookupPathLocal   = "FEL"
)

// maxConcurrentResolves bounds the fan-out of a batch resolution.
const maxConcurrentResolves = 8

// Resolver orchestrates the resolution pipeline: normalize, cache lookup,
// local dataset match, provider fallback, calorie derivation, cache store.
// All state is owned and injected; there are no package-level caches.
type Resolver struct {
	matcher   *Matcher
	cache     domain.ResultCache
	providers []domain.NutritionProvider
}

// NewResolver creates a resolver over the given index, cache and provider
// chain. Providers are consulted in slice order.
func NewResolver(index domain.FoodIndex, cache domain.ResultCache, providers []domain.NutritionProvider) *Resolver {
	return &Resolver{
		matcher:   NewMatcher(index),
		cache:     cache,
		providers: providers,
	}
}

// Resolve turns a free-text food name and a gram amount into a nutrient
// record. It never fails: any internal failure degrades to the all-zero
// record with source "None".
func (r *Resolver) Resolve(ctx context.Context, foodName string, grams float64) *domain.NutrientRecord {
	name := domain.NormalizeFoodName(foodName)
	if grams <= 0 {
		grams = 100
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(name, grams); ok {
			return cached
		}
	}

	var record *domain.NutrientRecord
	usedProvider := false

	if row, kind := r.matcher.Find(name); row != nil && row.HasMacros() {
		record = r.scaleLocal(row, name, grams, kind)
		if record.MicroNutrients == "" {
			if micro, provider := r.backfillMicroNutrients(ctx, name, grams); micro != "" {
				record.MicroNutrients = micro
				record.Source += "+" + provider + "-micro"
				usedProvider = true
			}
		}
	} else {
		record = r.lookupProviders(ctx, name, grams)
		usedProvider = true
	}

	// Calories must never stay at zero while macros are known.
	if record.Calories <= 0 && (record.Protein > 0 || record.Fat > 0 || record.Carbs > 0) {
		record.Calories = domain.Round2(domain.AtwaterCalories(record.Protein, record.Carbs, record.Fat))
		record.Source += "+" + sourceAtwater
	}

	// Local-only resolutions are cheap to redo and make no network call, so
	// only results that needed a provider are memoized. A canceled caller
	// must not leave a write behind.
	if usedProvider && r.cache != nil && ctx.Err() == nil {
		r.cache.Put(name, grams, record)
	}

	return record
}

// ResolveAll resolves a batch of queries concurrently, preserving input
// order in the result slice.
func (r *Resolver) ResolveAll(ctx context.Context, queries []domain.FoodQuery) []*domain.NutrientRecord {
	results := make([]*domain.NutrientRecord, len(queries))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentResolves)
	for i, q := range queries {
		g.Go(func() error {
			results[i] = r.Resolve(gCtx, q.FoodName, q.Grams)
			return nil
		})
	}
	_ = g.Wait() // Resolve never returns an error

	return results
}

// scaleLocal builds a record from a dataset row. Local values are defined
// per 100 g, so scaling uses grams/100 regardless of the row's recorded
// reference portion.
func (r *Resolver) scaleLocal(row *domain.ReferenceFood, name string, grams float64, matchKind string) *domain.NutrientRecord {
	factor := grams / 100

	return &domain.NutrientRecord{
		ID:             uuid.NewString(),
		FoodID:         name,
		CategoryID:     row.Category,
		Calories:       domain.Round2(row.EnergyKcal * factor),
		Protein:        domain.Round2(row.ProteinGrams * factor),
		Fat:            domain.Round2(row.FatGrams * factor),
		Carbs:          domain.Round2(row.CarbsGrams * factor),
		Sugar:          domain.Round2(row.SugarGrams * factor),
		MicroNutrients: row.MicroNutrients,
		GramAmount:     grams,
		Source:         sourceLocalPrefix + matchKind,
		LookupPath:     lookupPathLocal,
	}
}

// lookupProviders walks the provider chain in priority order and returns the
// first usable record, or the all-zero fallback when every source declines.
func (r *Resolver) lookupProviders(ctx context.Context, name string, grams float64) *domain.NutrientRecord {
	for _, p := range r.providers {
		record, err := p.Lookup(ctx, name, grams)
		if err != nil {
			if !errors.Is(err, domain.ErrMissingCredentials) && !errors.Is(err, domain.ErrNoData) {
				log.Printf("[RESOLVE] %s lookup failed for %q: %v", p.Name(), name, err)
			}
			continue
		}
		if record != nil {
			return record
		}
	}

	return &domain.NutrientRecord{
		ID:         uuid.NewString(),
		FoodID:     name,
		CategoryID: sourceNone,
		GramAmount: grams,
		Source:     sourceNone,
		LookupPath: sourceNone,
	}
}

// backfillMicroNutrients asks the provider chain for micronutrient data only,
// returning the first non-empty summary and the contributing provider name.
// Macros of the local record are never touched.
func (r *Resolver) backfillMicroNutrients(ctx context.Context, name string, grams float64) (string, string) {
	for _, p := range r.providers {
		record, err := p.Lookup(ctx, name, grams)
		if err != nil || record == nil {
			continue
		}
		if record.MicroNutrients != "" {
			return record.MicroNutrients, p.Name()
		}
	}
	return "", ""
}
