package cache

import (
	"math"
	"sync"

	"github.com/foodgapp/backend/internal/domain"
)

// resultKey identifies one memoized resolution: the normalized food name and
// the gram amount rounded to the nearest whole unit.
type resultKey struct {
	name  string
	grams int
}

// Memory is a thread-safe in-memory result cache. Entries never expire and
// the cache is unbounded; it lives for the process lifetime, which is
// acceptable at the expected request volume.
type Memory struct {
	mu   sync.RWMutex
	data map[resultKey]*domain.NutrientRecord
}

// NewMemory creates an empty result cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[resultKey]*domain.NutrientRecord)}
}

// Get retrieves a previously stored record for the (food, grams) pair.
func (c *Memory) Get(foodName string, grams float64) (*domain.NutrientRecord, bool) {
	k := makeKey(foodName, grams)

	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.data[k]
	return record, ok
}

// Put stores a record under the (food, grams) pair. Records are treated as
// immutable once stored.
func (c *Memory) Put(foodName string, grams float64, record *domain.NutrientRecord) {
	k := makeKey(foodName, grams)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[k] = record
}

// Size returns the current number of cached records.
func (c *Memory) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear removes all cached records.
func (c *Memory) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[resultKey]*domain.NutrientRecord)
}

func makeKey(foodName string, grams float64) resultKey {
	return resultKey{
		name:  domain.NormalizeFoodName(foodName),
		grams: int(math.Round(grams)),
	}
}
