package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/foodgapp/backend/internal/domain"
)

func TestMemoryGetPut(t *testing.T) {
	c := NewMemory()

	if _, ok := c.Get("pork adobo", 100); ok {
		t.Error("Get on empty cache reported a hit")
	}

	record := &domain.NutrientRecord{FoodID: "pork adobo", Calories: 250, GramAmount: 100}
	c.Put("pork adobo", 100, record)

	got, ok := c.Get("pork adobo", 100)
	if !ok {
		t.Fatal("Get after Put reported a miss")
	}
	if got != record {
		t.Error("Get returned a different record than stored")
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestMemoryKeyNormalization(t *testing.T) {
	c := NewMemory()
	record := &domain.NutrientRecord{FoodID: "pork adobo"}

	c.Put("Pork-Adobo!!", 100.4, record)

	tests := []struct {
		name  string
		food  string
		grams float64
		want  bool
	}{
		{"normalized variant hits", "pork adobo", 100, true},
		{"extra whitespace hits", "  pork   adobo ", 100, true},
		{"grams round to same key", "pork adobo", 99.6, true},
		{"different grams miss", "pork adobo", 200, false},
		{"different food misses", "chicken curry", 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := c.Get(tt.food, tt.grams); ok != tt.want {
				t.Errorf("Get(%q, %v) hit = %v, want %v", tt.food, tt.grams, ok, tt.want)
			}
		})
	}

	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1 entry shared by all variants", c.Size())
	}
}

func TestMemoryClear(t *testing.T) {
	c := NewMemory()
	c.Put("pork adobo", 100, &domain.NutrientRecord{})
	c.Put("chicken curry", 150, &domain.NutrientRecord{})

	c.Clear()

	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", c.Size())
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	c := NewMemory()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			food := fmt.Sprintf("food %d", n%10)
			c.Put(food, float64(n%10)*100, &domain.NutrientRecord{FoodID: food})
			c.Get(food, float64(n%10)*100)
		}(i)
	}
	wg.Wait()

	if c.Size() == 0 {
		t.Error("Size() = 0 after concurrent writes")
	}
}
