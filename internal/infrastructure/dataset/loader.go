package dataset

import (
	"encoding/csv"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/foodgapp/backend/internal/domain"
)

// Candidate header names per concept; the first one present in the file wins.
// A concept with no matching column falls back to its field default.
var (
	nameColumns     = []string{"Food", "FoodName", "Name"}
	portionColumns  = []string{"Portion(g)", "Portion", "ServingSize(g)"}
	energyColumns   = []string{"Energy(kcal)", "Energy", "Calories", "Kcal"}
	proteinColumns  = []string{"PRO(g)", "Protein(g)", "Protein"}
	fatColumns      = []string{"FAT(g)", "Fat(g)", "Fat"}
	carbColumns     = []string{"CHO(g)", "Carbs(g)", "Carbohydrates(g)", "Carbs"}
	sugarColumns    = []string{"Sugar(g)", "Sugars(g)", "Sugar"}
	microColumns    = []string{"Micronutrients", "MicroNutrients", "Micro"}
	categoryColumns = []string{"Category", "FoodCategory", "Group"}
)

const (
	defaultPortionGrams = 100
	defaultCategory     = "Unknown"
)

// Loaded indexes are memoized per path: the dataset is read once per process
// and every later Load call returns the identical in-memory structure.
var (
	loadMu sync.Mutex
	loaded = make(map[string]*Index)
)

// Load reads the food-composition table at path into an Index. A missing or
// unparseable file yields an empty index rather than an error, pushing every
// query to the provider fallback chain.
func Load(path string) *Index {
	loadMu.Lock()
	defer loadMu.Unlock()

	if ix, ok := loaded[path]; ok {
		return ix
	}

	ix := loadFile(path)
	loaded[path] = ix
	return ix
}

func loadFile(path string) *Index {
	ix := newIndex()

	f, err := os.Open(path)
	if err != nil {
		log.Printf("[DATASET] cannot open %s: %v (all queries will use provider fallback)", path, err)
		return ix
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		log.Printf("[DATASET] cannot parse %s: %v (all queries will use provider fallback)", path, err)
		return ix
	}
	if len(records) < 2 {
		log.Printf("[DATASET] %s has no data rows", path)
		return ix
	}

	cols := resolveColumns(records[0])
	if cols.name < 0 {
		log.Printf("[DATASET] %s has no recognizable food-name column", path)
		return ix
	}

	for _, record := range records[1:] {
		rawName := field(record, cols.name)
		normalized := domain.NormalizeFoodName(rawName)
		if normalized == "" {
			continue
		}

		ix.add(domain.ReferenceFood{
			RawName:        strings.TrimSpace(rawName),
			NormalizedName: normalized,
			PortionGrams:   portionField(record, cols.portion),
			EnergyKcal:     numericField(record, cols.energy, 0),
			ProteinGrams:   numericField(record, cols.protein, 0),
			FatGrams:       numericField(record, cols.fat, 0),
			CarbsGrams:     numericField(record, cols.carbs, 0),
			SugarGrams:     numericField(record, cols.sugar, 0),
			Category:       textField(record, cols.category, defaultCategory),
			MicroNutrients: textField(record, cols.micro, ""),
		})
	}

	log.Printf("[DATASET] loaded %d rows from %s", ix.Len(), path)
	return ix
}

// columnMap holds the resolved column position per concept, -1 when absent.
type columnMap struct {
	name, portion, energy, protein, fat, carbs, sugar, micro, category int
}

func resolveColumns(header []string) columnMap {
	find := func(candidates []string) int {
		for _, want := range candidates {
			for i, got := range header {
				if strings.EqualFold(strings.TrimSpace(got), want) {
					return i
				}
			}
		}
		return -1
	}

	return columnMap{
		name:     find(nameColumns),
		portion:  find(portionColumns),
		energy:   find(energyColumns),
		protein:  find(proteinColumns),
		fat:      find(fatColumns),
		carbs:    find(carbColumns),
		sugar:    find(sugarColumns),
		micro:    find(microColumns),
		category: find(categoryColumns),
	}
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func textField(record []string, i int, def string) string {
	v := strings.TrimSpace(field(record, i))
	if v == "" {
		return def
	}
	return v
}

// numericField parses a cell as a non-negative finite number, coercing
// anything unparseable (or negative) to the default rather than failing
// the load.
func numericField(record []string, i int, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field(record, i)), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// portionField treats a zero or invalid reference portion as the standard
// 100 g.
func portionField(record []string, i int) float64 {
	if v := numericField(record, i, 0); v > 0 {
		return v
	}
	return defaultPortionGrams
}
