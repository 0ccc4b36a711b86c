package dataset

import (
	"github.com/foodgapp/backend/internal/domain"
)

// Index is the in-memory view of the local food-composition table.
// It is immutable after load and safe for unsynchronized concurrent reads.
type Index struct {
	rows   []domain.ReferenceFood
	byName map[string]int
	names  []string
}

func newIndex() *Index {
	return &Index{byName: make(map[string]int)}
}

// add appends a row, keeping the first occurrence for exact lookups when
// normalized names collide.
func (ix *Index) add(row domain.ReferenceFood) {
	ix.rows = append(ix.rows, row)
	if _, seen := ix.byName[row.NormalizedName]; !seen {
		ix.byName[row.NormalizedName] = len(ix.rows) - 1
		ix.names = append(ix.names, row.NormalizedName)
	}
}

// Exact returns the first row whose normalized name equals name.
func (ix *Index) Exact(name string) (*domain.ReferenceFood, bool) {
	i, ok := ix.byName[name]
	if !ok {
		return nil, false
	}
	return &ix.rows[i], true
}

// Rows returns all rows in the original table order.
func (ix *Index) Rows() []domain.ReferenceFood {
	return ix.rows
}

// Names returns the distinct normalized names in first-seen order.
func (ix *Index) Names() []string {
	return ix.names
}

// Len returns the number of loaded rows.
func (ix *Index) Len() int {
	return len(ix.rows)
}
