package domain

import "sort"

// FeatureTable is the canonical exchange format between feature
// construction, training and scoring. One row per input statistics
// row; Values is row-major and exactly len(Columns) wide. Categories
// is UI-only and deliberately not part of Columns.
type FeatureTable struct {
	ProductIDs []int64
	Dates      []string // nil when the source statistics carried no dates
	Categories []string
	Columns    []string
	Values     [][]float64
	Labels     []int // set by the label generator, nil otherwise
}

func (t *FeatureTable) Len() int {
	return len(t.ProductIDs)
}

func (t *FeatureTable) HasDates() bool {
	return t.Dates != nil
}

// ColumnIndex returns the position of a named feature column, or
// false if the table does not carry it.
func (t *FeatureTable) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// SortByDate stable-sorts rows so that all rows of a date are
// contiguous and dates ascend. Training requires this ordering before
// labels and group sizes are derived.
func (t *FeatureTable) SortByDate() {
	if !t.HasDates() {
		return
	}
	idx := make([]int, t.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Dates[idx[a]] < t.Dates[idx[b]]
	})
	t.reorder(idx)
}

func (t *FeatureTable) reorder(idx []int) {
	productIDs := make([]int64, len(idx))
	dates := make([]string, len(idx))
	categories := make([]string, len(idx))
	values := make([][]float64, len(idx))
	for i, j := range idx {
		productIDs[i] = t.ProductIDs[j]
		dates[i] = t.Dates[j]
		categories[i] = t.Categories[j]
		values[i] = t.Values[j]
	}
	t.ProductIDs = productIDs
	t.Dates = dates
	t.Categories = categories
	t.Values = values
	if t.Labels != nil {
		labels := make([]int, len(idx))
		for i, j := range idx {
			labels[i] = t.Labels[j]
		}
		t.Labels = labels
	}
}
