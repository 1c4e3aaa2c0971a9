package ranking

import (
	"fmt"

	"menurank/internal/domain"
)

// GroupSizes converts the table's date column into the contiguous
// query-group size sequence the listwise objective consumes: one
// count per distinct date, in order of first appearance, summing to
// the row count. The table must already be grouped so that all rows
// of a date are adjacent (SortByDate guarantees this); reordering the
// table afterwards invalidates the result.
func GroupSizes(t *domain.FeatureTable) ([]int, error) {
	if !t.HasDates() {
		return nil, fmt.Errorf("cannot derive group sizes: feature table has no date column")
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("cannot derive group sizes: feature table is empty")
	}

	seen := map[string]bool{}
	sizes := []int{}
	current := ""
	for i, d := range t.Dates {
		if i == 0 || d != current {
			if seen[d] {
				return nil, fmt.Errorf("rows for date %s are not contiguous", d)
			}
			seen[d] = true
			current = d
			sizes = append(sizes, 0)
		}
		sizes[len(sizes)-1]++
	}
	return sizes, nil
}
