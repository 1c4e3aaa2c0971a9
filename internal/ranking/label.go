// Package ranking holds the training-time label and group derivation
// plus the serving-time scorer and aggregator. Column-order and group
// boundary contracts between the two paths live here.
package ranking

import (
	"fmt"
	"sort"

	"menurank/internal/domain"
)

const (
	// numGrades is the ordinal label range: 0..4.
	numGrades = 5
	// labelEpsilon nudges the maximal percentile (exactly 1.0) into
	// the top bucket instead of one past it.
	labelEpsilon = 1e-9
)

// Label assigns each row an ordinal relevance grade derived from raw
// in-day merit (price * margin * sales_count): rows are percentile
// ranked within their date group and bucketed into 5 grades. A group
// of size 1 always grades 4.
//
// Ties use the average-rank convention: rows with equal raw merit
// share the mean of the ranks they occupy, so duplicate raw scores
// always receive the same label.
func Label(t *domain.FeatureTable) error {
	if !t.HasDates() {
		return fmt.Errorf("cannot derive labels: feature table has no date column")
	}

	price, ok := t.ColumnIndex("price")
	if !ok {
		return fmt.Errorf("cannot derive labels: feature table has no price column")
	}
	margin, ok := t.ColumnIndex("margin")
	if !ok {
		return fmt.Errorf("cannot derive labels: feature table has no margin column")
	}
	sales, ok := t.ColumnIndex("sales_count")
	if !ok {
		return fmt.Errorf("cannot derive labels: feature table has no sales_count column")
	}

	raw := make([]float64, t.Len())
	for i, row := range t.Values {
		raw[i] = row[price] * row[margin] * row[sales]
	}

	labels := make([]int, t.Len())
	for _, group := range groupRows(t.Dates) {
		groupRaw := make([]float64, len(group))
		for i, r := range group {
			groupRaw[i] = raw[r]
		}
		for i, pct := range percentileRanks(groupRaw) {
			l := int(pct*numGrades - labelEpsilon)
			if l < 0 {
				l = 0
			}
			if l > numGrades-1 {
				l = numGrades - 1
			}
			labels[group[i]] = l
		}
	}

	t.Labels = labels
	return nil
}

// groupRows collects row indices per date in order of first
// appearance. Rows of one date need not be contiguous here; the group
// indexer enforces contiguity separately.
func groupRows(dates []string) [][]int {
	byDate := map[string][]int{}
	order := []string{}
	for i, d := range dates {
		if _, seen := byDate[d]; !seen {
			order = append(order, d)
		}
		byDate[d] = append(byDate[d], i)
	}
	groups := make([][]int, len(order))
	for i, d := range order {
		groups[i] = byDate[d]
	}
	return groups
}

// percentileRanks maps values to average-rank percentiles in (0, 1].
func percentileRanks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	out := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// 1-based ranks i+1..j+1 averaged across the tied block
		avgRank := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			out[idx[k]] = avgRank / float64(n)
		}
		i = j + 1
	}
	return out
}
