package gbrt

import (
	"math"
	"sort"
)

// discount for 1-based rank position
func positionDiscount(pos int) float64 {
	return 1 / math.Log2(float64(pos)+1)
}

// rankedOrder returns row indices sorted by score descending, stable
// so equal scores keep input order.
func rankedOrder(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

func dcgAt(gains []float64, order []int, k int) float64 {
	if k <= 0 || k > len(order) {
		k = len(order)
	}
	var dcg float64
	for pos := 1; pos <= k; pos++ {
		dcg += gains[order[pos-1]] * positionDiscount(pos)
	}
	return dcg
}

// NDCGAt computes normalized discounted cumulative gain at cutoff k
// for one query group. Groups with no positive gain score 1 (nothing
// to misplace).
func NDCGAt(scores []float64, gains []float64, k int) float64 {
	ideal := make([]float64, len(gains))
	copy(ideal, gains)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))

	idealOrder := make([]int, len(ideal))
	for i := range idealOrder {
		idealOrder[i] = i
	}
	idcg := dcgAt(ideal, idealOrder, k)
	if idcg == 0 {
		return 1
	}
	return dcgAt(gains, rankedOrder(scores), k) / idcg
}

// MeanNDCGAt averages per-group NDCG over contiguous groups.
func MeanNDCGAt(scores []float64, gains []float64, groupSizes []int, k int) float64 {
	if len(groupSizes) == 0 {
		return 0
	}
	var sum float64
	offset := 0
	for _, size := range groupSizes {
		sum += NDCGAt(scores[offset:offset+size], gains[offset:offset+size], k)
		offset += size
	}
	return sum / float64(len(groupSizes))
}
