package ranking

import (
	"fmt"
	"sort"

	"menurank/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Aggregate reduces per-day scores to one ranked row per product:
// arithmetic mean across all scored dates, joined back to catalog
// attributes, sorted by score descending. Products absent from the
// scored rows are absent from the output.
//
// The sort is stable over products pre-sorted by ascending id, so
// score ties break toward the lower product id. Ranks are gapless
// 1..N and assigned before any caller-side truncation; when
// normalize is set, score_norm spans the full aggregated set.
func Aggregate(scored []domain.ScoredRow, products []domain.Product, normalize bool) ([]domain.RankedResult, error) {
	if len(scored) == 0 {
		return []domain.RankedResult{}, nil
	}

	scoresByProduct := map[int64][]float64{}
	for _, row := range scored {
		scoresByProduct[row.ProductID] = append(scoresByProduct[row.ProductID], row.Score)
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]domain.RankedResult, 0, len(scoresByProduct))
	for id, scores := range scoresByProduct {
		mean, err := stats.Mean(scores)
		if err != nil {
			return nil, fmt.Errorf("failed to average scores for product %d: %w", id, err)
		}
		r := domain.RankedResult{ProductID: id, Score: mean}
		if p, ok := byID[id]; ok {
			r.Name = p.Name
			r.Price = p.Price
			r.Margin = p.Margin
		}
		out = append(out, r)
	}

	sort.Slice(out, func(a, b int) bool {
		return out[a].ProductID < out[b].ProductID
	})
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})

	if normalize {
		if err := normalizeScores(out); err != nil {
			return nil, err
		}
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// normalizeScores maps scores onto [0,100] rounded to one decimal.
// When every score is equal the range is treated as 1, so all rows
// get the same value instead of a division by zero.
func normalizeScores(rows []domain.RankedResult) error {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Score
	}
	min, err := stats.Min(values)
	if err != nil {
		return fmt.Errorf("failed to normalize scores: %w", err)
	}
	max, err := stats.Max(values)
	if err != nil {
		return fmt.Errorf("failed to normalize scores: %w", err)
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}
	for i := range rows {
		norm := decimal.NewFromFloat((rows[i].Score - min) / rng * 100).
			Round(1).InexactFloat64()
		rows[i].ScoreNorm = &norm
	}
	return nil
}
