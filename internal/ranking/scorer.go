package ranking

import (
	"errors"
	"fmt"
	"sort"

	"menurank/internal/domain"
	"menurank/internal/gbrt"
)

// ErrMissingColumn marks a feature table that lacks a column the
// model's manifest requires. Scoring never zero-fills a manifest
// column; the request fails instead.
var ErrMissingColumn = errors.New("feature table is missing a manifest column")

// Scorer computes model scores for feature tables. The artifact is
// immutable once constructed and safe for concurrent use.
type Scorer struct {
	artifact *gbrt.Artifact
}

func NewScorer(artifact *gbrt.Artifact) *Scorer {
	return &Scorer{artifact: artifact}
}

// Score selects and orders the table's columns strictly per the
// manifest, predicts one score per row, and returns rows sorted by
// score descending (stable, so equal scores keep table order). Dates
// are carried through when the table has them.
func (s *Scorer) Score(t *domain.FeatureTable) ([]domain.ScoredRow, error) {
	matrix, err := SelectColumns(t, s.artifact.Features)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ScoredRow, t.Len())
	for i := range matrix {
		out[i] = domain.ScoredRow{
			ProductID: t.ProductIDs[i],
			Score:     s.artifact.Ensemble.Predict(matrix[i]),
		}
		if t.HasDates() {
			out[i].Date = t.Dates[i]
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out, nil
}

// SelectColumns projects the table onto the named columns in the
// given order. Any absent column fails the whole projection.
func SelectColumns(t *domain.FeatureTable, columns []string) ([][]float64, error) {
	idx := make([]int, len(columns))
	for i, name := range columns {
		j, ok := t.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		idx[i] = j
	}

	matrix := make([][]float64, t.Len())
	for r, row := range t.Values {
		selected := make([]float64, len(idx))
		for i, j := range idx {
			selected[i] = row[j]
		}
		matrix[r] = selected
	}
	return matrix, nil
}
