package ranking

import (
	"fmt"

	"menurank/internal/domain"
	"menurank/internal/features"
	"menurank/internal/gbrt"
)

// TrainModel runs the full training path on a dated feature table:
// stable date sort, label derivation, group-size encoding, then
// boosting. The returned artifact carries the exact column selection
// used, recorded as the manifest. Any failure aborts before an
// artifact exists.
func TrainModel(t *domain.FeatureTable, cfg gbrt.Config) (*gbrt.Artifact, error) {
	t.SortByDate()

	if err := Label(t); err != nil {
		return nil, fmt.Errorf("failed to derive relevance labels: %w", err)
	}
	groupSizes, err := GroupSizes(t)
	if err != nil {
		return nil, fmt.Errorf("failed to derive query groups: %w", err)
	}

	manifest := features.Columns()
	matrix, err := SelectColumns(t, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble training matrix: %w", err)
	}

	ensemble, err := gbrt.Train(matrix, t.Labels, groupSizes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to train ranking model: %w", err)
	}

	return &gbrt.Artifact{Ensemble: ensemble, Features: manifest}, nil
}
