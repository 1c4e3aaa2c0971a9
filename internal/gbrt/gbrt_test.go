package gbrt

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_TreePredict(t *testing.T) {
	tree := Tree{Nodes: []Node{
		{Feature: 0, Threshold: 5, Left: 1, Right: 2},
		{Leaf: true, Value: -1},
		{Feature: 1, Threshold: 0.5, Left: 3, Right: 4},
		{Leaf: true, Value: 2},
		{Leaf: true, Value: 3},
	}}

	require.Equal(t, -1.0, tree.Predict([]float64{5, 0}))
	require.Equal(t, 2.0, tree.Predict([]float64{6, 0.5}))
	require.Equal(t, 3.0, tree.Predict([]float64{6, 0.6}))
}

func Test_NDCGAt(t *testing.T) {
	gains := []float64{0, 3}

	t.Run("perfect order is 1", func(t *testing.T) {
		require.Equal(t, 1.0, NDCGAt([]float64{0.1, 0.9}, gains, 10))
	})

	t.Run("inverted order discounts the relevant item", func(t *testing.T) {
		got := NDCGAt([]float64{0.9, 0.1}, gains, 10)
		require.InDelta(t, 1/math.Log2(3), got, 1e-12)
	})

	t.Run("no positive gain scores 1", func(t *testing.T) {
		require.Equal(t, 1.0, NDCGAt([]float64{0.5, 0.4}, []float64{0, 0}, 5))
	})

	t.Run("cutoff limits the evaluated prefix", func(t *testing.T) {
		// relevant item at position 2 is invisible at cutoff 1
		require.Equal(t, 0.0, NDCGAt([]float64{0.9, 0.1}, gains, 1))
	})
}

func Test_Train(t *testing.T) {
	t.Run("rejects inconsistent shapes", func(t *testing.T) {
		x := [][]float64{{1}, {2}}

		_, err := Train(x, []int{1}, []int{2}, DefaultConfig())
		require.ErrorContains(t, err, "label count")

		_, err = Train(x, []int{1, 0}, []int{3}, DefaultConfig())
		require.ErrorContains(t, err, "group sizes sum")

		_, err = Train(nil, nil, nil, DefaultConfig())
		require.ErrorContains(t, err, "empty")
	})

	t.Run("rejects labels outside the gain table", func(t *testing.T) {
		_, err := Train([][]float64{{1}}, []int{7}, []int{1}, DefaultConfig())
		require.ErrorContains(t, err, "gain table")
	})

	t.Run("learns a separable ranking", func(t *testing.T) {
		// one feature that equals the label: the ensemble must learn
		// to order rows by it within each day-group
		var (
			x      [][]float64
			labels []int
		)
		for group := 0; group < 4; group++ {
			for l := 0; l < 5; l++ {
				x = append(x, []float64{float64(l), 1})
				labels = append(labels, l)
			}
		}
		groups := []int{5, 5, 5, 5}

		cfg := DefaultConfig()
		cfg.NumRounds = 60
		cfg.NumLeaves = 8
		cfg.LearningRate = 0.1

		ens, err := Train(x, labels, groups, cfg)
		require.NoError(t, err)
		require.Len(t, ens.Trees, 60)

		scores := ens.PredictAll(x)
		gains := make([]float64, len(labels))
		for i, l := range labels {
			gains[i] = cfg.LabelGains[l]
		}
		require.GreaterOrEqual(t, MeanNDCGAt(scores, gains, groups, 5), 0.99)

		// within one group, the top-graded row outscores the bottom
		require.Greater(t, scores[4], scores[0])
	})
}

func Test_Artifact(t *testing.T) {
	t.Run("save and load round-trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.bin")
		artifact := &Artifact{
			Ensemble: &Ensemble{
				LearningRate: 0.05,
				Trees: []Tree{{Nodes: []Node{
					{Feature: 2, Threshold: 1.5, Left: 1, Right: 2},
					{Leaf: true, Value: 0.25},
					{Leaf: true, Value: -0.75},
				}}},
			},
			Features: []string{"price", "margin", "sales_count"},
		}

		require.NoError(t, artifact.Save(path))

		loaded, err := LoadArtifact(path)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(artifact, loaded))
	})

	t.Run("refuses to save without a manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.bin")
		artifact := &Artifact{
			Ensemble: &Ensemble{Trees: []Tree{{Nodes: []Node{{Leaf: true}}}}},
		}

		require.Error(t, artifact.Save(path))
	})

	t.Run("load fails when either file is missing", func(t *testing.T) {
		dir := t.TempDir()
		_, err := LoadArtifact(filepath.Join(dir, "absent.bin"))
		require.Error(t, err)
	})
}
