// Package gbrt trains and evaluates gradient-boosted regression trees
// under a LambdaRank objective: each boosting round fits a tree to
// pairwise rank gradients weighted by how much swapping the pair
// would change the group's NDCG.
package gbrt

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

type Config struct {
	NumRounds        int
	LearningRate     float64
	NumLeaves        int
	MinLeafSize      int
	L2Regularization float64
	Sigma            float64
	// LabelGains maps ordinal label -> relevance gain. The default is
	// the exponential 2^label-1 table, which rewards top grades
	// disproportionately.
	LabelGains []float64
	// EvalAt are the NDCG cutoffs reported after training.
	EvalAt []int
}

func DefaultConfig() Config {
	return Config{
		NumRounds:        150,
		LearningRate:     0.05,
		NumLeaves:        31,
		MinLeafSize:      1,
		L2Regularization: 1.0,
		Sigma:            1.0,
		LabelGains:       []float64{0, 1, 3, 7, 15},
		EvalAt:           []int{5, 10},
	}
}

type Ensemble struct {
	Trees        []Tree  `msgpack:"trees"`
	LearningRate float64 `msgpack:"learning_rate"`
}

func (e *Ensemble) Predict(row []float64) float64 {
	var s float64
	for i := range e.Trees {
		s += e.LearningRate * e.Trees[i].Predict(row)
	}
	return s
}

func (e *Ensemble) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = e.Predict(row)
	}
	return out
}

// Train fits an ensemble on x/labels with listwise query boundaries
// given as contiguous group sizes. Group sizes must sum to the row
// count; violating that is a caller bug, not recoverable data noise.
func Train(x [][]float64, labels []int, groupSizes []int, cfg Config) (*Ensemble, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("cannot train on an empty feature matrix")
	}
	if len(labels) != len(x) {
		return nil, fmt.Errorf("label count %d does not match row count %d", len(labels), len(x))
	}
	total := 0
	for _, g := range groupSizes {
		if g <= 0 {
			return nil, fmt.Errorf("group sizes must be positive, got %d", g)
		}
		total += g
	}
	if total != len(x) {
		return nil, fmt.Errorf("group sizes sum to %d but the matrix has %d rows", total, len(x))
	}

	gains := make([]float64, len(x))
	for i, l := range labels {
		if l < 0 || l >= len(cfg.LabelGains) {
			return nil, fmt.Errorf("label %d outside gain table of size %d", l, len(cfg.LabelGains))
		}
		gains[i] = cfg.LabelGains[l]
	}

	ens := &Ensemble{LearningRate: cfg.LearningRate}
	scores := make([]float64, len(x))
	grad := make([]float64, len(x))
	hess := make([]float64, len(x))
	rows := make([]int, len(x))
	for i := range rows {
		rows[i] = i
	}

	for round := 0; round < cfg.NumRounds; round++ {
		computeLambdas(scores, labels, gains, groupSizes, cfg.Sigma, grad, hess)

		b := treeBuilder{x: x, grad: grad, hess: hess, cfg: cfg}
		tree := b.build(rows)
		ens.Trees = append(ens.Trees, tree)

		for i, row := range x {
			scores[i] += cfg.LearningRate * tree.Predict(row)
		}
	}

	for _, k := range cfg.EvalAt {
		zap.S().Infow("training finished",
			"rounds", cfg.NumRounds,
			"cutoff", k,
			"ndcg", MeanNDCGAt(scores, gains, groupSizes, k),
		)
	}
	return ens, nil
}

// computeLambdas fills grad/hess with LambdaRank pair gradients. For
// every in-group pair where label i beats label j, the pair pushes
// score i up and score j down, scaled by how much swapping the two
// positions would change the group's NDCG.
func computeLambdas(scores []float64, labels []int, gains []float64, groupSizes []int, sigma float64, grad, hess []float64) {
	for i := range grad {
		grad[i] = 0
		hess[i] = 0
	}

	offset := 0
	for _, size := range groupSizes {
		gScores := scores[offset : offset+size]
		gLabels := labels[offset : offset+size]
		gGains := gains[offset : offset+size]

		// groups with a single row or no relevant item produce no pairs
		if size < 2 || floats.Sum(gGains) == 0 {
			offset += size
			continue
		}

		idcg := idealDCG(gGains)
		order := rankedOrder(gScores)
		// position[i] is the 1-based rank of row i under current scores
		position := make([]int, size)
		for pos, idx := range order {
			position[idx] = pos + 1
		}

		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				if gLabels[i] <= gLabels[j] {
					continue
				}
				delta := math.Abs(gGains[i]-gGains[j]) *
					math.Abs(positionDiscount(position[i])-positionDiscount(position[j])) / idcg

				rho := 1 / (1 + math.Exp(sigma*(gScores[i]-gScores[j])))
				l := sigma * rho * delta
				w := sigma * sigma * rho * (1 - rho) * delta

				grad[offset+i] -= l
				grad[offset+j] += l
				hess[offset+i] += w
				hess[offset+j] += w
			}
		}
		offset += size
	}
}

func idealDCG(gains []float64) float64 {
	ideal := make([]float64, len(gains))
	copy(ideal, gains)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	var dcg float64
	for pos := 1; pos <= len(ideal); pos++ {
		dcg += ideal[pos-1] * positionDiscount(pos)
	}
	return dcg
}
