package gbrt

import "sort"

// Node is one array-encoded decision node. Leaves carry Value; splits
// route rows with feature <= Threshold to Left.
type Node struct {
	Feature   int     `msgpack:"f"`
	Threshold float64 `msgpack:"t"`
	Left      int     `msgpack:"l"`
	Right     int     `msgpack:"r"`
	Value     float64 `msgpack:"v"`
	Leaf      bool    `msgpack:"leaf"`
}

// Tree is a single regression tree of the boosted ensemble.
type Tree struct {
	Nodes []Node `msgpack:"nodes"`
}

func (t *Tree) Predict(row []float64) float64 {
	i := 0
	for !t.Nodes[i].Leaf {
		n := t.Nodes[i]
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// treeBuilder grows one tree leaf-wise against per-row gradients and
// hessians, splitting whichever leaf currently offers the largest
// gain until the leaf budget or the data runs out.
type treeBuilder struct {
	x          [][]float64
	grad, hess []float64
	cfg        Config
}

type leaf struct {
	rows []int
	node int // index into Tree.Nodes
}

type splitCandidate struct {
	ok        bool
	feature   int
	threshold float64
	gain      float64
	leftRows  []int
	rightRows []int
}

func (b *treeBuilder) build(rows []int) Tree {
	t := Tree{Nodes: []Node{b.leafNode(rows)}}
	open := []leaf{{rows: rows, node: 0}}

	leaves := 1
	for leaves < b.cfg.NumLeaves {
		bestLeaf := -1
		var best splitCandidate
		for i, l := range open {
			c := b.bestSplit(l.rows)
			if c.ok && (bestLeaf < 0 || c.gain > best.gain) {
				bestLeaf = i
				best = c
			}
		}
		if bestLeaf < 0 {
			break
		}

		parent := open[bestLeaf]
		left := b.leafNode(best.leftRows)
		right := b.leafNode(best.rightRows)
		t.Nodes = append(t.Nodes, left, right)
		t.Nodes[parent.node] = Node{
			Feature:   best.feature,
			Threshold: best.threshold,
			Left:      len(t.Nodes) - 2,
			Right:     len(t.Nodes) - 1,
		}

		open[bestLeaf] = leaf{rows: best.leftRows, node: len(t.Nodes) - 2}
		open = append(open, leaf{rows: best.rightRows, node: len(t.Nodes) - 1})
		leaves++
	}
	return t
}

// leaf output is the regularized Newton step -G/(H+lambda)
func (b *treeBuilder) leafNode(rows []int) Node {
	var g, h float64
	for _, r := range rows {
		g += b.grad[r]
		h += b.hess[r]
	}
	return Node{Leaf: true, Value: -g / (h + b.cfg.L2Regularization)}
}

func (b *treeBuilder) bestSplit(rows []int) splitCandidate {
	if len(rows) < 2*b.cfg.MinLeafSize {
		return splitCandidate{}
	}

	var totalG, totalH float64
	for _, r := range rows {
		totalG += b.grad[r]
		totalH += b.hess[r]
	}
	lambda := b.cfg.L2Regularization
	parentScore := totalG * totalG / (totalH + lambda)

	best := splitCandidate{}
	numFeatures := len(b.x[rows[0]])
	order := make([]int, len(rows))

	for f := 0; f < numFeatures; f++ {
		copy(order, rows)
		sort.Slice(order, func(a, c int) bool {
			return b.x[order[a]][f] < b.x[order[c]][f]
		})

		var leftG, leftH float64
		for i := 0; i < len(order)-1; i++ {
			r := order[i]
			leftG += b.grad[r]
			leftH += b.hess[r]

			// cannot split between identical feature values
			if b.x[order[i]][f] == b.x[order[i+1]][f] {
				continue
			}
			if i+1 < b.cfg.MinLeafSize || len(order)-i-1 < b.cfg.MinLeafSize {
				continue
			}

			rightG := totalG - leftG
			rightH := totalH - leftH
			gain := leftG*leftG/(leftH+lambda) + rightG*rightG/(rightH+lambda) - parentScore
			if gain > minSplitGain && (!best.ok || gain > best.gain) {
				best = splitCandidate{
					ok:        true,
					feature:   f,
					threshold: (b.x[order[i]][f] + b.x[order[i+1]][f]) / 2,
					gain:      gain,
				}
				best.leftRows = append([]int(nil), order[:i+1]...)
				best.rightRows = append([]int(nil), order[i+1:]...)
			}
		}
	}
	return best
}

const minSplitGain = 1e-12
