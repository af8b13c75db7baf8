// Package tree provides the default supervised binary-split learner
// behind ports.TreeLearnerPort: a recursive entropy-based partitioner
// over a single numeric predictor.
package tree

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gowoe/domain/core"
	"gowoe/ports"

	"gonum.org/v1/gonum/stat"
)

// maxDepth bounds the recursion; node ids use the 2i/2i+1 numbering
// scheme and must stay within int range.
const maxDepth = 32

// Learner fits a binary split tree by recursively choosing the
// threshold with maximal information gain, subject to a minimum leaf
// size and a minimum-gain stopping threshold.
type Learner struct{}

// NewLearner creates the default split-tree learner
func NewLearner() *Learner {
	return &Learner{}
}

type node struct {
	id        int
	threshold float64 // split point; left takes values < threshold
	left      *node
	right     *node
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

func (n *node) leafID() core.LeafID {
	return core.LeafID(fmt.Sprintf("n%d", n.id))
}

// Fit grows the tree over outcome ~ values. The result exposes leaf
// identities, per-observation leaf assignments and per-leaf decision
// paths; nothing about the internal node layout leaks past the port.
func (l *Learner) Fit(ctx context.Context, variable core.VariableKey, values []float64, outcome []int, cfg ports.TreeConfig) (ports.FittedTree, error) {
	if len(values) == 0 {
		return nil, core.ErrEmptyTable
	}
	if len(values) != len(outcome) {
		return nil, fmt.Errorf("%w: %d values for %d outcomes", core.ErrInvalidInput, len(values), len(outcome))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite value at row %d of %s", core.ErrInvalidInput, i, variable)
		}
	}
	minLeaf := cfg.MinLeafSize
	if minLeaf < 1 {
		minLeaf = 1
	}

	// Sort one index permutation once; splits operate on ranges of it.
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] < values[order[j]]
	})

	g := &grower{
		values:    values,
		outcome:   outcome,
		minLeaf:   minLeaf,
		threshold: cfg.ComplexityThreshold,
	}
	root, err := g.grow(ctx, 1, order, 0)
	if err != nil {
		return nil, err
	}

	t := &fitted{variable: variable, root: root}
	t.assignments = make([]core.LeafID, len(values))
	for i, v := range values {
		t.assignments[i] = root.descend(v).leafID()
	}
	return t, nil
}

type grower struct {
	values    []float64
	outcome   []int
	minLeaf   int
	threshold float64
}

// grow recursively partitions the sorted index range into a subtree
func (g *grower) grow(ctx context.Context, id int, order []int, depth int) (*node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := &node{id: id}
	if depth >= maxDepth || len(order) < 2*g.minLeaf {
		return n, nil
	}

	split, gain, ok := g.bestSplit(order)
	if !ok || gain <= g.threshold {
		return n, nil
	}

	n.threshold = g.splitPoint(order, split)
	var err error
	if n.left, err = g.grow(ctx, 2*id, order[:split], depth+1); err != nil {
		return nil, err
	}
	if n.right, err = g.grow(ctx, 2*id+1, order[split:], depth+1); err != nil {
		return nil, err
	}
	return n, nil
}

// bestSplit scans every boundary between distinct adjacent values and
// returns the split position with maximal information gain. Ties keep
// the first (lowest) threshold, which makes the fit deterministic.
func (g *grower) bestSplit(order []int) (split int, gain float64, ok bool) {
	n := len(order)
	totalBad := 0
	for _, idx := range order {
		totalBad += g.outcome[idx]
	}
	parent := classEntropy(n-totalBad, totalBad)

	leftBad := 0
	bestGain := math.Inf(-1)
	bestSplit := -1
	for i := 0; i < n-1; i++ {
		leftBad += g.outcome[order[i]]
		// Only boundaries between distinct values are valid thresholds
		if g.values[order[i]] == g.values[order[i+1]] {
			continue
		}
		nl, nr := i+1, n-i-1
		if nl < g.minLeaf || nr < g.minLeaf {
			continue
		}
		rightBad := totalBad - leftBad
		children := float64(nl)/float64(n)*classEntropy(nl-leftBad, leftBad) +
			float64(nr)/float64(n)*classEntropy(nr-rightBad, rightBad)
		if got := parent - children; got > bestGain {
			bestGain = got
			bestSplit = nl
		}
	}
	if bestSplit < 0 {
		return 0, 0, false
	}
	return bestSplit, bestGain, true
}

// splitPoint places the threshold halfway between the two values the
// split separates.
func (g *grower) splitPoint(order []int, split int) float64 {
	return (g.values[order[split-1]] + g.values[order[split]]) / 2
}

// classEntropy computes the entropy of a two-class distribution
func classEntropy(good, bad int) float64 {
	n := float64(good + bad)
	if n == 0 {
		return 0
	}
	return stat.Entropy([]float64{float64(good) / n, float64(bad) / n})
}

// fitted is the ports.FittedTree view of a grown tree
type fitted struct {
	variable    core.VariableKey
	root        *node
	assignments []core.LeafID
}

func (t *fitted) Leaves() []core.LeafID {
	var leaves []core.LeafID
	var walk func(n *node)
	walk = func(n *node) {
		if n.isLeaf() {
			leaves = append(leaves, n.leafID())
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return leaves
}

func (t *fitted) LeafAssignments() []core.LeafID {
	return t.assignments
}

// Path reconstructs the leaf's decision path from the root: the left
// branch contributes {variable < threshold}, the right branch
// {variable >= threshold}.
func (t *fitted) Path(leaf core.LeafID) ([]ports.SplitCondition, bool) {
	var path []ports.SplitCondition
	n := t.root
	for !n.isLeaf() {
		if t.leafUnder(n.left, leaf) {
			path = append(path, ports.SplitCondition{
				Variable:   t.variable,
				Comparator: ports.CompLT,
				Threshold:  n.threshold,
			})
			n = n.left
		} else if t.leafUnder(n.right, leaf) {
			path = append(path, ports.SplitCondition{
				Variable:   t.variable,
				Comparator: ports.CompGE,
				Threshold:  n.threshold,
			})
			n = n.right
		} else {
			return nil, false
		}
	}
	if n.leafID() != leaf {
		return nil, false
	}
	return path, true
}

func (t *fitted) leafUnder(n *node, leaf core.LeafID) bool {
	if n.isLeaf() {
		return n.leafID() == leaf
	}
	return t.leafUnder(n.left, leaf) || t.leafUnder(n.right, leaf)
}

func (n *node) descend(v float64) *node {
	for !n.isLeaf() {
		if v < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n
}
