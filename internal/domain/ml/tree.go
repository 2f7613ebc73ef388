package ml

import (
	"math/rand"
	"sort"
)

// Criterion is the impurity measure a tree minimizes.
type Criterion int

const (
	// Gini impurity for classification.
	Gini Criterion = iota
	// MSE (variance) for regression.
	MSE
)

// impurityEpsilon treats a node as pure below this impurity.
const impurityEpsilon = 1e-12

type treeConfig struct {
	criterion       Criterion
	nClasses        int
	maxDepth        int // 0 means unbounded
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int // 0 means all
}

type node struct {
	leaf      bool
	feature   int
	threshold float64
	left      int
	right     int
	// value holds class probabilities for Gini trees and a single mean for MSE trees.
	value     []float64
}

// Tree is a fitted CART tree stored as a flat node slice; node 0 is the root.
type Tree struct {
	nodes       []node
	nFeatures   int
	importances []float64
}

// treeBuilder carries the state of one fit.
type treeBuilder struct {
	cfg   treeConfig
	x     [][]float64
	y     []float64
	rng   *rand.Rand
	tree  *Tree
	total float64
}

// fitTree grows a tree over the given sample indices. Indices may repeat,
// which is how bootstrap samples are expressed.
func fitTree(x [][]float64, y []float64, samples []int, cfg treeConfig, rng *rand.Rand) *Tree {
	nFeatures := len(x[0])
	if cfg.minSamplesSplit < 2 {
		cfg.minSamplesSplit = 2
	}
	if cfg.minSamplesLeaf < 1 {
		cfg.minSamplesLeaf = 1
	}
	if cfg.maxFeatures <= 0 || cfg.maxFeatures > nFeatures {
		cfg.maxFeatures = nFeatures
	}
	b := &treeBuilder{
		cfg:   cfg,
		x:     x,
		y:     y,
		rng:   rng,
		tree:  &Tree{nFeatures: nFeatures, importances: make([]float64, nFeatures)},
		total: float64(len(samples)),
	}
	b.grow(samples, 0)

	sum := 0.0
	for _, v := range b.tree.importances {
		sum += v
	}
	if sum > 0 {
		for i := range b.tree.importances {
			b.tree.importances[i] /= sum
		}
	}
	return b.tree
}

type split struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

func (b *treeBuilder) grow(samples []int, depth int) int {
	id := len(b.tree.nodes)
	b.tree.nodes = append(b.tree.nodes, node{leaf: true, value: b.leafValue(samples)})

	impurity := b.impurity(samples)
	if impurity <= impurityEpsilon ||
		len(samples) < b.cfg.minSamplesSplit ||
		len(samples) < 2*b.cfg.minSamplesLeaf ||
		(b.cfg.maxDepth > 0 && depth >= b.cfg.maxDepth) {
		return id
	}

	best, ok := b.bestSplit(samples, impurity)
	if !ok {
		return id
	}

	b.tree.importances[best.feature] += best.gain / b.total
	left := b.grow(best.left, depth+1)
	right := b.grow(best.right, depth+1)
	b.tree.nodes[id] = node{
		feature:   best.feature,
		threshold: best.threshold,
		left:      left,
		right:     right,
		value:     b.tree.nodes[id].value,
	}
	return id
}

// bestSplit visits features in random order until maxFeatures non-constant
// features have been evaluated, and keeps the split with the largest
// weighted impurity decrease.
func (b *treeBuilder) bestSplit(samples []int, parent float64) (split, bool) {
	var best split
	found := false
	evaluated := 0
	sorted := make([]int, len(samples))

	for _, f := range b.rng.Perm(b.tree.nFeatures) {
		if evaluated >= b.cfg.maxFeatures {
			break
		}
		copy(sorted, samples)
		sort.Slice(sorted, func(i, j int) bool {
			vi, vj := b.x[sorted[i]][f], b.x[sorted[j]][f]
			if vi != vj {
				return vi < vj
			}
			return sorted[i] < sorted[j]
		})
		if b.x[sorted[0]][f] == b.x[sorted[len(sorted)-1]][f] {
			continue
		}
		evaluated++

		pos, gain, ok := b.scan(sorted, f, parent)
		if !ok || (found && gain <= best.gain) {
			continue
		}
		found = true
		best = split{
			feature:   f,
			threshold: (b.x[sorted[pos-1]][f] + b.x[sorted[pos]][f]) / 2,
			gain:      gain,
			left:      append([]int(nil), sorted[:pos]...),
			right:     append([]int(nil), sorted[pos:]...),
		}
	}
	return best, found
}

// scan sweeps the sorted samples and returns the split position (first
// index of the right side) with the largest weighted impurity decrease.
func (b *treeBuilder) scan(sorted []int, f int, parent float64) (int, float64, bool) {
	n := len(sorted)
	acc := newAccumulator(b.cfg)
	for _, s := range sorted {
		acc.addRight(b.y[s])
	}

	bestPos, bestGain, ok := 0, 0.0, false
	minLeaf := b.cfg.minSamplesLeaf
	for i := 1; i < n; i++ {
		acc.moveLeft(b.y[sorted[i-1]])
		if i < minLeaf || n-i < minLeaf {
			continue
		}
		if b.x[sorted[i-1]][f] == b.x[sorted[i]][f] {
			continue
		}
		gain := float64(n)*parent - acc.weightedChildren()
		if !ok || gain > bestGain {
			bestPos, bestGain, ok = i, gain, true
		}
	}
	return bestPos, bestGain, ok
}

func (b *treeBuilder) impurity(samples []int) float64 {
	acc := newAccumulator(b.cfg)
	for _, s := range samples {
		acc.addRight(b.y[s])
	}
	return acc.rightImpurity()
}

func (b *treeBuilder) leafValue(samples []int) []float64 {
	n := float64(len(samples))
	if b.cfg.criterion == MSE {
		sum := 0.0
		for _, s := range samples {
			sum += b.y[s]
		}
		return []float64{sum / n}
	}
	probs := make([]float64, b.cfg.nClasses)
	for _, s := range samples {
		probs[int(b.y[s])]++
	}
	for k := range probs {
		probs[k] /= n
	}
	return probs
}

// predict returns the leaf value reached by row.
func (t *Tree) predict(row []float64) []float64 {
	i := 0
	for !t.nodes[i].leaf {
		n := t.nodes[i]
		if row[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].value
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := t.nodes[i]
		if n.leaf {
			return 0
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	return walk(0)
}

// accumulator tracks running statistics for the two sides of a split.
type accumulator struct {
	criterion Criterion

	// Gini uses the class counts, MSE the sums and sums of squares.
	left, right       []float64
	nLeft, nRight     float64
	sumLeft, sumRight float64
	sqLeft, sqRight   float64
}

func newAccumulator(cfg treeConfig) *accumulator {
	a := &accumulator{criterion: cfg.criterion}
	if cfg.criterion == Gini {
		a.left = make([]float64, cfg.nClasses)
		a.right = make([]float64, cfg.nClasses)
	}
	return a
}

func (a *accumulator) addRight(y float64) {
	a.nRight++
	if a.criterion == Gini {
		a.right[int(y)]++
		return
	}
	a.sumRight += y
	a.sqRight += y * y
}

func (a *accumulator) moveLeft(y float64) {
	a.nRight--
	a.nLeft++
	if a.criterion == Gini {
		a.right[int(y)]--
		a.left[int(y)]++
		return
	}
	a.sumRight -= y
	a.sqRight -= y * y
	a.sumLeft += y
	a.sqLeft += y * y
}

func (a *accumulator) rightImpurity() float64 {
	return a.side(a.right, a.nRight, a.sumRight, a.sqRight)
}

// weightedChildren is nLeft*impurity(left) + nRight*impurity(right).
func (a *accumulator) weightedChildren() float64 {
	return a.nLeft*a.side(a.left, a.nLeft, a.sumLeft, a.sqLeft) +
		a.nRight*a.side(a.right, a.nRight, a.sumRight, a.sqRight)
}

func (a *accumulator) side(counts []float64, n, sum, sq float64) float64 {
	if n == 0 {
		return 0
	}
	if a.criterion == MSE {
		mean := sum / n
		v := sq/n - mean*mean
		if v < 0 {
			return 0
		}
		return v
	}
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}
