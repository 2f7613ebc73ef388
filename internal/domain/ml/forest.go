package ml

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Default forest configuration constants.
const (
	defaultForestTrees = 100
	defaultSeed        = 42
)

// ForestOption configures a RandomForest.
type ForestOption func(*RandomForest)

// WithTrees sets the number of trees.
func WithTrees(n int) ForestOption {
	return func(f *RandomForest) {
		if n > 0 {
			f.nTrees = n
		}
	}
}

// WithForestSeed sets the seed for bootstrap sampling and feature selection.
func WithForestSeed(seed int64) ForestOption {
	return func(f *RandomForest) { f.seed = seed }
}

// WithForestWorkers sets how many trees are fitted concurrently. The fitted
// forest does not depend on it.
func WithForestWorkers(n int) ForestOption {
	return func(f *RandomForest) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithForestMaxDepth limits tree depth. Zero grows trees until leaves are pure.
func WithForestMaxDepth(depth int) ForestOption {
	return func(f *RandomForest) {
		if depth >= 0 {
			f.maxDepth = depth
		}
	}
}

// RandomForest is a bagged ensemble of Gini trees. Every tree sees a
// bootstrap sample and considers sqrt(n_features) candidates per split.
type RandomForest struct {
	nTrees   int
	seed     int64
	maxDepth int
	workers  int

	trees       []*Tree
	nClasses    int
	nFeatures   int
	importances []float64
}

// NewRandomForest creates an unfitted forest with 100 trees and seed 42.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	f := &RandomForest{
		nTrees:  defaultForestTrees,
		seed:    defaultSeed,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit trains the forest on x and integer class labels y. A forest always
// knows at least two classes so single-class input still yields probabilities
// for class 1.
func (f *RandomForest) Fit(x [][]float64, y []int) error {
	width, err := checkMatrix(x)
	if err != nil {
		return err
	}
	if len(y) != len(x) {
		return fmt.Errorf("%d rows, %d labels: %w", len(x), len(y), ErrDimensionMismatch)
	}

	nClasses := 2
	target := make([]float64, len(y))
	for i, c := range y {
		if c < 0 {
			return fmt.Errorf("label %d at row %d: %w", c, i, ErrInvalidLabel)
		}
		nClasses = max(nClasses, c+1)
		target[i] = float64(c)
	}

	cfg := treeConfig{
		criterion:   Gini,
		nClasses:    nClasses,
		maxDepth:    f.maxDepth,
		maxFeatures: max(1, int(math.Sqrt(float64(width)))),
	}

	// Per-tree seeds come from the master stream in tree order.
	rng := rand.New(rand.NewSource(f.seed)) //nolint:gosec // reproducible ensembles
	seeds := make([]int64, f.nTrees)
	for t := range seeds {
		seeds[t] = rng.Int63()
	}

	trees := make([]*Tree, f.nTrees)
	n := len(x)
	var g errgroup.Group
	g.SetLimit(f.workers)
	for t := range trees {
		g.Go(func() error {
			treeRng := rand.New(rand.NewSource(seeds[t])) //nolint:gosec // reproducible ensembles
			sample := make([]int, n)
			for i := range sample {
				sample[i] = treeRng.Intn(n)
			}
			trees[t] = fitTree(x, target, sample, cfg, treeRng)
			return nil
		})
	}
	_ = g.Wait()

	importances := make([]float64, width)
	for _, tree := range trees {
		for j, v := range tree.importances {
			importances[j] += v
		}
	}

	sum := 0.0
	for _, v := range importances {
		sum += v
	}
	if sum > 0 {
		for j := range importances {
			importances[j] /= sum
		}
	}

	f.trees, f.nClasses, f.nFeatures, f.importances = trees, nClasses, width, importances
	return nil
}

// PredictProba returns the mean class probabilities of the trees, one row
// per sample.
func (f *RandomForest) PredictProba(x [][]float64) ([][]float64, error) {
	if f.trees == nil {
		return nil, ErrNotFitted
	}
	if err := checkWidth(x, f.nFeatures); err != nil {
		return nil, err
	}
	out := make([][]float64, len(x))
	n := float64(len(f.trees))
	for i, row := range x {
		probs := make([]float64, f.nClasses)
		for _, t := range f.trees {
			for k, p := range t.predict(row) {
				probs[k] += p
			}
		}
		// Divide once so exact vote shares such as 60/100 stay exact.
		for k := range probs {
			probs[k] /= n
		}
		out[i] = probs
	}
	return out, nil
}

// Predict returns the most probable class per sample; ties go to the lower class.
func (f *RandomForest) Predict(x [][]float64) ([]int, error) {
	probs, err := f.PredictProba(x)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(probs))
	for i, p := range probs {
		best := 0
		for k := 1; k < len(p); k++ {
			if p[k] > p[best] {
				best = k
			}
		}
		out[i] = best
	}
	return out, nil
}

// FeatureImportances returns the mean decrease in impurity per feature,
// summing to 1 unless no tree ever split.
func (f *RandomForest) FeatureImportances() ([]float64, error) {
	if f.trees == nil {
		return nil, ErrNotFitted
	}
	return append([]float64(nil), f.importances...), nil
}

// Classes returns the number of classes the forest was fitted with.
func (f *RandomForest) Classes() int { return f.nClasses }
