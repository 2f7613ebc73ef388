package ml

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Default boosting configuration constants.
const (
	defaultEstimators   = 100
	defaultLearningRate = 0.1
	defaultBoostDepth   = 3
)

// BoostingOption configures a GradientBoostingRegressor.
type BoostingOption func(*GradientBoostingRegressor)

// WithEstimators sets the number of boosting stages.
func WithEstimators(n int) BoostingOption {
	return func(g *GradientBoostingRegressor) {
		if n > 0 {
			g.nEstimators = n
		}
	}
}

// WithLearningRate sets the shrinkage applied to each stage.
func WithLearningRate(rate float64) BoostingOption {
	return func(g *GradientBoostingRegressor) {
		if rate > 0 {
			g.learningRate = rate
		}
	}
}

// WithBoostingMaxDepth sets the depth of each stage's tree.
func WithBoostingMaxDepth(depth int) BoostingOption {
	return func(g *GradientBoostingRegressor) {
		if depth > 0 {
			g.maxDepth = depth
		}
	}
}

// WithBoostingSeed sets the seed for feature visiting order.
func WithBoostingSeed(seed int64) BoostingOption {
	return func(g *GradientBoostingRegressor) { g.seed = seed }
}

// GradientBoostingRegressor fits squared-error boosting over shallow MSE trees,
// starting from the target mean.
type GradientBoostingRegressor struct {
	nEstimators  int
	learningRate float64
	maxDepth     int
	seed         int64

	initial     float64
	trees       []*Tree
	nFeatures   int
	importances []float64
}

// NewGradientBoostingRegressor creates an unfitted regressor with 100 stages,
// learning rate 0.1, depth 3 and seed 42.
func NewGradientBoostingRegressor(opts ...BoostingOption) *GradientBoostingRegressor {
	g := &GradientBoostingRegressor{
		nEstimators:  defaultEstimators,
		learningRate: defaultLearningRate,
		maxDepth:     defaultBoostDepth,
		seed:         defaultSeed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fit trains the regressor on x and y.
func (g *GradientBoostingRegressor) Fit(x [][]float64, y []float64) error {
	width, err := checkMatrix(x)
	if err != nil {
		return err
	}
	if len(y) != len(x) {
		return fmt.Errorf("%d rows, %d targets: %w", len(x), len(y), ErrDimensionMismatch)
	}

	n := len(x)
	initial := stat.Mean(y, nil)
	pred := make([]float64, n)
	for i := range pred {
		pred[i] = initial
	}
	samples := make([]int, n)
	for i := range samples {
		samples[i] = i
	}

	cfg := treeConfig{criterion: MSE, maxDepth: g.maxDepth}
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // reproducible boosting
	residual := make([]float64, n)
	trees := make([]*Tree, g.nEstimators)
	importances := make([]float64, width)
	for m := range trees {
		for i := range residual {
			residual[i] = y[i] - pred[i]
		}
		t := fitTree(x, residual, samples, cfg, rng)
		for i, row := range x {
			pred[i] += g.learningRate * t.predict(row)[0]
		}
		for j, v := range t.importances {
			importances[j] += v
		}
		trees[m] = t
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

	g.initial, g.trees, g.nFeatures, g.importances = initial, trees, width, importances
	return nil
}

// Predict returns the boosted prediction for each row.
func (g *GradientBoostingRegressor) Predict(x [][]float64) ([]float64, error) {
	if g.trees == nil {
		return nil, ErrNotFitted
	}
	if err := checkWidth(x, g.nFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, row := range x {
		v := g.initial
		for _, t := range g.trees {
			v += g.learningRate * t.predict(row)[0]
		}
		out[i] = v
	}
	return out, nil
}

// FeatureImportances returns the normalized impurity reduction per feature.
func (g *GradientBoostingRegressor) FeatureImportances() ([]float64, error) {
	if g.trees == nil {
		return nil, ErrNotFitted
	}
	return append([]float64(nil), g.importances...), nil
}
