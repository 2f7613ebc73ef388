package engagement

import "github.com/okian/ignite/pkg/logger"

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithEstimators sets the number of boosting stages.
func WithEstimators(n int) Option {
	return func(p *Predictor) {
		if n > 0 {
			p.estimators = n
		}
	}
}

// WithLearningRate sets the boosting shrinkage.
func WithLearningRate(rate float64) Option {
	return func(p *Predictor) {
		if rate > 0 {
			p.learningRate = rate
		}
	}
}

// WithMaxDepth sets the depth of each boosting tree.
func WithMaxDepth(depth int) Option {
	return func(p *Predictor) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithSeed sets the seed for the split and the regressor.
func WithSeed(seed int64) Option {
	return func(p *Predictor) { p.seed = seed }
}

// WithTestFraction sets the held-out share.
func WithTestFraction(f float64) Option {
	return func(p *Predictor) {
		if f > 0 && f < 1 {
			p.testFraction = f
		}
	}
}

// WithLogger sets the predictor's logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Predictor) {
		if l != nil {
			p.log = l
		}
	}
}
