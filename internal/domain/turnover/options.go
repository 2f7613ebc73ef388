package turnover

import (
	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/pkg/logger"
)

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithTrees sets the forest size.
func WithTrees(n int) Option {
	return func(p *Predictor) {
		if n > 0 {
			p.trees = n
		}
	}
}

// WithSeed sets the seed used for the split and the forest.
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

// WithBuilder sets the feature builder whose encoders travel with the model.
func WithBuilder(b *features.Builder) Option {
	return func(p *Predictor) {
		if b != nil {
			p.builder = b
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
