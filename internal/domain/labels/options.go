package labels

import (
	"math/rand"

	"github.com/okian/ignite/pkg/logger"
)

// Option applies a configuration option to the Synthesizer.
type Option func(*Synthesizer)

// WithSeed reseeds the noise generator.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible training labels
	}
}

// WithNoiseStdDev sets the standard deviation of the Gaussian noise. Zero
// disables noise; negative values are ignored.
func WithNoiseStdDev(std float64) Option {
	return func(s *Synthesizer) {
		if std >= 0 {
			s.noiseStd = std
		}
	}
}

// WithLogger sets the synthesizer's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Synthesizer) {
		if l != nil {
			s.log = l
		}
	}
}
