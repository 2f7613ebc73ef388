// Package labels synthesizes turnover training labels from feature records.
// There is no attrition history, so the labels are a weighted heuristic over
// risk indicators plus noise. They are a training signal, not a prediction.
package labels

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/pkg/logger"
	"github.com/okian/ignite/pkg/metrics"
)

// Default synthesis constants.
const (
	defaultSeed     = 42
	defaultNoiseStd = 0.1

	// Threshold is the probability above which a label is positive.
	Threshold = 0.4
	// lowAnswer is the highest survey answer that counts against retention.
	lowAnswer = 4

	newHireYears = 0.5
	veteranYears = 5
)

// Indicator weights.
const (
	WeightJobSatisfaction   = 0.3
	WeightWorkLifeBalance   = 0.2
	WeightManagementSupport = 0.2
	WeightCompensation      = 0.1
	WeightNewHire           = 0.1
	WeightVeteran           = 0.1
)

// Synthesizer attaches labels to feature records. It is safe for concurrent use.
type Synthesizer struct {
	mu       sync.Mutex
	rng      *rand.Rand
	noiseStd float64
	log      logger.Logger
}

// NewSynthesizer creates a synthesizer seeded with 42 and noise std 0.1.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng:      rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // reproducible training labels
		noiseStd: defaultNoiseStd,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("labels")
	}
	return s
}

// Probability is the noise-free weighted sum for one record. Missing scores
// never contribute.
func Probability(r features.Record) float64 {
	p := 0.0
	if atMost(r.JobSatisfaction, lowAnswer) {
		p += WeightJobSatisfaction
	}
	if atMost(r.WorkLifeBalance, lowAnswer) {
		p += WeightWorkLifeBalance
	}
	if atMost(r.ManagementSupport, lowAnswer) {
		p += WeightManagementSupport
	}
	if atMost(r.CompensationSatisfaction, lowAnswer) {
		p += WeightCompensation
	}
	if r.TenureYears < newHireYears {
		p += WeightNewHire
	}
	if r.TenureYears > veteranYears {
		p += WeightVeteran
	}
	return p
}

// Synthesize returns copies of records with Label set. Noise is drawn in
// record order, so the same seed and input give the same labels.
func (s *Synthesizer) Synthesize(ctx context.Context, records []features.Record) []features.Record {
	out := make([]features.Record, len(records))

	s.mu.Lock()
	positives := 0
	for i, r := range records {
		p := Probability(r)
		if s.noiseStd > 0 {
			p += s.rng.NormFloat64() * s.noiseStd
		}
		p = math.Max(0, math.Min(1, p))

		label := &features.Label{TurnoverProbability: p}
		if p > Threshold {
			label.WillTurnover = 1
			positives++
		}
		r.Label = label
		out[i] = r
	}
	s.mu.Unlock()

	metrics.UpdateLabelPositiveRate(positives, len(records))
	s.log.Debug(ctx, "labels synthesized",
		logger.Int("records", len(records)),
		logger.Int("positives", positives),
		logger.Float64("noise_std", s.noiseStd),
	)
	return out
}

func atMost(v *float64, limit float64) bool {
	return v != nil && *v <= limit
}
