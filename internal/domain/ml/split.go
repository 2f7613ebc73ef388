package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// TrainTestSplit shuffles 0..n-1 with seed and returns the train and test
// indices. The test side receives ceil(testFraction*n) samples. The same n,
// fraction and seed always give the same split.
func TrainTestSplit(n int, testFraction float64, seed int64) (train, test []int, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v outside (0, 1): %w", testFraction, ErrDimensionMismatch)
	}
	nTest := int(math.Ceil(testFraction * float64(n)))
	if n < 2 || nTest >= n {
		return nil, nil, fmt.Errorf("%d samples: %w", n, ErrTooFewSamples)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n) //nolint:gosec // reproducible split
	return perm[nTest:], perm[:nTest], nil
}
