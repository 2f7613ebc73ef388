package ml

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Accuracy is the share of positions where yTrue and yPred agree.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	hits := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(yTrue))
}

// R2 is the coefficient of determination of yPred against yTrue. A constant
// target scores 1 when predicted exactly and 0 otherwise.
func R2(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	r2 := stat.RSquaredFrom(yPred, yTrue, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		if floats.Equal(yTrue, yPred) {
			return 1
		}
		return 0
	}
	return r2
}

// RMSE is the root mean squared error of yPred against yTrue.
func RMSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	return floats.Distance(yTrue, yPred, 2) / math.Sqrt(float64(len(yTrue)))
}
