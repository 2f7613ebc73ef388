// Package ml holds the small set of learners the analytics pipeline needs:
// a standard scaler, a seeded train/test split, CART trees, a random forest
// classifier and a gradient boosted regressor.
package ml

import "fmt"

// checkMatrix verifies x is non-empty and rectangular, returning its width.
func checkMatrix(x [][]float64) (int, error) {
	if len(x) == 0 {
		return 0, ErrEmptyInput
	}
	width := len(x[0])
	for i, row := range x {
		if len(row) != width {
			return 0, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), width, ErrDimensionMismatch)
		}
	}
	return width, nil
}

func checkWidth(x [][]float64, want int) error {
	width, err := checkMatrix(x)
	if err != nil {
		return err
	}
	if width != want {
		return fmt.Errorf("got %d columns, fitted on %d: %w", width, want, ErrDimensionMismatch)
	}
	return nil
}

// Rows returns the rows of x at idx, sharing row storage.
func Rows(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

// Take returns the values of v at idx.
func Take[T any](v []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = v[j]
	}
	return out
}
