package ml

import "gonum.org/v1/gonum/stat"

// StandardScaler centers each column on its mean and divides by its
// population standard deviation. Constant columns keep a scale of 1.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Fit learns the column means and scales.
func (s *StandardScaler) Fit(x [][]float64) error {
	width, err := checkMatrix(x)
	if err != nil {
		return err
	}
	mean := make([]float64, width)
	scale := make([]float64, width)
	col := make([]float64, len(x))
	for j := 0; j < width; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		m, sd := stat.PopMeanStdDev(col, nil)
		if sd == 0 {
			sd = 1
		}
		mean[j], scale[j] = m, sd
	}
	s.Mean, s.Scale = mean, scale
	return nil
}

// Transform returns a scaled copy of x using the fitted parameters.
func (s *StandardScaler) Transform(x [][]float64) ([][]float64, error) {
	if s.Mean == nil {
		return nil, ErrNotFitted
	}
	if err := checkWidth(x, len(s.Mean)); err != nil {
		return nil, err
	}
	out := make([][]float64, len(x))
	for i, row := range x {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on x and returns x scaled.
func (s *StandardScaler) FitTransform(x [][]float64) ([][]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}
