package ml

import "errors"

var (
	// ErrNotFitted is returned when a model or scaler is used before Fit.
	ErrNotFitted = errors.New("model is not fitted")
	// ErrEmptyInput is returned for an empty design matrix.
	ErrEmptyInput = errors.New("empty input")
	// ErrDimensionMismatch is returned when rows, targets or columns disagree.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrTooFewSamples is returned when a split would leave a side empty.
	ErrTooFewSamples = errors.New("too few samples to split")
	// ErrInvalidLabel is returned for negative class labels.
	ErrInvalidLabel = errors.New("invalid class label")
)
