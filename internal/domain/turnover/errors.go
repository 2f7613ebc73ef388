package turnover

import "errors"

var (
	// ErrNotTrained is returned by Predict, ExplainFactors and
	// FeatureImportance before a successful Train.
	ErrNotTrained = errors.New("turnover model is not trained")
	// ErrEmployeeNotFound is returned when an explanation is requested for an
	// employee absent from the supplied records.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmptyDataset is returned when Train receives no records.
	ErrEmptyDataset = errors.New("empty training set")
	// ErrMissingLabel is returned when a training record has no label.
	ErrMissingLabel = errors.New("training record has no label")
)
