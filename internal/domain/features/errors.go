package features

import "errors"

var (
	// ErrMissingColumn is returned when a row lacks its employee_id.
	ErrMissingColumn = errors.New("missing required column employee_id")
	// ErrUnknownCategory is returned for a categorical value the encoder was
	// not fitted on, when the fail policy is active.
	ErrUnknownCategory = errors.New("unknown category")
)
