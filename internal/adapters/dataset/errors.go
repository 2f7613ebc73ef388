package dataset

import "errors"

var (
	// ErrInvalidRecord is returned for rows that fail parsing or validation.
	ErrInvalidRecord = errors.New("invalid record")
)
