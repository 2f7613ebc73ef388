package types

import "errors"

// Error kinds shared by the service and the read API. Implementations wrap
// their own errors with these so handlers can map them to status codes.
var (
	ErrNotReady     = errors.New("risk model not ready")
	ErrNotFound     = errors.New("not found")
	ErrInvalidLimit = errors.New("invalid limit")
)
