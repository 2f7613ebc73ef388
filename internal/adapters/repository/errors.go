package repository

import "errors"

// Sentinel kinds for register errors.
var (
	ErrNotFound     = errors.New("employee not found")
	ErrInvalidLimit = errors.New("invalid register limit")
)
