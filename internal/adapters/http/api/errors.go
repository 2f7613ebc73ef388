package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/ignite/internal/domain/types"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// badRequest wraps a validation message with ErrBadRequest.
func badRequest(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrBadRequest, fmt.Sprintf(format, args...))
}

// statusFor maps an upstream error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrNotReady):
		return http.StatusServiceUnavailable, "not_ready"
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBadRequest), errors.Is(err, types.ErrInvalidLimit):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
