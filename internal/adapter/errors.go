package adapter

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrConflict            = errors.New("commit conflict")
	ErrTokenExpired        = errors.New("change token expired")
	ErrBatchTooLarge       = errors.New("commit batch too large")
	ErrQuotaExceeded       = errors.New("storage quota exceeded")
	ErrZoneNotFound        = errors.New("zone not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrUnavailable         = errors.New("server unavailable")
	ErrInternalServerError = errors.New("internal server error")
)

// RateLimitError carries the server-suggested delay from a 429 response.
// It matches [ErrRateLimited] under [errors.Is] and exposes RetryAfter
// through [errors.As].
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
