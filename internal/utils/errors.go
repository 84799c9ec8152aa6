package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUpstreamUnavailable indicates the relayer could not be reached or the
// call failed. It is surfaced to the caller as a server error and never
// retried automatically.
var ErrUpstreamUnavailable = errors.New("upstream relayer unavailable")

// ErrMalformedUpstream indicates the relayer returned data in an unexpected
// shape. Fatal for the current request.
var ErrMalformedUpstream = errors.New("malformed upstream data")

// ValidationError represents one or more violated request constraints.
// No upstream call is made once a ValidationError is raised.
type ValidationError struct {
	Violations []string
}

// Error returns the joined list of violated constraints.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError creates a ValidationError from the violated constraints.
func NewValidationError(violations ...string) error {
	return &ValidationError{Violations: violations}
}

// UnknownTokenError indicates a ticker leg could not be resolved against the
// relayer token list. Per-convention policy decides whether this becomes a
// client error or a defaulted payload.
type UnknownTokenError struct {
	Symbol string
}

// Error returns the error message string.
func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token %q", e.Symbol)
}

// NewUnknownTokenError creates an UnknownTokenError for the given symbol.
func NewUnknownTokenError(symbol string) error {
	return &UnknownTokenError{Symbol: symbol}
}

// NewMalformedUpstreamErrorf wraps ErrMalformedUpstream with detail about the
// offending field or payload.
func NewMalformedUpstreamErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedUpstream, fmt.Sprintf(format, args...))
}

// NewUpstreamError wraps ErrUpstreamUnavailable with the failed operation and
// its cause. Malformed-data errors keep their own category; the relayer being
// reachable but talking nonsense is a different failure than it being down.
func NewUpstreamError(operation string, cause error) error {
	if errors.Is(cause, ErrMalformedUpstream) {
		return fmt.Errorf("%s: %w", operation, cause)
	}
	return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, operation, cause)
}
