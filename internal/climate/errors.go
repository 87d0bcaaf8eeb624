package climate

import (
	"errors"
)

// Failure reasons surfaced to callers of the core.
var (
	// ErrTransport is returned when the data provider is unreachable, answers with a
	// non-success status, or a fetch exceeds its deadline.
	ErrTransport = errors.New("transport")
	// ErrEmptyInput is returned when statistics or classification are requested on zero rows.
	ErrEmptyInput = errors.New("empty_input")
	// ErrMalformedResponse is returned when a provider payload lacks the expected structure.
	ErrMalformedResponse = errors.New("malformed_response")
	// ErrUnclassifiable is returned when a value matches none of a factor's categories.
	ErrUnclassifiable = errors.New("unclassifiable_boundary")

	ErrInvalidRadius    = errors.New("day radius must not be negative")
	ErrInvalidYearCount = errors.New("year count must be positive")
	ErrLengthMismatch   = errors.New("series length mismatch")
	ErrColumnMismatch   = errors.New("column set mismatch")
)

// Reason maps an error onto the failure taxonomy used at the service boundary.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrUnclassifiable):
		return "unclassifiable_boundary"
	default:
		return "internal"
	}
}
