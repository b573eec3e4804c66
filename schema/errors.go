package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for degraded or impossible states. Callers branch on these
// with errors.Is rather than string matching.
var (
	// ErrInsufficientData is returned when the inputs cannot support the
	// requested computation at all (too few usable dimensions for a block,
	// an empty calibration corpus).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUnknownBlock is returned when a response references a block id that
	// was never shown to the respondent.
	ErrUnknownBlock = errors.New("unknown block id")
)

// ValidationError reports malformed input: bad block composition, duplicate or
// out-of-range response indices, or an unknown block reference. Validation
// failures are rejected immediately, never silently repaired.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InsufficientDataError wraps ErrInsufficientData with context about what was
// missing and how much was needed.
type InsufficientDataError struct {
	What string
	Got  int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s (got %d, need %d)", e.What, e.Got, e.Need)
}

// Unwrap lets errors.Is match ErrInsufficientData.
func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}
