/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:

	All error types in one place for consistency and discoverability.

ERROR CATEGORIES:
 1. Parsing errors - Malformed instants, days or intervals
 2. Store errors - Missing or duplicate records

POLICY:

	The decision functions in schedule/ and timeoff/ never return errors.
	A malformed interval makes them fall back to "no conflict" / "not
	disabled". These errors are raised by the parsing helpers and by the
	record stores and API that feed the engine.

SEE ALSO:
  - time.go, span.go, period.go: Parsing helpers returning these errors
  - store/sqlite/sqlite.go: Wraps store errors with context
  - api/handlers.go: Maps errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when an interval is malformed
	// (end before start, or an unparsable bound).
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidDay is returned when a calendar day cannot be parsed.
	ErrInvalidDay = errors.New("invalid day")

	// ErrWorkerNotFound is returned when a referenced worker doesn't exist.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrTimeOffNotFound is returned when a referenced time-off request doesn't exist.
	ErrTimeOffNotFound = errors.New("time-off request not found")

	// ErrDuplicateID is returned when a record with the same ID already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidIntervalError provides the offending bounds.
type InvalidIntervalError struct {
	Start string
	End   string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval: start %q, end %q", e.Start, e.End)
}

func (e *InvalidIntervalError) Unwrap() error {
	return ErrInvalidInterval
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidDay)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrTimeOffNotFound)
}

// IsConflict returns true if the error indicates a duplicate record.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}
