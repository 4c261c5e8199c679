package generic

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SPAN - Instant interval used by shifts
// =============================================================================

// Span is an instant interval [Start, End). Two spans that touch
// (one ends exactly when the other starts) do not overlap.
type Span struct {
	Start time.Time
	End   time.Time
}

// NewSpan builds a span, rejecting a missing bound or End before Start.
func NewSpan(start, end time.Time) (Span, error) {
	s := Span{Start: start, End: end}
	if !s.Valid() {
		return Span{}, &InvalidIntervalError{Start: start.Format(time.RFC3339), End: end.Format(time.RFC3339)}
	}
	return s, nil
}

// ParseSpan parses both bounds with ParseInstant.
func ParseSpan(start, end string) (Span, error) {
	s, err := ParseInstant(start)
	if err != nil {
		return Span{}, &InvalidIntervalError{Start: start, End: end}
	}
	e, err := ParseInstant(end)
	if err != nil {
		return Span{}, &InvalidIntervalError{Start: start, End: end}
	}
	return NewSpan(s, e)
}

func (s Span) Valid() bool {
	return !s.Start.IsZero() && !s.End.IsZero() && !s.End.Before(s.Start)
}

// Duration is never negative; invalid spans report 0.
func (s Span) Duration() time.Duration {
	if !s.Valid() {
		return 0
	}
	return s.End.Sub(s.Start)
}

// Days returns the business-zone calendar days the span touches. A span
// ending exactly at midnight does not occupy the following day.
func (s Span) Days(loc *time.Location) DayRange {
	if !s.Valid() {
		return DayRange{}
	}
	end := s.End
	if end.After(s.Start) {
		end = end.Add(-time.Nanosecond)
	}
	return DayRange{Start: DayIn(s.Start, loc), End: DayIn(end, loc)}
}

// =============================================================================
// GAP - Signed distance between two spans
// =============================================================================

// Gap returns the signed distance between a and b:
//   - negative: the spans intersect, magnitude is the overlap duration
//   - zero:     the spans touch
//   - positive: the spans are disjoint, magnitude is the separation
//
// The result does not depend on argument order.
func Gap(a, b Span) time.Duration {
	switch {
	case !a.End.After(b.Start):
		// a entirely before b
		return b.Start.Sub(a.End)
	case !b.End.After(a.Start):
		// b entirely before a
		return a.Start.Sub(b.End)
	}

	overlapStart := a.Start
	if b.Start.After(overlapStart) {
		overlapStart = b.Start
	}
	overlapEnd := a.End
	if b.End.Before(overlapEnd) {
		overlapEnd = b.End
	}
	return -overlapEnd.Sub(overlapStart)
}

// Overlaps reports whether a and b share any instant.
func Overlaps(a, b Span) bool { return Gap(a, b) < 0 }

// Hours converts a duration to signed decimal hours rounded to 2 places.
func Hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2)
}
