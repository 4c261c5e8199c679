package generic

// =============================================================================
// DAY RANGE - Closed calendar-day interval used by time-off
// =============================================================================

// DayRange is the closed range [Start, End]. A request spanning D1..D2
// occupies every day in it, including both ends.
type DayRange struct {
	Start Day
	End   Day
}

// NewDayRange builds a range, rejecting a missing bound or End before Start.
func NewDayRange(start, end Day) (DayRange, error) {
	r := DayRange{Start: start, End: end}
	if !r.Valid() {
		return DayRange{}, &InvalidIntervalError{Start: start.String(), End: end.String()}
	}
	return r, nil
}

// ParseDayRange parses both bounds with ParseDay.
func ParseDayRange(start, end string) (DayRange, error) {
	s, err := ParseDay(start)
	if err != nil {
		return DayRange{}, &InvalidIntervalError{Start: start, End: end}
	}
	e, err := ParseDay(end)
	if err != nil {
		return DayRange{}, &InvalidIntervalError{Start: start, End: end}
	}
	return NewDayRange(s, e)
}

func (r DayRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.BeforeOrEqual(r.End)
}

// Contains returns true if the day is within [Start, End].
func (r DayRange) Contains(d Day) bool {
	return r.Valid() && d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Len is the inclusive number of days. Invalid ranges have length 0.
func (r DayRange) Len() int {
	if !r.Valid() {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// Days returns every day in the range.
func (r DayRange) Days() []Day {
	if !r.Valid() {
		return nil
	}
	days := make([]Day, 0, r.Len())
	for current := r.Start; current.BeforeOrEqual(r.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// OverlapDays counts the calendar days shared by both ranges.
func (r DayRange) OverlapDays(other DayRange) int {
	if !r.Valid() || !other.Valid() {
		return 0
	}
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	if start.After(end) {
		return 0
	}
	return DaysBetween(start, end) + 1
}

func (r DayRange) Overlaps(other DayRange) bool { return r.OverlapDays(other) > 0 }

func (r DayRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
