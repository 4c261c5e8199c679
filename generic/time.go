package generic

import (
	"strings"
	"time"
	_ "time/tzdata"
)

// =============================================================================
// BUSINESS ZONE - Single fixed zone for every day-boundary comparison
// =============================================================================

// DefaultBusinessTimezone is the zone in which instants are mapped to
// calendar days. Two viewers in different device zones must never disagree
// on which day a shift or time-off falls on.
const DefaultBusinessTimezone = "America/New_York"

var businessZone = mustLoadZone(DefaultBusinessTimezone)

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BusinessZone returns the default fixed zone used for day arithmetic.
func BusinessZone() *time.Location { return businessZone }

// LoadZone resolves a zone name. An empty name yields the default business zone.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return businessZone, nil
	}
	return time.LoadLocation(name)
}

// =============================================================================
// DAY - A calendar day with no zone attached
// =============================================================================

// Day is a calendar day. It is always stored as midnight UTC so values are
// comparable with == and usable as map keys. Build it with NewDay, DayIn or
// ParseDay; the zero Day is "no day".
type Day struct {
	t time.Time
}

const dayLayout = "2006-01-02"

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayIn returns the calendar day on which instant t falls in loc.
// A nil loc means the business zone.
func DayIn(t time.Time, loc *time.Location) Day {
	if t.IsZero() {
		return Day{}
	}
	if loc == nil {
		loc = businessZone
	}
	y, m, d := t.In(loc).Date()
	return NewDay(y, m, d)
}

// DayOf returns the business-zone calendar day of t.
func DayOf(t time.Time) Day { return DayIn(t, businessZone) }

func Today() Day { return DayOf(time.Now()) }

// ParseDay accepts a plain YYYY-MM-DD day or a full timestamp. Timestamps
// are instants and are converted into the business zone before the day is
// taken.
func ParseDay(s string) (Day, error) {
	return ParseDayIn(s, businessZone)
}

// ParseDayIn is ParseDay with an explicit zone for timestamp inputs.
func ParseDayIn(s string, loc *time.Location) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, ErrInvalidDay
	}
	if len(s) == len(dayLayout) {
		t, err := time.Parse(dayLayout, s)
		if err != nil {
			return Day{}, ErrInvalidDay
		}
		return NewDay(t.Date()), nil
	}
	t, err := ParseInstantIn(s, loc)
	if err != nil {
		return Day{}, ErrInvalidDay
	}
	return DayIn(t, loc), nil
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.t.After(other.t) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) Day() int              { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }

// Time returns midnight of the day in UTC.
func (d Day) Time() time.Time { return d.t }

// StartIn returns the first instant of the day in loc.
func (d Day) StartIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = businessZone
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dayLayout)
}

func (d Day) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// INSTANTS
// =============================================================================

var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant parses an ISO-8601 timestamp. Timestamps without an offset
// are read as business-zone wall clock.
func ParseInstant(s string) (time.Time, error) {
	return ParseInstantIn(s, businessZone)
}

// ParseInstantIn is ParseInstant with an explicit zone for offset-less input.
func ParseInstantIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidInterval
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = businessZone
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidInterval
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

// DaysBetween returns the number of days from one day to another.
func DaysBetween(from, to Day) int { return int(to.t.Sub(from.t).Hours() / 24) }
