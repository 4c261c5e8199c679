package timeoff

import (
	"sort"
	"time"

	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// ASSIGNMENT - Job assignment as supplied by the data-access layer
// =============================================================================

// Assignment is a job assignment in either of its two historical shapes:
// start_time/end_time instants, or start_date/end_date days. Callers pass
// whichever they received; NormalizeAssignments maps both onto DayRange.
type Assignment struct {
	JobID     string `json:"job_id,omitempty"`
	Status    string `json:"status"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// AssignmentFromShift converts a shift record into the instant shape.
func AssignmentFromShift(s schedule.Shift) Assignment {
	return Assignment{
		JobID:     string(s.JobID),
		Status:    string(s.Status),
		StartTime: s.Start.Format(time.RFC3339),
		EndTime:   s.End.Format(time.RFC3339),
	}
}

// dayRange normalizes one assignment. ok is false for inactive or
// malformed assignments.
func (a Assignment) dayRange(loc *time.Location) (generic.DayRange, bool) {
	if !schedule.ShiftStatus(a.Status).Active() {
		return generic.DayRange{}, false
	}

	if a.StartTime != "" || a.EndTime != "" {
		start, err := generic.ParseInstantIn(a.StartTime, loc)
		if err != nil {
			return generic.DayRange{}, false
		}
		end, err := generic.ParseInstantIn(a.EndTime, loc)
		if err != nil {
			return generic.DayRange{}, false
		}
		r := generic.Span{Start: start, End: end}.Days(loc)
		return r, r.Valid()
	}

	start, err := generic.ParseDayIn(a.StartDate, loc)
	if err != nil {
		return generic.DayRange{}, false
	}
	end, err := generic.ParseDayIn(a.EndDate, loc)
	if err != nil {
		return generic.DayRange{}, false
	}
	r := generic.DayRange{Start: start, End: end}
	return r, r.Valid()
}

// NormalizeAssignments maps active assignments onto day ranges in loc,
// dropping inactive and malformed ones. A nil loc means the business zone.
func NormalizeAssignments(assignments []Assignment, loc *time.Location) []generic.DayRange {
	if loc == nil {
		loc = generic.BusinessZone()
	}
	ranges := make([]generic.DayRange, 0, len(assignments))
	for _, a := range assignments {
		if r, ok := a.dayRange(loc); ok {
			ranges = append(ranges, r)
		}
	}
	return ranges
}

// =============================================================================
// DISABLED DATES
// =============================================================================

// DisabledInput is everything that makes a worker unavailable.
type DisabledInput struct {
	TimeOff     []Request
	Assignments []Assignment

	// ExcludeID drops the request being edited so its own days stay pickable.
	ExcludeID generic.RequestID

	// Zone maps assignment instants to days. Nil means the business zone.
	Zone *time.Location
}

// ranges is the single normalization shared by DisabledDates and
// IsDateDisabled, which keeps the bulk and point forms in agreement.
func (in DisabledInput) ranges() []generic.DayRange {
	ranges := NormalizeAssignments(in.Assignments, in.Zone)
	for _, r := range in.TimeOff {
		if !r.participates() {
			continue
		}
		if in.ExcludeID != "" && r.ID == in.ExcludeID {
			continue
		}
		ranges = append(ranges, r.Range)
	}
	return ranges
}

// DaySet is a set of calendar days.
type DaySet map[generic.Day]struct{}

func (s DaySet) Has(d generic.Day) bool {
	_, ok := s[d]
	return ok
}

func (s DaySet) Len() int { return len(s) }

// Sorted returns the days in ascending order.
func (s DaySet) Sorted() []generic.Day {
	days := make([]generic.Day, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// DisabledDates returns every day on which the worker is unavailable.
func DisabledDates(in DisabledInput) DaySet {
	set := make(DaySet)
	for _, r := range in.ranges() {
		for _, d := range r.Days() {
			set[d] = struct{}{}
		}
	}
	return set
}

// IsDateDisabled reports whether day is in DisabledDates(in) without
// enumerating the ranges.
func IsDateDisabled(day generic.Day, in DisabledInput) bool {
	if day.IsZero() {
		return false
	}
	for _, r := range in.ranges() {
		if r.Contains(day) {
			return true
		}
	}
	return false
}
