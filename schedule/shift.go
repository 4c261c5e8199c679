// Package schedule implements the shift side of the conflict engine: the
// mandatory rest gap between a worker's shifts, the conflict summary used to
// gate an assignment, and the earliest legal start for a new shift.
//
// Every function here is a pure fold over the records it is given. Nothing
// is fetched, persisted or cached.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/shift-engine/generic"
)

// =============================================================================
// SHIFT STATUS
// =============================================================================

type ShiftStatus string

const (
	StatusDraft     ShiftStatus = "draft"
	StatusPending   ShiftStatus = "pending"
	StatusAccepted  ShiftStatus = "accepted"
	StatusApproved  ShiftStatus = "approved"
	StatusRejected  ShiftStatus = "rejected"
	StatusCompleted ShiftStatus = "completed"
	StatusCancelled ShiftStatus = "cancelled"
)

// Active reports whether a shift with this status blocks the worker.
// Only pending and accepted shifts do.
func (s ShiftStatus) Active() bool {
	switch ShiftStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StatusPending, StatusAccepted:
		return true
	default:
		return false
	}
}

// =============================================================================
// SHIFT - A scheduled work interval for one worker
// =============================================================================

type Shift struct {
	ID         string
	WorkerID   generic.WorkerID
	JobID      generic.JobID
	JobNumber  string
	Start      time.Time
	End        time.Time
	Status     ShiftStatus
	SiteName   string // optional
	ClientName string // optional
}

func (s Shift) Span() generic.Span { return generic.Span{Start: s.Start, End: s.End} }

// Label names the shift for explanations, omitting whatever is missing.
func (s Shift) Label() string {
	var b strings.Builder
	switch {
	case s.JobNumber != "":
		fmt.Fprintf(&b, "job #%s", s.JobNumber)
	case s.JobID != "":
		fmt.Fprintf(&b, "job %s", s.JobID)
	default:
		b.WriteString("existing shift")
	}
	if s.SiteName != "" {
		fmt.Fprintf(&b, " at %s", s.SiteName)
	}
	if s.ClientName != "" {
		fmt.Fprintf(&b, " (%s)", s.ClientName)
	}
	return b.String()
}

// activeShifts returns the shifts that participate in conflict checks.
func activeShifts(shifts []Shift) []Shift {
	active := make([]Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.Status.Active() && s.Span().Valid() {
			active = append(active, s)
		}
	}
	return active
}
