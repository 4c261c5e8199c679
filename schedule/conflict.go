package schedule

import (
	"time"

	"github.com/warp/shift-engine/generic"
)

// =============================================================================
// CONFLICT SUMMARY
// =============================================================================

// Summary is the outcome of checking a candidate shift against a worker's
// existing shifts. Only direct overlaps block assignment; rest-gap
// violations are surfaced as warnings.
type Summary struct {
	HasConflicts   bool
	DirectOverlaps []Conflict
	GapViolations  []Conflict
	CanAssign      bool
	Warnings       []string
}

// Options tune a conflict check.
type Options struct {
	// ExcludeID skips the persisted copy of a shift that is being edited.
	// Other shifts of the same job are still checked.
	ExcludeID string

	// Zone renders instants in explanations. Nil means the business zone.
	Zone *time.Location
}

// CheckConflicts checks a candidate shift against the worker's existing
// shifts. The caller filters existing to the relevant worker.
func CheckConflicts(candidate Shift, existing []Shift) Summary {
	return CheckConflictsWith(candidate, existing, Options{})
}

// CheckConflictsWith is CheckConflicts with options.
func CheckConflictsWith(candidate Shift, existing []Shift, opts Options) Summary {
	loc := opts.Zone
	if loc == nil {
		loc = generic.BusinessZone()
	}

	summary := Summary{
		DirectOverlaps: []Conflict{},
		GapViolations:  []Conflict{},
		Warnings:       []string{},
	}

	for _, e := range activeShifts(existing) {
		if opts.ExcludeID != "" && e.ID == opts.ExcludeID {
			continue
		}
		c := evaluateGap(candidate, e, loc)
		if c == nil {
			continue
		}
		switch c.Kind {
		case KindDirectOverlap:
			summary.DirectOverlaps = append(summary.DirectOverlaps, *c)
			summary.Warnings = append(summary.Warnings, "Cannot assign: "+c.Message)
		case KindInsufficientGap:
			summary.GapViolations = append(summary.GapViolations, *c)
			if c.Resolvable {
				summary.Warnings = append(summary.Warnings, "Rest gap can be fixed: "+c.Message)
			} else {
				summary.Warnings = append(summary.Warnings, "Rest gap warning: "+c.Message)
			}
		}
	}

	summary.HasConflicts = len(summary.DirectOverlaps) > 0 || len(summary.GapViolations) > 0
	summary.CanAssign = len(summary.DirectOverlaps) == 0
	return summary
}
