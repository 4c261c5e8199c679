package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/generic"
)

// RestThreshold is the minimum separation between two of a worker's shifts.
const RestThreshold = 8 * time.Hour

const instantLayout = "Mon Jan 2 2006 15:04 MST"

// =============================================================================
// CONFLICT CLASSIFICATION
// =============================================================================

type ConflictKind string

const (
	KindDirectOverlap   ConflictKind = "direct_overlap"
	KindInsufficientGap ConflictKind = "insufficient_gap"
)

// Classify maps a signed gap onto a conflict kind. ok is false when the
// gap satisfies the rest threshold.
//
//	gap < 0                  DirectOverlap
//	0 <= gap < threshold     InsufficientGap
//	gap >= threshold         no conflict
func Classify(gap time.Duration) (kind ConflictKind, ok bool) {
	switch {
	case gap < 0:
		return KindDirectOverlap, true
	case gap < RestThreshold:
		return KindInsufficientGap, true
	default:
		return "", false
	}
}

// Conflict records why an existing shift blocks or warns against a candidate.
type Conflict struct {
	Kind     ConflictKind
	Gap      time.Duration
	GapHours decimal.Decimal // signed: negative means overlapping

	// Resolvable is only ever true for an insufficient gap where the
	// existing shift precedes the candidate. RequiredEnd is then the latest
	// the existing shift may finish.
	Resolvable  bool
	RequiredEnd *time.Time

	Subject Shift
	Message string
}

// =============================================================================
// GAP RULE
// =============================================================================

// EvaluateGap classifies the relationship between a candidate shift and one
// existing shift. It returns nil when the pair is clear or either shift is
// malformed.
func EvaluateGap(candidate, existing Shift) *Conflict {
	return evaluateGap(candidate, existing, generic.BusinessZone())
}

func evaluateGap(candidate, existing Shift, loc *time.Location) *Conflict {
	if !candidate.Span().Valid() || !existing.Span().Valid() {
		return nil
	}

	gap := generic.Gap(candidate.Span(), existing.Span())
	kind, ok := Classify(gap)
	if !ok {
		return nil
	}

	c := &Conflict{
		Kind:     kind,
		Gap:      gap,
		GapHours: generic.Hours(gap),
		Subject:  existing,
	}

	if kind == KindInsufficientGap && !existing.End.After(candidate.Start) {
		// Only an earlier finish of the preceding shift is ever proposed,
		// never a later start of a following one.
		requiredEnd := candidate.Start.Add(-RestThreshold)
		if !requiredEnd.Before(existing.Start) {
			c.Resolvable = true
			c.RequiredEnd = &requiredEnd
		}
	}

	c.Message = explain(c, loc)
	return c
}

func explain(c *Conflict, loc *time.Location) string {
	label := c.Subject.Label()
	switch {
	case c.Kind == KindDirectOverlap:
		return fmt.Sprintf("Overlaps %s by %s", label, formatHours(c.GapHours.Abs()))
	case c.Resolvable:
		return fmt.Sprintf("Only %s of rest after %s (%s required). Finishing it by %s would satisfy the rest gap",
			formatHours(c.GapHours), label, formatHours(generic.Hours(RestThreshold)),
			c.RequiredEnd.In(loc).Format(instantLayout))
	default:
		return fmt.Sprintf("Only %s of rest between this shift and %s (%s required)",
			formatHours(c.GapHours), label, formatHours(generic.Hours(RestThreshold)))
	}
}

func formatHours(h decimal.Decimal) string {
	if h.Equal(decimal.NewFromInt(1)) {
		return "1 hour"
	}
	return h.String() + " hours"
}
