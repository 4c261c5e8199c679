/*
Package generic provides the domain-agnostic building blocks of the
scheduling engine.

PURPOSE:

	Shifts and time-off are both "a worker is busy during an interval".
	This package holds the interval model they share and the record-store
	contracts through which callers supply them.

KEY CONCEPTS:
  - Span:     An instant interval (shifts), see span.go
  - Day:      A calendar day in the fixed business zone, see time.go
  - DayRange: A closed range of days (time-off), see period.go
  - Gap:      Signed distance between two spans, see span.go
  - IDs:      Type-safe identifiers (this file)

DESIGN PRINCIPLES:
 1. Purity: Nothing here holds state between calls
 2. One zone: Every instant-to-day conversion goes through the business zone
 3. Precision: Hours and percentages use decimal.Decimal
 4. Type Safety: Distinct ID types prevent mixing worker and job IDs

SEE ALSO:
  - schedule/: Shift conflict and rest-gap rules
  - timeoff/: Time-off overlap policy and disabled dates
  - store.go: Record-store interfaces
*/
package generic

import "github.com/shopspring/decimal"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type WorkerID string
type JobID string
type RequestID string

// Role groups workers whose time-off is compared by the peer rule.
type Role string

// =============================================================================
// WORKER
// =============================================================================

// Worker is the owner of shifts and time-off requests.
type Worker struct {
	ID    WorkerID
	Name  string
	Email string
	Role  Role
}

// =============================================================================
// PERCENT - Ratio arithmetic shared by overlap rules
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Percent returns part/whole*100. A zero whole yields zero, never a panic.
func Percent(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole)))
}
