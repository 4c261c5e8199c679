package timeoff

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/generic"
)

// =============================================================================
// OVERLAP POLICY
// =============================================================================
//
// Two independent rules apply to a new or edited request:
//
//   Self:  any shared day with the same worker's other requests is a conflict.
//   Peer:  another worker with the same role may overlap, as long as the
//          shared days stay within TolerancePercent of the shorter request.
//
// The peer ratio uses the shorter of the two durations as denominator, so
// a one-day request inside a long one measures 100%.

// DefaultTolerancePercent is the peer overlap permitted without conflict.
var DefaultTolerancePercent = decimal.NewFromInt(10)

type OverlapPolicy struct {
	// TolerancePercent applies to peer comparisons only, never to a
	// worker's own requests. Overlap exactly equal to it is permitted.
	TolerancePercent decimal.Decimal
}

func DefaultOverlapPolicy() OverlapPolicy {
	return OverlapPolicy{TolerancePercent: DefaultTolerancePercent}
}

func NewOverlapPolicy(tolerancePercent float64) OverlapPolicy {
	return OverlapPolicy{TolerancePercent: decimal.NewFromFloat(tolerancePercent)}
}

type Category string

const (
	CategorySelf Category = "self"
	CategoryPeer Category = "peer"
)

// Result is either clear (Conflict false) or the first disqualifying overlap.
type Result struct {
	Conflict       bool
	Category       Category
	With           *Request
	OverlapDays    int
	OverlapPercent decimal.Decimal // peer conflicts only
	Message        string
}

// Check applies the self rule against own, then the peer rule against peers.
// Requests that are inactive or malformed are skipped; a malformed
// candidate is always clear.
func (p OverlapPolicy) Check(candidate Request, own, peers []Request) Result {
	if res := p.CheckSelf(candidate, own); res.Conflict {
		return res
	}
	return p.CheckPeers(candidate, peers)
}

// CheckSelf compares the candidate with the same worker's other requests,
// excluding the one being edited.
func (p OverlapPolicy) CheckSelf(candidate Request, own []Request) Result {
	if !candidate.Range.Valid() {
		return Result{}
	}
	for i := range own {
		other := own[i]
		if !other.participates() || isSameRequest(candidate, other) {
			continue
		}
		if candidate.WorkerID != "" && other.WorkerID != "" && other.WorkerID != candidate.WorkerID {
			continue
		}
		days := candidate.Range.OverlapDays(other.Range)
		if days == 0 {
			continue
		}
		return Result{
			Conflict:    true,
			Category:    CategorySelf,
			With:        &other,
			OverlapDays: days,
			Message: fmt.Sprintf("Overlaps your existing %s request from %s to %s (%s)",
				typeLabel(other.Type), other.Range.Start, other.Range.End, dayCount(days)),
		}
	}
	return Result{}
}

// CheckPeers compares the candidate with requests from other workers that
// share its role. A candidate without a role has no peers.
func (p OverlapPolicy) CheckPeers(candidate Request, peers []Request) Result {
	if !candidate.Range.Valid() || candidate.Role == "" {
		return Result{}
	}
	for i := range peers {
		other := peers[i]
		if !other.participates() || isSameRequest(candidate, other) {
			continue
		}
		if other.WorkerID == candidate.WorkerID || other.Role != candidate.Role {
			continue
		}
		days := candidate.Range.OverlapDays(other.Range)
		if days == 0 {
			continue
		}
		shorter := min(candidate.Range.Len(), other.Range.Len())
		percent := generic.Percent(days, shorter)
		if !percent.GreaterThan(p.TolerancePercent) {
			continue
		}
		percent = percent.Round(2)
		return Result{
			Conflict:       true,
			Category:       CategoryPeer,
			With:           &other,
			OverlapDays:    days,
			OverlapPercent: percent,
			Message: fmt.Sprintf("Overlaps %s%% with another %s's time-off from %s to %s (limit %s%%)",
				percent, roleLabel(candidate.Role), other.Range.Start, other.Range.End, p.TolerancePercent),
		}
	}
	return Result{}
}

func isSameRequest(a, b Request) bool {
	return a.ID != "" && a.ID == b.ID
}

func typeLabel(t Type) string {
	if t == "" {
		return "time-off"
	}
	return string(t)
}

func roleLabel(r generic.Role) string {
	if r == "" {
		return "worker"
	}
	return string(r)
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
