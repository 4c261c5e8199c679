// Package timeoff implements the time-off side of the conflict engine: the
// overlap policy between time-off requests and the set of calendar days on
// which a worker is unavailable.
//
// Time-off is reasoned about in calendar days, inclusive on both ends,
// never in instants.
package timeoff

import (
	"context"
	"strings"

	"github.com/warp/shift-engine/generic"
)

// =============================================================================
// TIME-OFF TYPES
// =============================================================================

// Type is the kind of leave requested.
type Type string

const (
	TypeVacation Type = "vacation"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeUnpaid   Type = "unpaid"
	TypeOther    Type = "other"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// Active reports whether a request with this status makes its days
// unavailable. Rejected and cancelled requests never do.
func (s RequestStatus) Active() bool {
	switch RequestStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StatusRejected, StatusCancelled, "canceled":
		return false
	default:
		return true
	}
}

// Request is a worker-submitted request to be unavailable for a closed
// range of calendar days.
type Request struct {
	ID       generic.RequestID
	WorkerID generic.WorkerID
	Role     generic.Role // role of the owning worker, used by the peer rule
	Range    generic.DayRange
	Status   RequestStatus
	Type     Type
	Reason   string
}

func (r Request) participates() bool {
	return r.Status.Active() && r.Range.Valid()
}

// =============================================================================
// STORE
// =============================================================================

// Store supplies and persists time-off records for callers of the engine.
type Store interface {
	// SaveTimeOff inserts or replaces a request by ID.
	SaveTimeOff(ctx context.Context, r Request) error

	// GetTimeOff returns generic.ErrTimeOffNotFound when the ID is unknown.
	GetTimeOff(ctx context.Context, id generic.RequestID) (*Request, error)

	// TimeOffByWorker returns a worker's requests ordered by start day.
	TimeOffByWorker(ctx context.Context, workerID generic.WorkerID) ([]Request, error)

	// TimeOffByRole returns every request whose owner has the given role.
	TimeOffByRole(ctx context.Context, role generic.Role) ([]Request, error)

	DeleteTimeOff(ctx context.Context, id generic.RequestID) error
}
