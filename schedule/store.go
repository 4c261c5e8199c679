package schedule

import (
	"context"

	"github.com/warp/shift-engine/generic"
)

// Store supplies and persists shift records. The engine never calls it;
// callers load a worker's shifts through it and hand them to CheckConflicts.
type Store interface {
	// SaveShift inserts or replaces a shift by ID.
	SaveShift(ctx context.Context, s Shift) error

	// GetShift returns generic.ErrShiftNotFound when the ID is unknown.
	GetShift(ctx context.Context, id string) (*Shift, error)

	// ShiftsByWorker returns every shift of a worker ordered by Start.
	ShiftsByWorker(ctx context.Context, workerID generic.WorkerID) ([]Shift, error)

	DeleteShift(ctx context.Context, id string) error
}
