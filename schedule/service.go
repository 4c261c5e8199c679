package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warp/shift-engine/generic"
)

// ErrDirectOverlap is returned when an assignment would double-book a worker.
var ErrDirectOverlap = errors.New("shift overlaps an existing shift")

// AssignmentError carries the summary that refused an assignment.
type AssignmentError struct {
	Summary Summary
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("%s (%d overlapping)", ErrDirectOverlap, len(e.Summary.DirectOverlaps))
}

func (e *AssignmentError) Unwrap() error { return ErrDirectOverlap }

// =============================================================================
// ASSIGNMENT SERVICE - Loads a worker's shifts and gates new assignments
// =============================================================================

type AssignmentService struct {
	Store   Store
	Workers generic.WorkerStore
	Zone    *time.Location // nil means the business zone
}

func (as *AssignmentService) existing(ctx context.Context, workerID generic.WorkerID) ([]Shift, error) {
	if _, err := as.Workers.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}
	shifts, err := as.Store.ShiftsByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts: %w", err)
	}
	return shifts, nil
}

// Check runs CheckConflicts against the worker's stored shifts. A stored
// shift with the candidate's ID is its previous version and is excluded.
func (as *AssignmentService) Check(ctx context.Context, candidate Shift) (Summary, error) {
	shifts, err := as.existing(ctx, candidate.WorkerID)
	if err != nil {
		return Summary{}, err
	}
	return CheckConflictsWith(candidate, shifts, Options{ExcludeID: candidate.ID, Zone: as.Zone}), nil
}

// Assign stores the candidate unless it directly overlaps an active shift.
// Rest-gap violations are returned in the summary but do not block.
func (as *AssignmentService) Assign(ctx context.Context, candidate Shift) (*Shift, Summary, error) {
	if !candidate.Span().Valid() {
		return nil, Summary{}, &generic.InvalidIntervalError{
			Start: candidate.Start.Format(time.RFC3339),
			End:   candidate.End.Format(time.RFC3339),
		}
	}

	summary, err := as.Check(ctx, candidate)
	if err != nil {
		return nil, Summary{}, err
	}
	if !summary.CanAssign {
		return nil, summary, &AssignmentError{Summary: summary}
	}

	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if candidate.JobID == "" {
		candidate.JobID = generic.JobID(candidate.ID)
	}
	if candidate.Status == "" {
		candidate.Status = StatusPending
	}
	if err := as.Store.SaveShift(ctx, candidate); err != nil {
		return nil, Summary{}, fmt.Errorf("failed to save shift: %w", err)
	}
	return &candidate, summary, nil
}

// EarliestStart suggests a legal start for a shift proposed at proposed.
func (as *AssignmentService) EarliestStart(ctx context.Context, workerID generic.WorkerID, proposed time.Time) (*time.Time, error) {
	shifts, err := as.existing(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return EarliestAvailableStart(shifts, proposed), nil
}
