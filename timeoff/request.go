package timeoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
)

// ErrOverlapConflict is returned when a submitted request violates the
// overlap policy.
var ErrOverlapConflict = errors.New("time-off request overlaps existing requests")

// OverlapError carries the policy result that refused a submission.
type OverlapError struct {
	Result Result
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOverlapConflict, e.Result.Message)
}

func (e *OverlapError) Unwrap() error { return ErrOverlapConflict }

// =============================================================================
// REQUEST SERVICE - Loads records, runs the policy, persists clear requests
// =============================================================================

type RequestService struct {
	Store   Store
	Workers generic.WorkerStore
	Shifts  schedule.Store // optional, for disabled dates
	Policy  OverlapPolicy
	Zone    *time.Location // nil means the business zone
}

// Evaluate runs the overlap policy for candidate against the stored
// requests of its worker and of the worker's role peers.
func (rs *RequestService) Evaluate(ctx context.Context, candidate Request) (Result, error) {
	res, _, err := rs.evaluate(ctx, candidate)
	return res, err
}

func (rs *RequestService) evaluate(ctx context.Context, candidate Request) (Result, *generic.Worker, error) {
	worker, err := rs.Workers.GetWorker(ctx, candidate.WorkerID)
	if err != nil {
		return Result{}, nil, err
	}
	candidate.Role = worker.Role

	own, err := rs.Store.TimeOffByWorker(ctx, candidate.WorkerID)
	if err != nil {
		return Result{}, nil, fmt.Errorf("failed to load own time-off: %w", err)
	}

	var peers []Request
	if worker.Role != "" {
		peers, err = rs.Store.TimeOffByRole(ctx, worker.Role)
		if err != nil {
			return Result{}, nil, fmt.Errorf("failed to load peer time-off: %w", err)
		}
	}

	return rs.Policy.Check(candidate, own, peers), worker, nil
}

// Submit evaluates and, when clear, stores the request. A conflict is
// returned as an *OverlapError alongside the result.
func (rs *RequestService) Submit(ctx context.Context, candidate Request) (*Request, Result, error) {
	if !candidate.Range.Valid() {
		return nil, Result{}, &generic.InvalidIntervalError{
			Start: candidate.Range.Start.String(),
			End:   candidate.Range.End.String(),
		}
	}

	res, worker, err := rs.evaluate(ctx, candidate)
	if err != nil {
		return nil, Result{}, err
	}
	if res.Conflict {
		return nil, res, &OverlapError{Result: res}
	}

	if candidate.ID == "" {
		candidate.ID = generic.RequestID(uuid.NewString())
	}
	if candidate.Status == "" {
		candidate.Status = StatusPending
	}
	if candidate.Type == "" {
		candidate.Type = TypeVacation
	}
	candidate.Role = worker.Role

	if err := rs.Store.SaveTimeOff(ctx, candidate); err != nil {
		return nil, Result{}, fmt.Errorf("failed to save time-off: %w", err)
	}
	return &candidate, res, nil
}

// DisabledInput gathers a worker's time-off and active assignments.
func (rs *RequestService) DisabledInput(ctx context.Context, workerID generic.WorkerID, exclude generic.RequestID) (DisabledInput, error) {
	if _, err := rs.Workers.GetWorker(ctx, workerID); err != nil {
		return DisabledInput{}, err
	}

	requests, err := rs.Store.TimeOffByWorker(ctx, workerID)
	if err != nil {
		return DisabledInput{}, fmt.Errorf("failed to load time-off: %w", err)
	}
	in := DisabledInput{TimeOff: requests, ExcludeID: exclude, Zone: rs.Zone}

	if rs.Shifts != nil {
		shifts, err := rs.Shifts.ShiftsByWorker(ctx, workerID)
		if err != nil {
			return DisabledInput{}, fmt.Errorf("failed to load shifts: %w", err)
		}
		for _, s := range shifts {
			in.Assignments = append(in.Assignments, AssignmentFromShift(s))
		}
	}
	return in, nil
}
