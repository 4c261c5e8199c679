package schedule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/generic/store"
	"github.com/warp/shift-engine/schedule"
)

func newAssignmentService(t *testing.T) (*schedule.AssignmentService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, mem.SaveWorker(context.Background(), generic.Worker{ID: "w1", Name: "Alex", Role: "guard"}))
	return &schedule.AssignmentService{Store: mem, Workers: mem}, mem
}

func TestAssignmentService_Assign(t *testing.T) {
	ctx := context.Background()
	svc, mem := newAssignmentService(t)

	// GIVEN: a stored 09:00-17:00 shift
	require.NoError(t, mem.SaveShift(ctx, shift("1", 1, 9, 1, 17)))

	// WHEN: assigning a shift with a short rest gap
	candidate := shift("", 1, 18, 1, 22)
	candidate.JobID = ""
	candidate.Status = ""
	saved, summary, err := svc.Assign(ctx, candidate)

	// THEN: it is saved with generated defaults and the warning returned
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, generic.JobID(saved.ID), saved.JobID)
	assert.Equal(t, schedule.StatusPending, saved.Status)
	assert.Len(t, summary.GapViolations, 1)

	stored, err := mem.ShiftsByWorker(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestAssignmentService_AssignRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	svc, mem := newAssignmentService(t)
	require.NoError(t, mem.SaveShift(ctx, shift("1", 1, 9, 1, 17)))

	saved, summary, err := svc.Assign(ctx, shift("2", 1, 10, 1, 15))

	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrDirectOverlap)
	var assignErr *schedule.AssignmentError
	require.ErrorAs(t, err, &assignErr)
	assert.Len(t, assignErr.Summary.DirectOverlaps, 1)
	assert.False(t, summary.CanAssign)
	assert.Nil(t, saved)

	_, err = mem.GetShift(ctx, "2")
	assert.ErrorIs(t, err, generic.ErrShiftNotFound)
}

func TestAssignmentService_EditDoesNotConflictWithItself(t *testing.T) {
	ctx := context.Background()
	svc, mem := newAssignmentService(t)
	require.NoError(t, mem.SaveShift(ctx, shift("1", 1, 9, 1, 17)))

	moved := shift("1", 1, 10, 1, 18)
	moved.JobID = "renumbered"
	_, summary, err := svc.Assign(ctx, moved)

	require.NoError(t, err)
	assert.False(t, summary.HasConflicts)
}

func TestAssignmentService_SameJobOverlapIsRefused(t *testing.T) {
	ctx := context.Background()
	svc, mem := newAssignmentService(t)

	// GIVEN: an accepted 09:00-17:00 shift on job-42
	dayOne := shift("day1", 1, 9, 1, 17)
	dayOne.JobID = "job-42"
	require.NoError(t, mem.SaveShift(ctx, dayOne))

	// WHEN: assigning a new 10:00-15:00 shift on the same job
	candidate := shift("", 1, 10, 1, 15)
	candidate.JobID = "job-42"
	saved, summary, err := svc.Assign(ctx, candidate)

	// THEN: it is refused and nothing is stored
	assert.ErrorIs(t, err, schedule.ErrDirectOverlap)
	assert.Nil(t, saved)
	assert.False(t, summary.CanAssign)
	require.Len(t, summary.DirectOverlaps, 1)
	assert.Equal(t, "day1", summary.DirectOverlaps[0].Subject.ID)

	stored, err := mem.ShiftsByWorker(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAssignmentService_SameJobNextDayGetsRestCheck(t *testing.T) {
	ctx := context.Background()
	svc, mem := newAssignmentService(t)

	dayOne := shift("day1", 1, 9, 1, 23)
	dayOne.JobID = "job-42"
	require.NoError(t, mem.SaveShift(ctx, dayOne))

	candidate := shift("day2", 2, 5, 2, 13)
	candidate.JobID = "job-42"
	summary, err := svc.Check(ctx, candidate)

	require.NoError(t, err)
	assert.True(t, summary.CanAssign)
	require.Len(t, summary.GapViolations, 1)
	assert.Equal(t, "day1", summary.GapViolations[0].Subject.ID)
}

func TestAssignmentService_InvalidInterval(t *testing.T) {
	svc, _ := newAssignmentService(t)

	_, _, err := svc.Assign(context.Background(), shift("1", 1, 17, 1, 9))

	assert.ErrorIs(t, err, generic.ErrInvalidInterval)
}

func TestAssignmentService_UnknownWorker(t *testing.T) {
	svc, _ := newAssignmentService(t)
	candidate := shift("1", 1, 9, 1, 17)
	candidate.WorkerID = "ghost"

	_, err := svc.Check(context.Background(), candidate)
	assert.ErrorIs(t, err, generic.ErrWorkerNotFound)

	_, err = svc.EarliestStart(context.Background(), "ghost", at(1, 9))
	assert.ErrorIs(t, err, generic.ErrWorkerNotFound)
}

func TestAssignmentService_EarliestStart(t *testing.T) {
	ctx := context.Background()
	svc, mem := newAssignmentService(t)
	require.NoError(t, mem.SaveShift(ctx, shift("1", 1, 9, 1, 17)))

	got, err := svc.EarliestStart(ctx, "w1", at(1, 12))

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, at(2, 1).Equal(*got))
}
