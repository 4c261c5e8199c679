package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func at(day, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func shift(id string, startDay, startHour, endDay, endHour int) schedule.Shift {
	return schedule.Shift{
		ID:        id,
		WorkerID:  "w1",
		JobID:     generic.JobID("job-" + id),
		JobNumber: id,
		Start:     at(startDay, startHour),
		End:       at(endDay, endHour),
		Status:    schedule.StatusAccepted,
	}
}

// =============================================================================
// CLASSIFY
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		gap      time.Duration
		wantKind schedule.ConflictKind
		wantOK   bool
	}{
		{-time.Minute, schedule.KindDirectOverlap, true},
		{-5 * time.Hour, schedule.KindDirectOverlap, true},
		{0, schedule.KindInsufficientGap, true},
		{7*time.Hour + 59*time.Minute, schedule.KindInsufficientGap, true},
		{schedule.RestThreshold, "", false},
		{24 * time.Hour, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.gap.String(), func(t *testing.T) {
			kind, ok := schedule.Classify(tt.gap)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

// =============================================================================
// EVALUATE GAP
// =============================================================================

func TestEvaluateGap_ShortRestIsResolvable(t *testing.T) {
	// GIVEN: an existing 09:00-17:00 shift
	existing := shift("1", 1, 9, 1, 17)

	// WHEN: proposing 18:00-22:00 the same day
	c := schedule.EvaluateGap(shift("2", 1, 18, 1, 22), existing)

	// THEN: one hour of rest is an insufficient gap
	require.NotNil(t, c)
	assert.Equal(t, schedule.KindInsufficientGap, c.Kind)
	assert.Equal(t, time.Hour, c.Gap)
	assert.Equal(t, "1", c.GapHours.String())

	// AND: finishing the existing shift by 10:00 would fix it
	assert.True(t, c.Resolvable)
	require.NotNil(t, c.RequiredEnd)
	assert.True(t, at(1, 10).Equal(*c.RequiredEnd))
	assert.Contains(t, c.Message, "Only 1 hour of rest after job #1")
	assert.Contains(t, c.Message, "Finishing it by")
}

func TestEvaluateGap_Overlap(t *testing.T) {
	// GIVEN: an existing 09:00-17:00 shift
	existing := shift("1", 1, 9, 1, 17)

	// WHEN: proposing 10:00-15:00 inside it
	c := schedule.EvaluateGap(shift("2", 1, 10, 1, 15), existing)

	// THEN: the gap is the negated intersection
	require.NotNil(t, c)
	assert.Equal(t, schedule.KindDirectOverlap, c.Kind)
	assert.Equal(t, -5*time.Hour, c.Gap)
	assert.False(t, c.Resolvable)
	assert.Nil(t, c.RequiredEnd)
	assert.Equal(t, "Overlaps job #1 by 5 hours", c.Message)
}

func TestEvaluateGap_ExactThresholdIsClear(t *testing.T) {
	// GIVEN: an existing shift ending at 17:00
	existing := shift("1", 1, 9, 1, 17)

	// WHEN: the candidate starts at 01:00 the next day
	c := schedule.EvaluateGap(shift("2", 2, 1, 2, 9), existing)

	// THEN: exactly eight hours of rest is enough
	assert.Nil(t, c)
}

func TestEvaluateGap_FollowingShiftIsNeverResolvable(t *testing.T) {
	// GIVEN: the existing shift comes after the candidate
	existing := shift("1", 1, 18, 1, 22)

	// WHEN: the candidate ends one hour before it
	c := schedule.EvaluateGap(shift("2", 1, 9, 1, 17), existing)

	// THEN: it is flagged without a proposed fix
	require.NotNil(t, c)
	assert.Equal(t, schedule.KindInsufficientGap, c.Kind)
	assert.False(t, c.Resolvable)
	assert.Nil(t, c.RequiredEnd)
	assert.Contains(t, c.Message, "between this shift and job #1")
}

func TestEvaluateGap_RequiredEndBeforeExistingStart(t *testing.T) {
	// GIVEN: a short existing shift 14:00-15:00
	existing := shift("1", 1, 14, 1, 15)

	// WHEN: the candidate starts at 16:00 so required end would be 08:00
	c := schedule.EvaluateGap(shift("2", 1, 16, 1, 20), existing)

	// THEN: no earlier finish can fix it
	require.NotNil(t, c)
	assert.Equal(t, schedule.KindInsufficientGap, c.Kind)
	assert.False(t, c.Resolvable)
}

func TestEvaluateGap_MalformedIsClear(t *testing.T) {
	existing := shift("1", 1, 9, 1, 17)

	reversed := shift("2", 1, 17, 1, 10)
	assert.Nil(t, schedule.EvaluateGap(reversed, existing))

	assert.Nil(t, schedule.EvaluateGap(schedule.Shift{}, existing))
}

func TestShift_Label(t *testing.T) {
	s := schedule.Shift{JobNumber: "42", SiteName: "Harbor Tower", ClientName: "Acme"}
	assert.Equal(t, "job #42 at Harbor Tower (Acme)", s.Label())

	assert.Equal(t, "job j-9", schedule.Shift{JobID: "j-9"}.Label())
	assert.Equal(t, "existing shift", schedule.Shift{}.Label())
}

func TestShiftStatus_Active(t *testing.T) {
	active := []schedule.ShiftStatus{schedule.StatusPending, schedule.StatusAccepted, "ACCEPTED", " pending "}
	for _, s := range active {
		assert.True(t, s.Active(), string(s))
	}

	inactive := []schedule.ShiftStatus{
		schedule.StatusDraft, schedule.StatusApproved, schedule.StatusRejected,
		schedule.StatusCompleted, schedule.StatusCancelled, "",
	}
	for _, s := range inactive {
		assert.False(t, s.Active(), string(s))
	}
}
