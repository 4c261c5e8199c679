package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func utc(day, hour int) time.Time {
	return time.Date(2025, time.January, day, hour, 0, 0, 0, time.UTC)
}

func span(startDay, startHour, endDay, endHour int) generic.Span {
	return generic.Span{Start: utc(startDay, startHour), End: utc(endDay, endHour)}
}

// =============================================================================
// GAP CALCULATOR
// =============================================================================

func TestGap(t *testing.T) {
	tests := []struct {
		name string
		a, b generic.Span
		want time.Duration
	}{
		{"a before b", span(1, 9, 1, 17), span(1, 18, 1, 22), time.Hour},
		{"b before a", span(1, 18, 1, 22), span(1, 9, 1, 17), time.Hour},
		{"partial overlap", span(1, 9, 1, 17), span(1, 15, 1, 20), -2 * time.Hour},
		{"contained", span(1, 9, 1, 17), span(1, 10, 1, 15), -5 * time.Hour},
		{"identical", span(1, 9, 1, 17), span(1, 9, 1, 17), -8 * time.Hour},
		{"touching is zero gap", span(1, 9, 1, 17), span(1, 17, 1, 20), 0},
		{"across days", span(1, 9, 1, 17), span(2, 1, 2, 9), 8 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generic.Gap(tt.a, tt.b))
		})
	}
}

func TestGap_SymmetricMagnitude(t *testing.T) {
	pairs := [][2]generic.Span{
		{span(1, 0, 1, 8), span(3, 0, 3, 1)},
		{span(1, 9, 1, 17), span(1, 16, 2, 2)},
		{span(1, 9, 1, 17), span(1, 17, 1, 18)},
		{span(2, 0, 2, 4), span(1, 0, 1, 23)},
	}

	for _, p := range pairs {
		ab := generic.Gap(p[0], p[1])
		ba := generic.Gap(p[1], p[0])
		assert.Equal(t, ab, ba, "gap(%v,%v) must not depend on argument order", p[0], p[1])
	}
}

func TestGap_OverlapMagnitudeEqualsIntersection(t *testing.T) {
	// GIVEN: 09:00-17:00 and 10:00-15:00 on the same day
	a := span(1, 9, 1, 17)
	b := span(1, 10, 1, 15)

	// WHEN: computing the gap
	gap := generic.Gap(a, b)

	// THEN: it is negative and equals the 5h intersection
	assert.Negative(t, int64(gap))
	assert.Equal(t, 5*time.Hour, -gap)
	assert.True(t, generic.Overlaps(a, b))
}

func TestGap_DoesNotMutateInputs(t *testing.T) {
	a := span(1, 18, 1, 22)
	b := span(1, 9, 1, 17)
	aCopy, bCopy := a, b

	generic.Gap(a, b)

	assert.Equal(t, aCopy, a)
	assert.Equal(t, bCopy, b)
}

// =============================================================================
// SPAN
// =============================================================================

func TestNewSpan(t *testing.T) {
	_, err := generic.NewSpan(utc(1, 17), utc(1, 9))
	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrInvalidInterval)
	assert.True(t, generic.IsClientError(err))

	s, err := generic.NewSpan(utc(1, 9), utc(1, 17))
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, s.Duration())
}

func TestSpan_Valid(t *testing.T) {
	assert.False(t, generic.Span{}.Valid())
	assert.False(t, generic.Span{Start: utc(1, 9)}.Valid())
	assert.False(t, span(1, 17, 1, 9).Valid())
	assert.True(t, span(1, 9, 1, 9).Valid())
	assert.Equal(t, time.Duration(0), span(1, 17, 1, 9).Duration())
}

func TestParseSpan(t *testing.T) {
	s, err := generic.ParseSpan("2025-01-01T09:00:00Z", "2025-01-01T17:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, s.Duration())

	_, err = generic.ParseSpan("not-a-time", "2025-01-01T17:00:00Z")
	assert.ErrorIs(t, err, generic.ErrInvalidInterval)
}

func TestSpan_DaysInBusinessZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	t.Run("overnight shift touches two days", func(t *testing.T) {
		s := generic.Span{
			Start: time.Date(2025, time.January, 5, 22, 0, 0, 0, ny),
			End:   time.Date(2025, time.January, 6, 6, 0, 0, 0, ny),
		}
		r := s.Days(ny)
		assert.Equal(t, "2025-01-05", r.Start.String())
		assert.Equal(t, "2025-01-06", r.End.String())
	})

	t.Run("ending at midnight stays on one day", func(t *testing.T) {
		s := generic.Span{
			Start: time.Date(2025, time.January, 5, 16, 0, 0, 0, ny),
			End:   time.Date(2025, time.January, 6, 0, 0, 0, 0, ny),
		}
		r := s.Days(ny)
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, "2025-01-05", r.End.String())
	})

	t.Run("UTC instants are converted before taking the day", func(t *testing.T) {
		// 03:00Z on Jan 6 is still Jan 5 in New York
		s := generic.Span{Start: utc(6, 3), End: utc(6, 4)}
		r := s.Days(ny)
		assert.Equal(t, "2025-01-05", r.Start.String())
	})
}

// =============================================================================
// HOURS & PERCENT
// =============================================================================

func TestHours(t *testing.T) {
	assert.Equal(t, "1.5", generic.Hours(90*time.Minute).String())
	assert.Equal(t, "-2", generic.Hours(-2*time.Hour).String())
	assert.Equal(t, "0", generic.Hours(0).String())
	assert.Equal(t, "0.33", generic.Hours(20*time.Minute).String())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "100", generic.Percent(2, 2).String())
	assert.Equal(t, "10", generic.Percent(1, 10).String())
	assert.True(t, generic.Percent(0, 0).IsZero(), "zero denominator must not panic")
	assert.True(t, generic.Percent(1, 3).GreaterThan(generic.Percent(33, 100)))
}
