package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/schedule"
)

func TestEarliestAvailableStart_NoAdjustment(t *testing.T) {
	existing := []schedule.Shift{shift("1", 1, 9, 1, 17)}

	// Nothing ends after the proposed start.
	assert.Nil(t, schedule.EarliestAvailableStart(existing, at(2, 1)))
	assert.Nil(t, schedule.EarliestAvailableStart(existing, at(1, 17)))
	assert.Nil(t, schedule.EarliestAvailableStart(nil, at(1, 12)))
}

func TestEarliestAvailableStart_PushesPastRest(t *testing.T) {
	// GIVEN: a shift ending at 17:00
	existing := []schedule.Shift{shift("1", 1, 9, 1, 17)}

	// WHEN: proposing a start inside it
	got := schedule.EarliestAvailableStart(existing, at(1, 12))

	// THEN: the suggestion is eight hours after it ends
	require.NotNil(t, got)
	assert.True(t, at(2, 1).Equal(*got))
}

func TestEarliestAvailableStart_OrderIndependent(t *testing.T) {
	a := shift("a", 1, 9, 1, 17)
	b := shift("b", 1, 18, 1, 23)
	c := shift("c", 1, 6, 1, 8)

	orders := [][]schedule.Shift{{a, b, c}, {c, b, a}, {b, a, c}}
	for _, order := range orders {
		got := schedule.EarliestAvailableStart(order, at(1, 12))
		require.NotNil(t, got)
		assert.True(t, at(2, 7).Equal(*got), "got %s", got)
	}
}

func TestEarliestAvailableStart_IgnoresInactive(t *testing.T) {
	rejected := shift("1", 1, 9, 1, 17)
	rejected.Status = schedule.StatusRejected

	assert.Nil(t, schedule.EarliestAvailableStart([]schedule.Shift{rejected}, at(1, 12)))
}
