/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:

	Tests that each scenario sets up state that exercises the engine:
	- Workers are created
	- Shifts and time-off are stored
	- The engine reports the conflicts the scenario is built around
*/
package api

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/timeoff"
)

func TestScenario_RestGap(t *testing.T) {
	// GIVEN: the rest-gap scenario
	h := setupTestHandler(t)
	ctx := context.Background()
	base := generic.NewDay(2025, 3, 3)
	require.NoError(t, h.loadRestGapScenario(ctx, base))

	// WHEN: checking an evening shift the same day
	summary, err := h.Assignments.Check(ctx, schedule.Shift{
		WorkerID: "guard-1", Start: h.at(base, 18), End: h.at(base, 22),
	})
	require.NoError(t, err)

	// THEN: the accepted shift warns and the rejected one is ignored
	assert.True(t, summary.CanAssign)
	require.Len(t, summary.GapViolations, 1)
	assert.Equal(t, "shift-day", summary.GapViolations[0].Subject.ID)

	summary, err = h.Assignments.Check(ctx, schedule.Shift{
		WorkerID: "guard-1", Start: h.at(base.AddDays(1), 10), End: h.at(base.AddDays(1), 12),
	})
	require.NoError(t, err)
	assert.False(t, summary.HasConflicts)
}

func TestScenario_TimeOffOverlap(t *testing.T) {
	h := setupTestHandler(t)
	ctx := context.Background()
	base := generic.NewDay(2025, 3, 3)
	require.NoError(t, h.loadTimeOffOverlapScenario(ctx, base))

	workers, err := h.Store.ListWorkers(ctx)
	require.NoError(t, err)
	assert.Len(t, workers, 3)

	// Own request
	res, err := h.TimeOff.Evaluate(ctx, timeoff.Request{
		WorkerID: "nurse-1", Range: generic.DayRange{Start: base.AddDays(4), End: base.AddDays(6)},
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.CategorySelf, res.Category)

	// Peer request, a single day inside nurse-2's vacation
	res, err = h.TimeOff.Evaluate(ctx, timeoff.Request{
		WorkerID: "nurse-1", Range: generic.DayRange{Start: base.AddDays(20), End: base.AddDays(20)},
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.CategoryPeer, res.Category)
	assert.Equal(t, "100", res.OverlapPercent.String())
}

func TestScenario_MixedSchedule(t *testing.T) {
	h := setupTestHandler(t)
	ctx := context.Background()
	base := generic.NewDay(2025, 3, 3)
	require.NoError(t, h.loadMixedScheduleScenario(ctx, base))

	in, err := h.TimeOff.DisabledInput(ctx, "tech-1", "")
	require.NoError(t, err)

	set := timeoff.DisabledDates(in)
	want := []generic.Day{base, base.AddDays(1), base.AddDays(5), base.AddDays(6)}
	assert.Equal(t, want, set.Sorted())
}

func TestLoadScenario_Endpoint(t *testing.T) {
	_, router := setupTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "rest-gap"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rest-gap", decodeBody[ScenarioDTO](t, rec).ID)

	rec = do(t, router, http.MethodGet, "/api/scenarios", nil)
	assert.Len(t, decodeBody[[]ScenarioDTO](t, rec), len(scenarios))

	rec = do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/scenarios/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/workers", nil)
	assert.Empty(t, decodeBody[[]WorkerDTO](t, rec))
}

func TestScenarios_DisabledOutsideDevelopment(t *testing.T) {
	// GIVEN: a production handler with data
	h := setupTestHandlerWith(t, Options{Environment: "production"})
	router := NewRouter(h, nil)
	createWorker(t, router, "w1", "guard")

	// WHEN: loading a scenario or resetting
	load := do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "rest-gap"})
	reset := do(t, router, http.MethodPost, "/api/scenarios/reset", nil)

	// THEN: both are refused and the data survives
	assert.Equal(t, http.StatusForbidden, load.Code)
	assert.Equal(t, http.StatusForbidden, reset.Code)
	rec := do(t, router, http.MethodGet, "/api/workers", nil)
	assert.Len(t, decodeBody[[]WorkerDTO](t, rec), 1)
}

func TestScenarios_ConcurrentCalls(t *testing.T) {
	_, router := setupTestRouter(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "rest-gap"})
		}()
		go func() {
			defer wg.Done()
			do(t, router, http.MethodPost, "/api/scenarios/reset", nil)
		}()
		go func() {
			defer wg.Done()
			do(t, router, http.MethodGet, "/api/scenarios/current", nil)
		}()
	}
	wg.Wait()

	rec := do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
