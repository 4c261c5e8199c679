/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with workers,
	shifts and time-off requests exercising each rule of the engine.

AVAILABLE SCENARIOS:

	rest-gap:         Shifts with a direct overlap, a short gap and an exact 8h gap
	time-off-overlap: Own and same-role peer time-off requests
	mixed-schedule:   Time-off plus shifts, for disabled dates

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create workers
 3. Create shifts and time-off anchored one week from today

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "rest-gap"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shift and time-off endpoints the scenarios feed
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/timeoff"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "rest-gap",
		Name:        "Rest Gap",
		Description: "One guard with a 09:00-17:00 shift, plus a rejected shift that never blocks",
		Category:    "shifts",
	},
	{
		ID:          "time-off-overlap",
		Name:        "Time-Off Overlap",
		Description: "Two nurses with long vacations to test own and peer overlap",
		Category:    "timeoff",
	},
	{
		ID:          "mixed-schedule",
		Name:        "Mixed Schedule",
		Description: "Shifts across midnight plus approved and rejected time-off",
		Category:    "availability",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	current := h.scenario()
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads a scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	if !h.scenariosEnabled {
		writeError(w, http.StatusForbidden, "Scenarios are only available in development", nil)
		return
	}

	var req LoadScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		h.writeStoreError(w, r, "Failed to reset database", err)
		return
	}

	base := generic.Today().AddDays(7)
	var err error
	switch req.ScenarioID {
	case "rest-gap":
		err = h.loadRestGapScenario(ctx, base)
	case "time-off-overlap":
		err = h.loadTimeOffOverlapScenario(ctx, base)
	case "mixed-schedule":
		err = h.loadMixedScheduleScenario(ctx, base)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", fmt.Errorf("scenario %q", req.ScenarioID))
		return
	}
	if err != nil {
		h.writeStoreError(w, r, "Failed to load scenario", err)
		return
	}

	h.setScenario(req.ScenarioID)
	h.log.WithField("scenario", req.ScenarioID).Info("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if !h.scenariosEnabled {
		writeError(w, http.StatusForbidden, "Reset is only available in development", nil)
		return
	}
	if err := h.Store.Reset(r.Context()); err != nil {
		h.writeStoreError(w, r, "Failed to reset database", err)
		return
	}
	h.setScenario("")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) scenario() string {
	h.scenarioMu.RLock()
	defer h.scenarioMu.RUnlock()
	return h.currentScenario
}

func (h *Handler) setScenario(id string) {
	h.scenarioMu.Lock()
	defer h.scenarioMu.Unlock()
	h.currentScenario = id
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// at returns hour:00 on day in the handler's zone.
func (h *Handler) at(day generic.Day, hour int) time.Time {
	return day.StartIn(h.zone).Add(time.Duration(hour) * time.Hour)
}

func (h *Handler) loadRestGapScenario(ctx context.Context, base generic.Day) error {
	worker := generic.Worker{ID: "guard-1", Name: "Alex Guard", Email: "alex@example.com", Role: "guard"}
	if err := h.Store.SaveWorker(ctx, worker); err != nil {
		return err
	}

	shifts := []schedule.Shift{
		{
			ID: "shift-day", WorkerID: worker.ID, JobID: "job-100", JobNumber: "100",
			Start: h.at(base, 9), End: h.at(base, 17),
			Status: schedule.StatusAccepted, SiteName: "Harbor Tower", ClientName: "Acme",
		},
		{
			ID: "shift-rejected", WorkerID: worker.ID, JobID: "job-101", JobNumber: "101",
			Start: h.at(base.AddDays(1), 9), End: h.at(base.AddDays(1), 17),
			Status: schedule.StatusRejected, SiteName: "Harbor Tower",
		},
	}
	for _, s := range shifts {
		if err := h.Store.SaveShift(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadTimeOffOverlapScenario(ctx context.Context, base generic.Day) error {
	workers := []generic.Worker{
		{ID: "nurse-1", Name: "Blair Nurse", Role: "nurse"},
		{ID: "nurse-2", Name: "Casey Nurse", Role: "nurse"},
		{ID: "porter-1", Name: "Drew Porter", Role: "porter"},
	}
	for _, w := range workers {
		if err := h.Store.SaveWorker(ctx, w); err != nil {
			return err
		}
	}

	requests := []timeoff.Request{
		{ID: "to-own", WorkerID: "nurse-1", Range: generic.DayRange{Start: base, End: base.AddDays(4)},
			Status: timeoff.StatusApproved, Type: timeoff.TypeVacation},
		{ID: "to-peer", WorkerID: "nurse-2", Range: generic.DayRange{Start: base.AddDays(10), End: base.AddDays(29)},
			Status: timeoff.StatusApproved, Type: timeoff.TypeVacation},
		{ID: "to-other-role", WorkerID: "porter-1", Range: generic.DayRange{Start: base, End: base.AddDays(29)},
			Status: timeoff.StatusPending, Type: timeoff.TypePersonal},
	}
	for _, r := range requests {
		if err := h.Store.SaveTimeOff(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadMixedScheduleScenario(ctx context.Context, base generic.Day) error {
	worker := generic.Worker{ID: "tech-1", Name: "Emery Tech", Role: "technician"}
	if err := h.Store.SaveWorker(ctx, worker); err != nil {
		return err
	}

	shifts := []schedule.Shift{
		{ID: "night", WorkerID: worker.ID, JobID: "job-200", JobNumber: "200",
			Start: h.at(base, 22), End: h.at(base.AddDays(1), 6), Status: schedule.StatusPending},
		{ID: "cancelled", WorkerID: worker.ID, JobID: "job-201", JobNumber: "201",
			Start: h.at(base.AddDays(3), 9), End: h.at(base.AddDays(3), 17), Status: schedule.StatusCancelled},
	}
	for _, s := range shifts {
		if err := h.Store.SaveShift(ctx, s); err != nil {
			return err
		}
	}

	requests := []timeoff.Request{
		{ID: "leave", WorkerID: worker.ID, Range: generic.DayRange{Start: base.AddDays(5), End: base.AddDays(6)},
			Status: timeoff.StatusApproved, Type: timeoff.TypeVacation},
		{ID: "denied", WorkerID: worker.ID, Range: generic.DayRange{Start: base.AddDays(8), End: base.AddDays(9)},
			Status: timeoff.StatusRejected, Type: timeoff.TypeVacation},
	}
	for _, r := range requests {
		if err := h.Store.SaveTimeOff(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
