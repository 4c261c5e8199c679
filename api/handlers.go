/*
handlers.go - HTTP API handlers for the scheduling engine

PURPOSE:

	Exposes the conflict engine via REST API. Handles HTTP request/response,
	JSON serialization and validation, loads records from the store and
	delegates every decision to the schedule and timeoff packages.

ENDPOINTS:

	Workers:
	  GET    /api/workers                           List workers
	  POST   /api/workers                           Create worker
	  GET    /api/workers/{id}                      Get worker

	Shifts:
	  GET    /api/workers/{id}/shifts               List shifts
	  POST   /api/workers/{id}/shifts               Assign shift (409 on direct overlap)
	  POST   /api/workers/{id}/shift-check          Conflict summary for a proposed shift
	  POST   /api/workers/{id}/earliest-start       Earliest legal start
	  DELETE /api/shifts/{id}                       Remove shift

	Time-off:
	  GET    /api/workers/{id}/time-off             List requests
	  POST   /api/workers/{id}/time-off             Submit request (409 on overlap)
	  POST   /api/workers/{id}/time-off-check       Overlap policy result
	  GET    /api/workers/{id}/disabled-dates       Unavailable days
	  GET    /api/workers/{id}/disabled-dates/{day} Single-day query
	  DELETE /api/time-off/{id}                     Remove request

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Validation errors, unparsable instants or days
	- 404: Worker, shift or request not found
	- 409: Duplicate worker, refused assignment or time-off
	- 500: Internal errors (logged)

SECURITY NOTE:

	No authentication or authorization. Callers are trusted.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/timeoff"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is every record store the API reads and writes.
type Store interface {
	generic.WorkerStore
	schedule.Store
	timeoff.Store
	Reset(ctx context.Context) error
}

// Options configure a Handler. Zero values fall back to defaults.
type Options struct {
	Zone *time.Location

	// TolerancePercent is the peer overlap limit. Nil means
	// timeoff.DefaultTolerancePercent; an explicit zero forbids any overlap.
	TolerancePercent *decimal.Decimal

	Logger *logrus.Logger

	// Environment gates the demo scenario endpoints, which wipe the
	// store. Empty or "development" enables them.
	Environment string
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       Store
	Assignments *schedule.AssignmentService
	TimeOff     *timeoff.RequestService

	zone             *time.Location
	log              *logrus.Logger
	validate         *validator.Validate
	scenariosEnabled bool

	// Track currently loaded scenario
	scenarioMu      sync.RWMutex
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store Store, opts Options) *Handler {
	zone := opts.Zone
	if zone == nil {
		zone = generic.BusinessZone()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	policy := timeoff.DefaultOverlapPolicy()
	if opts.TolerancePercent != nil {
		policy = timeoff.OverlapPolicy{TolerancePercent: *opts.TolerancePercent}
	}

	return &Handler{
		Store: store,
		Assignments: &schedule.AssignmentService{
			Store:   store,
			Workers: store,
			Zone:    zone,
		},
		TimeOff: &timeoff.RequestService{
			Store:   store,
			Workers: store,
			Shifts:  store,
			Policy:  policy,
			Zone:    zone,
		},
		zone:             zone,
		log:              logger,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		scenariosEnabled: opts.Environment == "" || opts.Environment == "development",
	}
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

// ListWorkers returns all workers.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Store.ListWorkers(r.Context())
	if err != nil {
		h.writeStoreError(w, r, "Failed to list workers", err)
		return
	}

	dtos := make([]WorkerDTO, len(workers))
	for i, wk := range workers {
		dtos[i] = toWorkerDTO(wk)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorker returns a single worker.
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker, err := h.Store.GetWorker(r.Context(), workerIDParam(r))
	if err != nil {
		h.writeStoreError(w, r, "Failed to get worker", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerDTO(*worker))
}

// CreateWorker creates a new worker.
func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	if _, err := h.Store.GetWorker(ctx, generic.WorkerID(req.ID)); err == nil {
		writeError(w, http.StatusConflict, "Worker already exists", generic.ErrDuplicateID)
		return
	} else if !generic.IsNotFound(err) {
		h.writeStoreError(w, r, "Failed to check worker", err)
		return
	}

	worker := generic.Worker{
		ID:    generic.WorkerID(req.ID),
		Name:  req.Name,
		Email: req.Email,
		Role:  generic.Role(req.Role),
	}
	if err := h.Store.SaveWorker(ctx, worker); err != nil {
		h.writeStoreError(w, r, "Failed to create worker", err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkerDTO(worker))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns a worker's shifts.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workerID := workerIDParam(r)
	if _, err := h.Store.GetWorker(ctx, workerID); err != nil {
		h.writeStoreError(w, r, "Failed to get worker", err)
		return
	}

	shifts, err := h.Store.ShiftsByWorker(ctx, workerID)
	if err != nil {
		h.writeStoreError(w, r, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s, h.zone)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CheckShift returns the conflict summary for a proposed shift.
// POST /api/workers/{id}/shift-check
func (h *Handler) CheckShift(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeShift(w, r)
	if !ok {
		return
	}

	summary, err := h.Assignments.Check(r.Context(), candidate)
	if err != nil {
		h.writeStoreError(w, r, "Failed to check shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(summary, h.zone))
}

// AssignShift creates a shift unless it directly overlaps an active one.
// POST /api/workers/{id}/shifts
func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeShift(w, r)
	if !ok {
		return
	}

	shift, summary, err := h.Assignments.Assign(r.Context(), candidate)
	var refused *schedule.AssignmentError
	if errors.As(err, &refused) {
		writeJSON(w, http.StatusConflict, AssignShiftResponse{Summary: toSummaryDTO(refused.Summary, h.zone)})
		return
	}
	if err != nil {
		h.writeStoreError(w, r, "Failed to assign shift", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"worker_id":      shift.WorkerID,
		"shift_id":       shift.ID,
		"gap_violations": len(summary.GapViolations),
	}).Info("shift assigned")

	dto := toShiftDTO(*shift, h.zone)
	writeJSON(w, http.StatusCreated, AssignShiftResponse{Shift: &dto, Summary: toSummaryDTO(summary, h.zone)})
}

// DeleteShift removes a shift.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, r, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EarliestStart suggests the earliest legal start for a new shift.
// POST /api/workers/{id}/earliest-start
func (h *Handler) EarliestStart(w http.ResponseWriter, r *http.Request) {
	var req EarliestStartRequest
	if !h.decode(w, r, &req) {
		return
	}
	proposed, err := generic.ParseInstantIn(req.ProposedStart, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid proposed_start (use RFC3339)", err)
		return
	}

	earliest, err := h.Assignments.EarliestStart(r.Context(), workerIDParam(r), proposed)
	if err != nil {
		h.writeStoreError(w, r, "Failed to compute earliest start", err)
		return
	}

	dto := EarliestStartDTO{ProposedStart: formatInstant(proposed, h.zone)}
	if earliest != nil {
		s := formatInstant(*earliest, h.zone)
		dto.EarliestStart = &s
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) decodeShift(w http.ResponseWriter, r *http.Request) (schedule.Shift, bool) {
	var req ShiftRequest
	if !h.decode(w, r, &req) {
		return schedule.Shift{}, false
	}

	start, err := generic.ParseInstantIn(req.Start, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start (use RFC3339)", err)
		return schedule.Shift{}, false
	}
	end, err := generic.ParseInstantIn(req.End, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end (use RFC3339)", err)
		return schedule.Shift{}, false
	}
	if _, err := generic.NewSpan(start, end); err != nil {
		writeError(w, http.StatusBadRequest, "Shift must end after it starts", err)
		return schedule.Shift{}, false
	}

	return schedule.Shift{
		ID:         req.ID,
		WorkerID:   workerIDParam(r),
		JobID:      generic.JobID(req.JobID),
		JobNumber:  req.JobNumber,
		Start:      start,
		End:        end,
		Status:     schedule.ShiftStatus(req.Status),
		SiteName:   req.SiteName,
		ClientName: req.ClientName,
	}, true
}

// =============================================================================
// TIME-OFF HANDLERS
// =============================================================================

// ListTimeOff returns a worker's time-off requests.
func (h *Handler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workerID := workerIDParam(r)
	if _, err := h.Store.GetWorker(ctx, workerID); err != nil {
		h.writeStoreError(w, r, "Failed to get worker", err)
		return
	}

	requests, err := h.Store.TimeOffByWorker(ctx, workerID)
	if err != nil {
		h.writeStoreError(w, r, "Failed to list time-off", err)
		return
	}

	dtos := make([]TimeOffDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toTimeOffDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CheckTimeOff returns the overlap policy result for a request.
// POST /api/workers/{id}/time-off-check
func (h *Handler) CheckTimeOff(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeTimeOff(w, r)
	if !ok {
		return
	}

	res, err := h.TimeOff.Evaluate(r.Context(), candidate)
	if err != nil {
		h.writeStoreError(w, r, "Failed to check time-off", err)
		return
	}
	writeJSON(w, http.StatusOK, toOverlapResultDTO(res))
}

// SubmitTimeOff stores a request unless the overlap policy refuses it.
// POST /api/workers/{id}/time-off
func (h *Handler) SubmitTimeOff(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeTimeOff(w, r)
	if !ok {
		return
	}

	req, res, err := h.TimeOff.Submit(r.Context(), candidate)
	var refused *timeoff.OverlapError
	if errors.As(err, &refused) {
		writeJSON(w, http.StatusConflict, SubmitTimeOffResponse{Result: toOverlapResultDTO(refused.Result)})
		return
	}
	if err != nil {
		h.writeStoreError(w, r, "Failed to submit time-off", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"worker_id":  req.WorkerID,
		"request_id": req.ID,
		"range":      req.Range.String(),
	}).Info("time-off submitted")

	dto := toTimeOffDTO(*req)
	writeJSON(w, http.StatusCreated, SubmitTimeOffResponse{Request: &dto, Result: toOverlapResultDTO(res)})
}

// DeleteTimeOff removes a time-off request.
func (h *Handler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTimeOff(r.Context(), generic.RequestID(chi.URLParam(r, "id"))); err != nil {
		h.writeStoreError(w, r, "Failed to delete time-off", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DisabledDates lists the days a worker is unavailable.
// GET /api/workers/{id}/disabled-dates?exclude={request_id}
func (h *Handler) DisabledDates(w http.ResponseWriter, r *http.Request) {
	workerID := workerIDParam(r)
	in, err := h.TimeOff.DisabledInput(r.Context(), workerID, generic.RequestID(r.URL.Query().Get("exclude")))
	if err != nil {
		h.writeStoreError(w, r, "Failed to load availability", err)
		return
	}

	sorted := timeoff.DisabledDates(in).Sorted()
	days := make([]string, len(sorted))
	for i, d := range sorted {
		days[i] = d.String()
	}
	writeJSON(w, http.StatusOK, DisabledDatesDTO{WorkerID: string(workerID), Days: days})
}

// IsDateDisabled answers whether one day is unavailable.
// GET /api/workers/{id}/disabled-dates/{day}?exclude={request_id}
func (h *Handler) IsDateDisabled(w http.ResponseWriter, r *http.Request) {
	day, err := generic.ParseDayIn(chi.URLParam(r, "day"), h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day (use YYYY-MM-DD)", err)
		return
	}

	in, err := h.TimeOff.DisabledInput(r.Context(), workerIDParam(r), generic.RequestID(r.URL.Query().Get("exclude")))
	if err != nil {
		h.writeStoreError(w, r, "Failed to load availability", err)
		return
	}
	writeJSON(w, http.StatusOK, DayStatusDTO{Day: day.String(), Disabled: timeoff.IsDateDisabled(day, in)})
}

func (h *Handler) decodeTimeOff(w http.ResponseWriter, r *http.Request) (timeoff.Request, bool) {
	var req TimeOffRequest
	if !h.decode(w, r, &req) {
		return timeoff.Request{}, false
	}

	start, err := generic.ParseDayIn(req.StartDate, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return timeoff.Request{}, false
	}
	end, err := generic.ParseDayIn(req.EndDate, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return timeoff.Request{}, false
	}
	dayRange, err := generic.NewDayRange(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end_date must not be before start_date", err)
		return timeoff.Request{}, false
	}

	return timeoff.Request{
		ID:       generic.RequestID(req.ID),
		WorkerID: workerIDParam(r),
		Range:    dayRange,
		Status:   timeoff.RequestStatus(req.Status),
		Type:     timeoff.Type(req.Type),
		Reason:   req.Reason,
	}, true
}

// =============================================================================
// HELPERS
// =============================================================================

func workerIDParam(r *http.Request) generic.WorkerID {
	return generic.WorkerID(chi.URLParam(r, "id"))
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// writeStoreError maps engine and store errors onto HTTP statuses.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case generic.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		}).WithError(err).Error(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
