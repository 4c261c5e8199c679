/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. These types decouple
	the engine's value types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:

	Worker:
	  WorkerDTO, CreateWorkerRequest

	Shift:
	  ShiftDTO, ShiftRequest, ConflictDTO, SummaryDTO, AssignShiftResponse

	Time-off:
	  TimeOffDTO, TimeOffRequest, OverlapResultDTO, SubmitTimeOffResponse

	Availability:
	  DisabledDatesDTO, DayStatusDTO, EarliestStartRequest, EarliestStartDTO

	Scenarios:
	  ScenarioDTO, LoadScenarioRequest

FORMATS:

	Instants are RFC3339 rendered in the business zone. Days are YYYY-MM-DD.

VALIDATION:

	Request types carry go-playground/validator tags, checked in handlers
	before any parsing.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/timeoff"
)

// =============================================================================
// WORKERS
// =============================================================================

// WorkerDTO represents a worker in API responses.
type WorkerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// CreateWorkerRequest is the request to create a worker.
type CreateWorkerRequest struct {
	ID    string `json:"id" validate:"required,max=64"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,max=64"`
}

func toWorkerDTO(w generic.Worker) WorkerDTO {
	return WorkerDTO{ID: string(w.ID), Name: w.Name, Email: w.Email, Role: string(w.Role)}
}

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftDTO represents a shift in API responses.
type ShiftDTO struct {
	ID         string `json:"id"`
	WorkerID   string `json:"worker_id"`
	JobID      string `json:"job_id"`
	JobNumber  string `json:"job_number,omitempty"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
	SiteName   string `json:"site_name,omitempty"`
	ClientName string `json:"client_name,omitempty"`
}

// ShiftRequest proposes or creates a shift for the worker in the path.
type ShiftRequest struct {
	ID         string `json:"id"`
	JobID      string `json:"job_id"`
	JobNumber  string `json:"job_number"`
	Start      string `json:"start" validate:"required"`
	End        string `json:"end" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=draft pending accepted approved rejected completed cancelled"`
	SiteName   string `json:"site_name"`
	ClientName string `json:"client_name"`
}

// ConflictDTO is one conflicting existing shift.
type ConflictDTO struct {
	Kind        string   `json:"kind"`
	GapHours    float64  `json:"gap_hours"`
	Resolvable  bool     `json:"resolvable"`
	RequiredEnd *string  `json:"required_end,omitempty"`
	Subject     ShiftDTO `json:"subject"`
	Message     string   `json:"message"`
}

// SummaryDTO is the conflict summary for a proposed shift.
type SummaryDTO struct {
	HasConflicts   bool          `json:"has_conflicts"`
	DirectOverlaps []ConflictDTO `json:"direct_overlaps"`
	GapViolations  []ConflictDTO `json:"gap_violations"`
	CanAssign      bool          `json:"can_assign"`
	Warnings       []string      `json:"warnings"`
}

// AssignShiftResponse is returned by shift creation, accepted or refused.
type AssignShiftResponse struct {
	Shift   *ShiftDTO  `json:"shift"`
	Summary SummaryDTO `json:"summary"`
}

func formatInstant(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(time.RFC3339)
}

func toShiftDTO(s schedule.Shift, loc *time.Location) ShiftDTO {
	return ShiftDTO{
		ID:         s.ID,
		WorkerID:   string(s.WorkerID),
		JobID:      string(s.JobID),
		JobNumber:  s.JobNumber,
		Start:      formatInstant(s.Start, loc),
		End:        formatInstant(s.End, loc),
		Status:     string(s.Status),
		SiteName:   s.SiteName,
		ClientName: s.ClientName,
	}
}

func toConflictDTOs(conflicts []schedule.Conflict, loc *time.Location) []ConflictDTO {
	dtos := make([]ConflictDTO, 0, len(conflicts))
	for _, c := range conflicts {
		dto := ConflictDTO{
			Kind:       string(c.Kind),
			GapHours:   c.GapHours.InexactFloat64(),
			Resolvable: c.Resolvable,
			Subject:    toShiftDTO(c.Subject, loc),
			Message:    c.Message,
		}
		if c.RequiredEnd != nil {
			s := formatInstant(*c.RequiredEnd, loc)
			dto.RequiredEnd = &s
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func toSummaryDTO(s schedule.Summary, loc *time.Location) SummaryDTO {
	warnings := s.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return SummaryDTO{
		HasConflicts:   s.HasConflicts,
		DirectOverlaps: toConflictDTOs(s.DirectOverlaps, loc),
		GapViolations:  toConflictDTOs(s.GapViolations, loc),
		CanAssign:      s.CanAssign,
		Warnings:       warnings,
	}
}

// =============================================================================
// TIME-OFF
// =============================================================================

// TimeOffDTO represents a time-off request in API responses.
type TimeOffDTO struct {
	ID        string `json:"id"`
	WorkerID  string `json:"worker_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	Reason    string `json:"reason,omitempty"`
}

// TimeOffRequest submits or checks a time-off request. ID is set when an
// existing request is being edited.
type TimeOffRequest struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=pending approved rejected cancelled"`
	Type      string `json:"type" validate:"omitempty,oneof=vacation sick personal unpaid other"`
	Reason    string `json:"reason" validate:"max=500"`
}

// OverlapResultDTO is the overlap policy outcome for a time-off request.
type OverlapResultDTO struct {
	Conflict       bool        `json:"conflict"`
	Category       string      `json:"category,omitempty"`
	OverlapDays    int         `json:"overlap_days,omitempty"`
	OverlapPercent *float64    `json:"overlap_percent,omitempty"`
	Message        string      `json:"message,omitempty"`
	With           *TimeOffDTO `json:"with,omitempty"`
}

// SubmitTimeOffResponse is returned by time-off submission, accepted or refused.
type SubmitTimeOffResponse struct {
	Request *TimeOffDTO      `json:"request"`
	Result  OverlapResultDTO `json:"result"`
}

func toTimeOffDTO(r timeoff.Request) TimeOffDTO {
	return TimeOffDTO{
		ID:        string(r.ID),
		WorkerID:  string(r.WorkerID),
		StartDate: r.Range.Start.String(),
		EndDate:   r.Range.End.String(),
		Status:    string(r.Status),
		Type:      string(r.Type),
		Reason:    r.Reason,
	}
}

func toOverlapResultDTO(res timeoff.Result) OverlapResultDTO {
	dto := OverlapResultDTO{
		Conflict:    res.Conflict,
		Category:    string(res.Category),
		OverlapDays: res.OverlapDays,
		Message:     res.Message,
	}
	if res.Category == timeoff.CategoryPeer {
		p := res.OverlapPercent.InexactFloat64()
		dto.OverlapPercent = &p
	}
	if res.With != nil {
		with := toTimeOffDTO(*res.With)
		dto.With = &with
	}
	return dto
}

// =============================================================================
// AVAILABILITY
// =============================================================================

// DisabledDatesDTO lists the days a worker cannot be scheduled.
type DisabledDatesDTO struct {
	WorkerID string   `json:"worker_id"`
	Days     []string `json:"days"`
}

// DayStatusDTO answers a single-day availability query.
type DayStatusDTO struct {
	Day      string `json:"day"`
	Disabled bool   `json:"disabled"`
}

// EarliestStartRequest asks for the earliest legal start of a new shift.
type EarliestStartRequest struct {
	ProposedStart string `json:"proposed_start" validate:"required"`
}

// EarliestStartDTO is nil when the proposed start needs no adjustment.
type EarliestStartDTO struct {
	ProposedStart string  `json:"proposed_start"`
	EarliestStart *string `json:"earliest_start"`
}

// =============================================================================
// SCENARIOS & ERRORS
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest is the request to load a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
