// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/timeoff"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements generic.WorkerStore, schedule.Store and timeoff.Store.
type Memory struct {
	mu      sync.RWMutex
	workers map[generic.WorkerID]generic.Worker
	shifts  map[string]schedule.Shift
	timeOff map[generic.RequestID]timeoff.Request
}

var (
	_ generic.WorkerStore = (*Memory)(nil)
	_ schedule.Store      = (*Memory)(nil)
	_ timeoff.Store       = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		workers: make(map[generic.WorkerID]generic.Worker),
		shifts:  make(map[string]schedule.Shift),
		timeOff: make(map[generic.RequestID]timeoff.Request),
	}
}

// =============================================================================
// WORKERS
// =============================================================================

func (m *Memory) SaveWorker(_ context.Context, w generic.Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers[w.ID] = w
	return nil
}

func (m *Memory) GetWorker(_ context.Context, id generic.WorkerID) (*generic.Worker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.workers[id]
	if !ok {
		return nil, generic.ErrWorkerNotFound
	}
	return &w, nil
}

func (m *Memory) ListWorkers(_ context.Context) ([]generic.Worker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]generic.Worker, 0, len(m.workers))
	for _, w := range m.workers {
		result = append(result, w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

func (m *Memory) SaveShift(_ context.Context, s schedule.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

func (m *Memory) GetShift(_ context.Context, id string) (*schedule.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shifts[id]
	if !ok {
		return nil, generic.ErrShiftNotFound
	}
	return &s, nil
}

func (m *Memory) ShiftsByWorker(_ context.Context, workerID generic.WorkerID) ([]schedule.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []schedule.Shift
	for _, s := range m.shifts {
		if s.WorkerID == workerID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	return result, nil
}

func (m *Memory) DeleteShift(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[id]; !ok {
		return generic.ErrShiftNotFound
	}
	delete(m.shifts, id)
	return nil
}

// =============================================================================
// TIME-OFF
// =============================================================================

func (m *Memory) SaveTimeOff(_ context.Context, r timeoff.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeOff[r.ID] = r
	return nil
}

func (m *Memory) GetTimeOff(_ context.Context, id generic.RequestID) (*timeoff.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.timeOff[id]
	if !ok {
		return nil, generic.ErrTimeOffNotFound
	}
	return &r, nil
}

func (m *Memory) TimeOffByWorker(_ context.Context, workerID generic.WorkerID) ([]timeoff.Request, error) {
	return m.filterTimeOff(func(r timeoff.Request) bool { return r.WorkerID == workerID }), nil
}

// TimeOffByRole matches on the owning worker's current role.
func (m *Memory) TimeOffByRole(_ context.Context, role generic.Role) ([]timeoff.Request, error) {
	m.mu.RLock()
	workers := make(map[generic.WorkerID]generic.Role, len(m.workers))
	for id, w := range m.workers {
		workers[id] = w.Role
	}
	m.mu.RUnlock()

	return m.filterTimeOff(func(r timeoff.Request) bool { return workers[r.WorkerID] == role }), nil
}

func (m *Memory) DeleteTimeOff(_ context.Context, id generic.RequestID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.timeOff[id]; !ok {
		return generic.ErrTimeOffNotFound
	}
	delete(m.timeOff, id)
	return nil
}

func (m *Memory) filterTimeOff(keep func(timeoff.Request) bool) []timeoff.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []timeoff.Request
	for _, r := range m.timeOff {
		if keep(r) {
			r.Role = m.workers[r.WorkerID].Role
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Range.Start.Equal(result[j].Range.Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Range.Start.Before(result[j].Range.Start)
	})
	return result
}

// Reset clears all records.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers = make(map[generic.WorkerID]generic.Worker)
	m.shifts = make(map[string]schedule.Shift)
	m.timeOff = make(map[generic.RequestID]timeoff.Request)
	return nil
}
