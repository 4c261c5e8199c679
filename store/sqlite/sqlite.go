/*
Package sqlite provides a SQLite-backed implementation of the record stores.

PURPOSE:

	Implements the data-access layer that supplies workers, shifts and
	time-off requests to the scheduling engine. The engine itself never
	touches the database; services load slices from here and hand them over.

INTERFACES IMPLEMENTED:

	generic.WorkerStore: Worker records
	schedule.Store:      Shift records
	timeoff.Store:       Time-off records

STORAGE FORMATS:
  - Instants are stored as RFC3339 in UTC. Converting them to the business
    zone is the engine's job, never the store's.
  - Calendar days are stored as YYYY-MM-DD.

KEY TABLES:

	workers:  Worker records with their role
	shifts:   Job assignments, one row per shift
	time_off: Time-off requests

INDEXES:
  - idx_shifts_worker_start: Per-worker shift loading (hot path)
  - idx_time_off_worker_start: Per-worker time-off loading
  - idx_workers_role: Peer lookup by role

CONCURRENCY:

	Uses sync.RWMutex for thread-safety. An in-memory database is pinned to
	a single connection so every query sees the same data.

USAGE:

	store, err := sqlite.New("./data/shifts.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/shift-engine/generic"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/timeoff"
)

// Store implements all record stores using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ generic.WorkerStore = (*Store)(nil)
	_ schedule.Store      = (*Store)(nil)
	_ timeoff.Store       = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		role TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workers_role
		ON workers(role);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
		job_id TEXT NOT NULL,
		job_number TEXT,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		status TEXT NOT NULL,
		site_name TEXT,
		client_name TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_worker_start
		ON shifts(worker_id, start_time);

	CREATE TABLE IF NOT EXISTS time_off (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL,
		type TEXT NOT NULL,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_time_off_worker_start
		ON time_off(worker_id, start_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// WORKER STORE (generic.WorkerStore interface)
// =============================================================================

// SaveWorker saves a worker.
func (s *Store) SaveWorker(ctx context.Context, w generic.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO workers (id, name, email, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			role = excluded.role
	`

	_, err := s.db.ExecContext(ctx, query,
		string(w.ID), w.Name, nullString(w.Email), nullString(string(w.Role)),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetWorker retrieves a worker by ID.
func (s *Store) GetWorker(ctx context.Context, id generic.WorkerID) (*generic.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var w generic.Worker
	var email, role sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, role FROM workers WHERE id = ?",
		string(id),
	).Scan(&w.ID, &w.Name, &email, &role)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, generic.ErrWorkerNotFound
	}
	if err != nil {
		return nil, err
	}

	w.Email = email.String
	w.Role = generic.Role(role.String)
	return &w, nil
}

// ListWorkers returns all workers.
func (s *Store) ListWorkers(ctx context.Context) ([]generic.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, role FROM workers ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []generic.Worker
	for rows.Next() {
		var w generic.Worker
		var email, role sql.NullString
		if err := rows.Scan(&w.ID, &w.Name, &email, &role); err != nil {
			return nil, err
		}
		w.Email = email.String
		w.Role = generic.Role(role.String)
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// =============================================================================
// SHIFT STORE (schedule.Store interface)
// =============================================================================

const shiftColumns = "id, worker_id, job_id, job_number, start_time, end_time, status, site_name, client_name"

// SaveShift saves a shift.
func (s *Store) SaveShift(ctx context.Context, sh schedule.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO shifts (` + shiftColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			worker_id = excluded.worker_id,
			job_id = excluded.job_id,
			job_number = excluded.job_number,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			status = excluded.status,
			site_name = excluded.site_name,
			client_name = excluded.client_name
	`

	_, err := s.db.ExecContext(ctx, query,
		sh.ID, string(sh.WorkerID), string(sh.JobID), nullString(sh.JobNumber),
		formatInstant(sh.Start), formatInstant(sh.End),
		string(sh.Status), nullString(sh.SiteName), nullString(sh.ClientName),
		time.Now().UTC().Format(time.RFC3339),
	)
	if isForeignKeyError(err) {
		return fmt.Errorf("failed to save shift %s: %w", sh.ID, generic.ErrWorkerNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to save shift %s: %w", sh.ID, err)
	}
	return nil
}

// GetShift retrieves a shift by ID.
func (s *Store) GetShift(ctx context.Context, id string) (*schedule.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts, err := s.queryShifts(ctx, "SELECT "+shiftColumns+" FROM shifts WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, generic.ErrShiftNotFound
	}
	return &shifts[0], nil
}

// ShiftsByWorker returns a worker's shifts ordered by start.
func (s *Store) ShiftsByWorker(ctx context.Context, workerID generic.WorkerID) ([]schedule.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryShifts(ctx,
		"SELECT "+shiftColumns+" FROM shifts WHERE worker_id = ? ORDER BY start_time, id",
		string(workerID),
	)
}

// DeleteShift removes a shift.
func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteByID(ctx, "shifts", id, generic.ErrShiftNotFound)
}

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]schedule.Shift, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []schedule.Shift
	for rows.Next() {
		var sh schedule.Shift
		var jobNumber, siteName, clientName sql.NullString
		var start, end, status string
		if err := rows.Scan(&sh.ID, &sh.WorkerID, &sh.JobID, &jobNumber,
			&start, &end, &status, &siteName, &clientName); err != nil {
			return nil, err
		}
		sh.JobNumber = jobNumber.String
		sh.SiteName = siteName.String
		sh.ClientName = clientName.String
		sh.Status = schedule.ShiftStatus(status)
		// Unparsable instants stay zero; the engine treats them as no conflict.
		sh.Start, _ = time.Parse(time.RFC3339Nano, start)
		sh.End, _ = time.Parse(time.RFC3339Nano, end)
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// =============================================================================
// TIME-OFF STORE (timeoff.Store interface)
// =============================================================================

const timeOffColumns = "t.id, t.worker_id, w.role, t.start_date, t.end_date, t.status, t.type, t.reason"

// SaveTimeOff saves a time-off request.
func (s *Store) SaveTimeOff(ctx context.Context, r timeoff.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO time_off (id, worker_id, start_date, end_date, status, type, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			worker_id = excluded.worker_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			type = excluded.type,
			reason = excluded.reason
	`

	_, err := s.db.ExecContext(ctx, query,
		string(r.ID), string(r.WorkerID),
		r.Range.Start.String(), r.Range.End.String(),
		string(r.Status), string(r.Type), nullString(r.Reason),
		time.Now().UTC().Format(time.RFC3339),
	)
	if isForeignKeyError(err) {
		return fmt.Errorf("failed to save time-off %s: %w", r.ID, generic.ErrWorkerNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to save time-off %s: %w", r.ID, err)
	}
	return nil
}

// GetTimeOff retrieves a time-off request by ID.
func (s *Store) GetTimeOff(ctx context.Context, id generic.RequestID) (*timeoff.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests, err := s.queryTimeOff(ctx,
		"SELECT "+timeOffColumns+" FROM time_off t JOIN workers w ON w.id = t.worker_id WHERE t.id = ?",
		string(id),
	)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, generic.ErrTimeOffNotFound
	}
	return &requests[0], nil
}

// TimeOffByWorker returns a worker's requests ordered by start day.
func (s *Store) TimeOffByWorker(ctx context.Context, workerID generic.WorkerID) ([]timeoff.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTimeOff(ctx,
		"SELECT "+timeOffColumns+" FROM time_off t JOIN workers w ON w.id = t.worker_id WHERE t.worker_id = ? ORDER BY t.start_date, t.id",
		string(workerID),
	)
}

// TimeOffByRole returns every request whose owner currently has role.
func (s *Store) TimeOffByRole(ctx context.Context, role generic.Role) ([]timeoff.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTimeOff(ctx,
		"SELECT "+timeOffColumns+" FROM time_off t JOIN workers w ON w.id = t.worker_id WHERE w.role = ? ORDER BY t.start_date, t.id",
		string(role),
	)
}

// DeleteTimeOff removes a time-off request.
func (s *Store) DeleteTimeOff(ctx context.Context, id generic.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteByID(ctx, "time_off", string(id), generic.ErrTimeOffNotFound)
}

func (s *Store) queryTimeOff(ctx context.Context, query string, args ...any) ([]timeoff.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []timeoff.Request
	for rows.Next() {
		var r timeoff.Request
		var role, reason sql.NullString
		var start, end, status, typ string
		if err := rows.Scan(&r.ID, &r.WorkerID, &role, &start, &end, &status, &typ, &reason); err != nil {
			return nil, err
		}
		r.Role = generic.Role(role.String)
		r.Status = timeoff.RequestStatus(status)
		r.Type = timeoff.Type(typ)
		r.Reason = reason.String
		// An unparsable range stays invalid; the engine skips it.
		r.Range, _ = generic.ParseDayRange(start, end)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"shifts", "time_off", "workers"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) deleteByID(ctx context.Context, table, id string, notFound error) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
