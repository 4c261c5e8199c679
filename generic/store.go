/*
store.go - Record-store contracts for the data-access layer

PURPOSE:

	The engine never fetches data. Callers load records through these
	interfaces and hand plain slices to the decision functions.

KEY INTERFACES:

	WorkerStore:       Worker records (role lookup for the peer rule)
	schedule.Store:    Shift records (schedule/store.go)
	timeoff.Store:     Time-off records (timeoff/types.go)

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: In-memory for testing

SEE ALSO:
  - schedule/service.go, timeoff/request.go: Services that use the stores
*/
package generic

import "context"

// WorkerStore handles persistence of workers.
type WorkerStore interface {
	// SaveWorker inserts or replaces a worker by ID.
	SaveWorker(ctx context.Context, w Worker) error

	// GetWorker returns ErrWorkerNotFound when the ID is unknown.
	GetWorker(ctx context.Context, id WorkerID) (*Worker, error)

	// ListWorkers returns all workers ordered by name.
	ListWorkers(ctx context.Context) ([]Worker, error)
}
