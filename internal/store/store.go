package store

import "github.com/polyenv/polyenv/internal/conic"

// Store defines the interface for run persistence.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if the run doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveRun atomically saves a run. An existing run with the same ID
	// is overwritten. Implementations should use atomic write
	// strategies (temp file + rename) to prevent corruption.
	SaveRun(run *Run) error

	// LoadRun retrieves the run with the given ID.
	// Returns ErrNotFound if no such run exists.
	LoadRun(runID string) (*Run, error)

	// SaveSolution atomically attaches a solver solution to a run.
	// Returns ErrNotFound if the run does not exist.
	SaveSolution(runID string, sol *conic.Solution) error

	// LoadSolution retrieves the solution attached to a run.
	// Returns ErrNotFound if the run or its solution does not exist.
	LoadSolution(runID string) (*conic.Solution, error)

	// ListRuns returns metadata for all stored runs. The returned slice
	// may be empty.
	ListRuns() ([]RunInfo, error)

	// DeleteRun removes the run and any attached solution.
	// Returns ErrNotFound if no such run exists.
	DeleteRun(runID string) error
}

// ErrNotFound is returned when a requested run or solution does not
// exist. Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run or solution.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
