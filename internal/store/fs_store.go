package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/polyenv/polyenv/internal/conic"
)

// FSStore implements the Store interface using filesystem-based
// persistence. Runs are stored under <baseDir>/runs/<runID>/ as
// run.json plus an optional solution.json.
//
// Thread-safety: writes use atomic file operations (temp file + rename)
// and do not require locks.
type FSStore struct {
	baseDir string // Root directory for all run data (e.g., "./data")
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

// runDir returns the directory path for a given run ID.
func (fs *FSStore) runDir(runID string) string {
	return filepath.Join(fs.baseDir, "runs", runID)
}

func (fs *FSStore) runPath(runID string) string {
	return filepath.Join(fs.runDir(runID), "run.json")
}

func (fs *FSStore) solutionPath(runID string) string {
	return filepath.Join(fs.runDir(runID), "solution.json")
}

// RunPath returns the location of a run's JSON file, for reporting to
// users who hand the instance to an external solver.
func (fs *FSStore) RunPath(runID string) string {
	return fs.runPath(runID)
}

// SaveRun atomically saves a run using the temp file + rename pattern.
func (fs *FSStore) SaveRun(run *Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	if err := os.MkdirAll(fs.runDir(run.RunID), 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}
	if err := writeJSONAtomic(fs.runPath(run.RunID), run); err != nil {
		return err
	}

	slog.Debug("Run saved", "runID", run.RunID, "path", fs.runPath(run.RunID))
	return nil
}

// LoadRun retrieves the run with the given ID.
func (fs *FSStore) LoadRun(runID string) (*Run, error) {
	if runID == "" {
		return nil, fmt.Errorf("run ID cannot be empty")
	}

	path := fs.runPath(runID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{RunID: runID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat run file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to deserialize run: %w", err)
	}

	slog.Debug("Run loaded", "runID", runID, "path", path)
	return &run, nil
}

// SaveSolution atomically attaches a solver solution to a run.
func (fs *FSStore) SaveSolution(runID string, sol *conic.Solution) error {
	if runID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}
	if sol == nil {
		return fmt.Errorf("solution cannot be nil")
	}
	if _, err := os.Stat(fs.runPath(runID)); os.IsNotExist(err) {
		return &NotFoundError{RunID: runID}
	} else if err != nil {
		return fmt.Errorf("failed to stat run file: %w", err)
	}

	if err := writeJSONAtomic(fs.solutionPath(runID), sol); err != nil {
		return err
	}

	slog.Debug("Solution saved", "runID", runID, "path", fs.solutionPath(runID))
	return nil
}

// LoadSolution retrieves the solution attached to a run.
func (fs *FSStore) LoadSolution(runID string) (*conic.Solution, error) {
	if runID == "" {
		return nil, fmt.Errorf("run ID cannot be empty")
	}

	path := fs.solutionPath(runID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{RunID: runID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat solution file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read solution file: %w", err)
	}

	var sol conic.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		return nil, fmt.Errorf("failed to deserialize solution: %w", err)
	}
	return &sol, nil
}

// ListRuns returns metadata for all stored runs.
func (fs *FSStore) ListRuns() ([]RunInfo, error) {
	runsDir := filepath.Join(fs.baseDir, "runs")

	if _, err := os.Stat(runsDir); os.IsNotExist(err) {
		// No runs exist yet, return empty slice
		return []RunInfo{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat runs directory: %w", err)
	}

	entries, err := os.ReadDir(runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var infos []RunInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		runID := entry.Name()
		run, err := fs.LoadRun(runID)
		if err != nil {
			slog.Warn("Failed to load run for listing", "runID", runID, "error", err)
			continue // Skip corrupted or incomplete runs
		}

		info := run.ToInfo()
		if _, err := os.Stat(fs.solutionPath(runID)); err == nil {
			info.HasSolution = true
		}
		infos = append(infos, info)
	}

	slog.Debug("Listed runs", "count", len(infos))
	return infos, nil
}

// DeleteRun removes the run directory and all its artifacts.
func (fs *FSStore) DeleteRun(runID string) error {
	if runID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	dir := fs.runDir(runID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{RunID: runID}
	} else if err != nil {
		return fmt.Errorf("failed to stat run directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove run directory: %w", err)
	}

	slog.Debug("Run deleted", "runID", runID, "path", dir)
	return nil
}

// writeJSONAtomic serializes v and writes it to path via a temp file
// and an atomic rename.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", filepath.Base(path), err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
