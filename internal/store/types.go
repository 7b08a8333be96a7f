package store

import (
	"fmt"
	"time"

	"github.com/polyenv/polyenv/internal/envelope"
)

// Run captures everything needed to rebuild an envelope problem exactly:
// the configuration and the polynomials in the order and representation
// they were registered. The vectors are never mutated after saving; a
// loaded run re-registers them to reproduce the same instance.
type Run struct {
	// RunID is the unique identifier assigned when the run is created.
	RunID string `json:"runId"`

	// CreatedAt records when the instance was built.
	CreatedAt time.Time `json:"createdAt"`

	// Config holds the problem configuration, needed to rebuild the
	// problem with identical degree, domain, and input mode.
	Config envelope.Config `json:"config"`

	// Polynomials are the registered bounds exactly as passed to
	// Register, in registration order. Index 0 is the reference
	// polynomial.
	Polynomials [][]float64 `json:"polynomials"`

	// ConstraintRows and ConstraintCols record the shape of the
	// dualized system handed to the solver, for listing and for sanity
	// checks against an imported solution.
	ConstraintRows int `json:"constraintRows"`
	ConstraintCols int `json:"constraintCols"`

	// InversionResidual is the basis-inversion diagnostic observed
	// while registering coefficient-form polynomials. Informational
	// only.
	InversionResidual float64 `json:"inversionResidual,omitempty"`
}

// Validate checks internal consistency before persisting.
func (r *Run) Validate() error {
	if r.RunID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}
	if len(r.Polynomials) == 0 {
		return fmt.Errorf("run has no polynomials")
	}
	u := 2*r.Config.MaxDegree + 1
	for i, poly := range r.Polynomials {
		if len(poly) != u {
			return fmt.Errorf("polynomial %d has %d entries, want %d", i, len(poly), u)
		}
	}
	return nil
}

// ToInfo extracts listing metadata without the polynomial payload.
func (r *Run) ToInfo() RunInfo {
	return RunInfo{
		RunID:       r.RunID,
		CreatedAt:   r.CreatedAt,
		MaxDegree:   r.Config.MaxDegree,
		Polynomials: len(r.Polynomials),
		Weighted:    r.Config.Weighted,
	}
}

// RunInfo contains metadata about a run without the full vectors.
// Used for listing runs efficiently.
type RunInfo struct {
	RunID       string    `json:"runId"`
	CreatedAt   time.Time `json:"createdAt"`
	MaxDegree   int       `json:"maxDegree"`
	Polynomials int       `json:"polynomials"`
	Weighted    bool      `json:"weighted"`

	// HasSolution reports whether a solver solution has been imported
	// for this run.
	HasSolution bool `json:"hasSolution"`
}
