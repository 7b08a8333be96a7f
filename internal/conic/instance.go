package conic

// Status indicates the outcome reported by an external solver.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusIterationLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusIterationLimit:
		return "iteration-limit"
	default:
		return "unknown"
	}
}

// Instance pairs the dualized constraint system with its composite
// barrier. It is the unit handed to an external interior-point solver;
// the barrier's factor order must match the U-sized variable blocks of
// the constraints exactly.
type Instance struct {
	Constraints *Constraints
	Barrier     Barrier
}

// Solution carries the vectors an interior-point solver returns for an
// Instance. X is the primal iterate and S the slack vector, both in the
// instance's block layout; the envelope projector consumes the first
// U-sized block of S.
type Solution struct {
	Status Status    `json:"status"`
	X      []float64 `json:"x"`
	S      []float64 `json:"s"`
}

// IsOptimal reports whether the solver certified optimality.
func (s *Solution) IsOptimal() bool { return s.Status == StatusOptimal }

// Solver is implemented by external interior-point methods that consume
// instances produced here.
type Solver interface {
	Solve(instance *Instance) (*Solution, error)
}
