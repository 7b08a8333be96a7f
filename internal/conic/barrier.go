package conic

// Barrier is one node of the composite self-concordant barrier tree.
// The tree is a tagged variant of three shapes: a Product of
// per-variable-block factors, each factor a Sum of one or more SOS
// cones. Ownership is strictly hierarchical; parents own their children
// and no node is shared.
type Barrier interface {
	barrierNode()
}

// SOSCone is the barrier of the dual sum-of-squares cone of the given
// degree. A non-nil Weight restricts nonnegativity to the region where
// the weight polynomial (ascending coefficients) is nonnegative.
type SOSCone struct {
	Degree int
	Weight []float64
}

// Sum composes barriers acting on the same variable block.
type Sum struct {
	Terms []Barrier
}

// Product composes barriers across independent variable blocks; the
// feasible set is the Cartesian product of the factors' cones.
type Product struct {
	Factors []Barrier
}

func (*SOSCone) barrierNode() {}
func (*Sum) barrierNode()     {}
func (*Product) barrierNode() {}
