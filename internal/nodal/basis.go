package nodal

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ChebyshevExtrema returns the u extrema of the degree u-1 Chebyshev
// polynomial on [-1, 1], ordered from +1 down to -1.
func ChebyshevExtrema(u int) []float64 {
	if u == 1 {
		return []float64{0}
	}
	nodes := make([]float64, u)
	for j := 0; j < u; j++ {
		nodes[j] = math.Cos(float64(j) * math.Pi / float64(u-1))
	}
	return nodes
}

// Basis is the Lagrange interpolation basis over the Chebyshev extremal
// nodes for a fixed maximum degree d. It holds the coefficient vector of
// each of the U = 2d+1 basis polynomials together with the U x U matrix
// whose column j carries basis polynomial j, mapping interpolant
// coordinates (values at the nodes) to monomial coefficients.
//
// Construction costs O(U^2) per basis element, O(U^3) total, and the
// Vandermonde-like structure loses accuracy as U grows. That ceiling is
// inherent to the scheme; callers observe it through the transform
// residual rather than through any mitigation here.
type Basis struct {
	degree int
	u      int
	nodes  []float64
	polys  [][]float64
	q      *mat.Dense
}

// NewBasis constructs the full basis for max degree d >= 1. Every basis
// element starts from the constant polynomial 1 at its node and
// accumulates the linear factors (x - node_j) for all other nodes,
// normalized by the product of node differences.
func NewBasis(degree int, logger *slog.Logger) *Basis {
	if degree < 1 {
		panic("nodal: degree must be at least 1")
	}
	if logger == nil {
		logger = slog.Default()
	}

	u := 2*degree + 1
	b := &Basis{
		degree: degree,
		u:      u,
		nodes:  ChebyshevExtrema(u),
		polys:  make([][]float64, u),
	}

	logger.Info("Constructing interpolation basis", "degree", degree, "size", u)
	start := time.Now()

	aux := make([]float64, u)
	for i := 0; i < u; i++ {
		logger.Debug("Constructing basis element", "index", i)
		poly := make([]float64, u)
		poly[0] = 1
		denom := 1.0
		for j := 0; j < u; j++ {
			if i == j {
				continue
			}
			denom *= b.nodes[i] - b.nodes[j]
			// Multiply by (x - node_j): shift the coefficients up one
			// degree and add -node_j times the current polynomial.
			for k := 0; k < u; k++ {
				aux[k] = -b.nodes[j] * poly[k]
			}
			for k := u - 1; k > 0; k-- {
				poly[k] = poly[k-1] + aux[k]
			}
			poly[0] = aux[0]
		}
		for k := range poly {
			poly[k] /= denom
		}
		b.polys[i] = poly
	}

	q := mat.NewDense(u, u, nil)
	for j := 0; j < u; j++ {
		q.SetCol(j, b.polys[j])
	}
	b.q = q

	logger.Info("Finished basis construction", "elapsed", time.Since(start))
	return b
}

// Degree returns the max degree d the basis was built for.
func (b *Basis) Degree() int { return b.degree }

// Size returns the working dimension U = 2d+1.
func (b *Basis) Size() int { return b.u }

// Nodes returns a copy of the interpolation nodes.
func (b *Basis) Nodes() []float64 {
	nodes := make([]float64, b.u)
	copy(nodes, b.nodes)
	return nodes
}

// Coefficients returns a copy of the coefficient vector of basis
// polynomial i, the unique degree <= U-1 polynomial that is 1 at node i
// and 0 at every other node.
func (b *Basis) Coefficients(i int) []float64 {
	coeffs := make([]float64, b.u)
	copy(coeffs, b.polys[i])
	return coeffs
}

// TransformationMatrix returns the U x U basis matrix Q. The matrix is
// shared, not copied; callers must not modify it.
func (b *Basis) TransformationMatrix() *mat.Dense { return b.q }
