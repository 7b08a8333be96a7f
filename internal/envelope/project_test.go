package envelope

import (
	"errors"
	"math"
	"testing"

	"github.com/polyenv/polyenv/internal/conic"
)

func TestProjectInterpolant(t *testing.T) {
	cfg := univariate(1, -1, 1)
	cfg.InterpolantInput = true
	p, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	ref := []float64{1, 2, 3}
	if err := p.Register(ref); err != nil {
		t.Fatal(err)
	}

	sol := &conic.Solution{S: []float64{0.5, -1, 2, 99, 99, 99}}
	env, err := p.ProjectInterpolant(sol)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{0.5, 3, 1}
	for i := range want {
		if env[i] != want[i] {
			t.Errorf("envelope[%d] = %v, want %v", i, env[i], want[i])
		}
	}
}

func TestProjectErrors(t *testing.T) {
	cfg := univariate(1, -1, 1)
	cfg.InterpolantInput = true
	p, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Project(&conic.Solution{S: []float64{1, 2, 3}}); !errors.Is(err, ErrEmptyInstance) {
		t.Fatalf("empty registry: error = %v, want ErrEmptyInstance", err)
	}

	if err := p.Register(p.ZeroPolynomial()); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Project(&conic.Solution{S: []float64{1}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("short slack: error = %v, want ErrDimensionMismatch", err)
	}
	if _, err := p.Project(nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("nil solution: error = %v, want ErrDimensionMismatch", err)
	}
}

// TestProjectBranchConsistency checks that the coefficient-mode
// projection (mapped through the basis matrix) agrees with the
// interpolant-mode projection at the nodes. The original collaborator
// discarded the mapped value; this pins the fixed behavior.
func TestProjectBranchConsistency(t *testing.T) {
	p, err := New(univariate(2, -1, 1), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Reference polynomial x^3 - x in coefficient form, padded to U=5.
	if err := p.Register([]float64{0, -1, 0, 1, 0}); err != nil {
		t.Fatal(err)
	}

	sol := &conic.Solution{S: []float64{0.25, -0.5, 1, 0.75, -0.125}}

	nodalEnv, err := p.ProjectInterpolant(sol)
	if err != nil {
		t.Fatal(err)
	}
	coeffEnv, err := p.Project(sol)
	if err != nil {
		t.Fatal(err)
	}
	if len(coeffEnv) != p.Dimension() {
		t.Fatalf("projected coefficients length = %d, want %d", len(coeffEnv), p.Dimension())
	}

	// Evaluating the coefficient form at the interpolation nodes must
	// reproduce the interpolant coordinates.
	xs := nodalNodes(p)
	ys, err := curveFromCoefficients(coeffEnv, xs)
	if err != nil {
		t.Fatal(err)
	}
	for i := range xs {
		if math.Abs(ys[i]-nodalEnv[i]) > 1e-8 {
			t.Errorf("node %d: coefficient branch %v, interpolant branch %v", i, ys[i], nodalEnv[i])
		}
	}
}

func TestCurve(t *testing.T) {
	cfg := univariate(1, -1, 1)
	cfg.InterpolantInput = true
	p, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Values of x^2 - 1 at the nodes 1, 0, -1.
	v := []float64{0, -1, 0}
	xs := []float64{-1, -0.5, 0, 0.5, 1}
	ys, err := p.Curve(v, xs)
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range xs {
		if want := x*x - 1; math.Abs(ys[i]-want) > 1e-10 {
			t.Errorf("curve(%v) = %v, want %v", x, ys[i], want)
		}
	}

	if _, err := p.Curve([]float64{1}, xs); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("short vector: error = %v, want ErrDimensionMismatch", err)
	}
}

// nodalNodes rebuilds the node set the problem's basis uses.
func nodalNodes(p *Problem) []float64 {
	u := p.Dimension()
	nodes := make([]float64, u)
	for j := 0; j < u; j++ {
		nodes[j] = math.Cos(float64(j) * math.Pi / float64(u-1))
	}
	return nodes
}

// curveFromCoefficients evaluates an ascending coefficient vector.
func curveFromCoefficients(coeffs, xs []float64) ([]float64, error) {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		acc := 0.0
		for j := len(coeffs) - 1; j >= 0; j-- {
			acc = acc*x + coeffs[j]
		}
		ys[i] = acc
	}
	return ys, nil
}
