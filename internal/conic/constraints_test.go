package conic

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDualSystemShape(t *testing.T) {
	c := &Constraints{
		A: mat.NewDense(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		}),
		B: mat.NewVecDense(2, []float64{7, 8}),
		C: mat.NewVecDense(3, []float64{9, 10, 11}),
	}

	dual := c.DualSystem()

	rows, cols := dual.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("dual A shape = (%d, %d), want (3, 2)", rows, cols)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if got, want := dual.A.At(j, i), c.A.At(i, j); got != want {
				t.Errorf("dual A(%d,%d) = %v, want %v", j, i, got, want)
			}
		}
	}

	if got := dual.B.Len(); got != 3 {
		t.Fatalf("dual B length = %d, want 3", got)
	}
	for i := 0; i < 3; i++ {
		if dual.B.AtVec(i) != c.C.AtVec(i) {
			t.Errorf("dual B(%d) = %v, want %v", i, dual.B.AtVec(i), c.C.AtVec(i))
		}
	}
	for i := 0; i < 2; i++ {
		if dual.C.AtVec(i) != c.B.AtVec(i) {
			t.Errorf("dual C(%d) = %v, want %v", i, dual.C.AtVec(i), c.B.AtVec(i))
		}
	}
}

func TestDualSystemCopies(t *testing.T) {
	c := &Constraints{
		A: mat.NewDense(1, 1, []float64{1}),
		B: mat.NewVecDense(1, []float64{2}),
		C: mat.NewVecDense(1, []float64{3}),
	}
	dual := c.DualSystem()

	c.A.Set(0, 0, -1)
	c.B.SetVec(0, -2)
	c.C.SetVec(0, -3)

	if dual.A.At(0, 0) != 1 || dual.B.AtVec(0) != 3 || dual.C.AtVec(0) != 2 {
		t.Error("dual system aliases the primal storage")
	}
}

func TestBarrierTreeShape(t *testing.T) {
	tree := &Product{Factors: []Barrier{
		&Sum{Terms: []Barrier{
			&SOSCone{Degree: 2},
			&SOSCone{Degree: 2, Weight: []float64{1, 0, -1}},
		}},
		&Sum{Terms: []Barrier{
			&SOSCone{Degree: 2},
		}},
	}}

	if len(tree.Factors) != 2 {
		t.Fatalf("factors = %d, want 2", len(tree.Factors))
	}

	first, ok := tree.Factors[0].(*Sum)
	if !ok {
		t.Fatalf("factor 0 is %T, want *Sum", tree.Factors[0])
	}
	if len(first.Terms) != 2 {
		t.Fatalf("terms = %d, want 2", len(first.Terms))
	}
	weighted, ok := first.Terms[1].(*SOSCone)
	if !ok {
		t.Fatalf("term 1 is %T, want *SOSCone", first.Terms[1])
	}
	if weighted.Weight == nil {
		t.Error("second cone should carry a weight polynomial")
	}
}

func TestSolutionStatus(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusUnknown, "unknown"},
		{StatusOptimal, "optimal"},
		{StatusInfeasible, "infeasible"},
		{StatusUnbounded, "unbounded"},
		{StatusIterationLimit, "iteration-limit"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}

	sol := &Solution{Status: StatusOptimal}
	if !sol.IsOptimal() {
		t.Error("optimal solution not reported as optimal")
	}
	if (&Solution{Status: StatusInfeasible}).IsOptimal() {
		t.Error("infeasible solution reported as optimal")
	}
}
