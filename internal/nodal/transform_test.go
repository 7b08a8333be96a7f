package nodal

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToInterpolantMatchesNodeValues(t *testing.T) {
	// The interpolant coordinates of p are its values at the nodes.
	b := NewBasis(2, nil)
	tr := NewTransformer(b, 0, nil)

	p := []float64{-1, 0, 1, 0, 0} // x^2 - 1 padded to U=5
	v, err := tr.ToInterpolant(p)
	require.NoError(t, err)
	require.Len(t, v, b.Size())

	for i, x := range b.Nodes() {
		require.InDelta(t, x*x-1, v[i], 1e-10, "node %d", i)
	}
}

func TestRoundTrip(t *testing.T) {
	for d := 1; d <= 8; d++ {
		t.Run(fmt.Sprintf("degree_%d", d), func(t *testing.T) {
			b := NewBasis(d, nil)
			tr := NewTransformer(b, 0, nil)
			u := b.Size()

			p := make([]float64, u)
			for i := range p {
				p[i] = math.Sin(float64(i + 1)) // fixed, nontrivial coefficients
			}

			v, err := tr.ToInterpolant(p)
			require.NoError(t, err)
			back := tr.ToCoefficients(v)
			for i := range p {
				require.InDelta(t, p[i], back[i], 1e-8, "coefficient %d", i)
			}
		})
	}
}

func TestToInterpolantIdempotent(t *testing.T) {
	b := NewBasis(3, nil)
	tr := NewTransformer(b, 0, nil)

	p := []float64{2, -1, 0.5, 0, 3, 0, -0.25}
	first, err := tr.ToInterpolant(p)
	require.NoError(t, err)
	second, err := tr.ToInterpolant(p)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestToInterpolantDimensionMismatch(t *testing.T) {
	b := NewBasis(2, nil)
	tr := NewTransformer(b, 0, nil)

	_, err := tr.ToInterpolant([]float64{1, 2, 3})
	require.Error(t, err)
}

func TestResidualToleranceReported(t *testing.T) {
	// An unattainably tight tolerance must surface ErrSingularBasis
	// rather than a silently degraded transform.
	b := NewBasis(10, nil)
	tr := NewTransformer(b, 1e-18, nil)

	p := make([]float64, b.Size())
	p[0] = 1
	_, err := tr.ToInterpolant(p)
	require.ErrorIs(t, err, ErrSingularBasis)
	require.False(t, math.IsNaN(tr.LastResidual()))
	require.Greater(t, tr.LastResidual(), 1e-18)
}

func TestLastResidualBeforeFirstCall(t *testing.T) {
	tr := NewTransformer(NewBasis(1, nil), 0, nil)
	require.True(t, math.IsNaN(tr.LastResidual()))
}
