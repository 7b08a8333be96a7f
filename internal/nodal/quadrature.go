package nodal

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ClenshawCurtisWeights computes the Clenshaw-Curtis quadrature weights
// over the U = 2d+1 Chebyshev extremal nodes, approximating the integral
// over [-1, 1] from function values at the nodes. The weights come from
// the discrete-cosine relation: an L x L cosine matrix applied to the
// Fourier coefficients of 1/(1-x^2)-type moments yields the first L
// weights, the remaining L-1 are their mirror image, and the midpoint
// weight is doubled. The weight vector is symmetric and sums to 2.
//
// degree must be at least 1.
func ClenshawCurtisWeights(degree int) []float64 {
	if degree < 1 {
		panic("nodal: degree must be at least 1")
	}
	l := degree + 1
	u := 2*degree + 1

	d := mat.NewDense(l, l, nil)
	for k := 0; k < l; k++ {
		for n := 0; n < l; n++ {
			scale := 1.0
			if n == 0 || n == l-1 {
				scale = 0.5
			}
			d.Set(k, n, scale*math.Cos(float64(k*n)*math.Pi/float64(l-1))/float64(l-1))
		}
	}

	f := mat.NewVecDense(l, nil)
	f.SetVec(0, 1)
	f.SetVec(l-1, 1/(1-float64((u-1)*(u-1))))
	for m := 1; m < l-1; m++ {
		f.SetVec(m, 2/(1-float64(4*m*m)))
	}

	var head mat.VecDense
	head.MulVec(d.T(), f)

	w := make([]float64, u)
	for i := 0; i < l; i++ {
		w[i] = head.AtVec(i)
	}
	for i := 0; i < l-1; i++ {
		w[l+i] = head.AtVec(l - 2 - i)
	}
	w[l-1] *= 2
	return w
}
