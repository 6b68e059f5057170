package kernels

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
)

var (
	sqexp *SquaredExponential
	_     Kernel = sqexp // Check that SquaredExponential respects the Kernel interface.
)

// SquaredExponential is the isotropic RBF kernel
// k(x, z) = variance * exp(-|x - z|^2 / (2 lscale^2)).
type SquaredExponential struct {
	variance float64
	lscale   float64
}

func NewSquaredExponential(variance, lscale float64) *SquaredExponential {
	return &SquaredExponential{
		variance: variance,
		lscale:   lscale,
	}
}

func (k *SquaredExponential) Kind() dispatch.Kind {
	return dispatch.SqExpKernel
}

func (k *SquaredExponential) Variance() float64 {
	return k.variance
}

func (k *SquaredExponential) Lengthscale() float64 {
	return k.lscale
}

func (k *SquaredExponential) Eval(x, z mat.Matrix) *mat.Dense {
	n, d := x.Dims()
	m, _ := z.Dims()
	out := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			sq := 0.0
			for l := 0; l < d; l++ {
				diff := x.At(i, l) - z.At(j, l)
				sq += diff * diff
			}
			out.Set(i, j, k.variance*math.Exp(-sq/(2*k.lscale*k.lscale)))
		}
	}
	return out
}
