package kernels

import (
	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
)

var (
	linear *Linear
	_      Kernel = linear // Check that Linear respects the Kernel interface.
)

// Linear is the dot-product kernel k(x, z) = variance * x'z.
type Linear struct {
	variance float64
}

func NewLinear(variance float64) *Linear {
	return &Linear{
		variance: variance,
	}
}

func (k *Linear) Kind() dispatch.Kind {
	return dispatch.LinearKernel
}

func (k *Linear) Variance() float64 {
	return k.variance
}

func (k *Linear) Eval(x, z mat.Matrix) *mat.Dense {
	n, _ := x.Dims()
	m, _ := z.Dims()
	out := mat.NewDense(n, m, nil)
	out.Mul(x, z.T())
	out.Scale(k.variance, out)
	return out
}
