package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestLinearEval(t *testing.T) {
	k := NewLinear(2.0)
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	z := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	out := k.Eval(x, z)
	want := mat.NewDense(2, 2, []float64{2, 4, 6, 8})
	assert.True(t, mat.EqualApprox(want, out, 1e-12))
}

func TestSquaredExponentialEval(t *testing.T) {
	k := NewSquaredExponential(1.5, 0.8)
	x := mat.NewDense(1, 2, []float64{1, 2})
	z := mat.NewDense(2, 2, []float64{1, 2, 0, 0})

	out := k.Eval(x, z)
	assert.InDelta(t, 1.5, out.At(0, 0), 1e-12)
	assert.InDelta(t, 1.5*math.Exp(-5/(2*0.64)), out.At(0, 1), 1e-12)
}
