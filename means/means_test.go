package means

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestIdentityEvalCopies(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	out := Identity{}.Eval(x)
	assert.True(t, mat.EqualApprox(x, out, 0))

	out.Set(0, 0, 99)
	assert.Equal(t, 1.0, x.At(0, 0))
}

func TestConstantEvalTiles(t *testing.T) {
	m := NewConstant([]float64{1, 2, 3})
	x := mat.NewDense(2, 5, nil)

	out := m.Eval(x)
	want := mat.NewDense(2, 3, []float64{1, 2, 3, 1, 2, 3})
	assert.True(t, mat.EqualApprox(want, out, 0))
}

func TestLinearEval(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{1, 0, 1, 0, 1, 1})
	b := mat.NewVecDense(3, []float64{1, 2, 3})
	m := NewLinear(a, b)

	x := mat.NewDense(1, 2, []float64{2, 5})
	out := m.Eval(x)
	want := mat.NewDense(1, 3, []float64{3, 7, 10})
	assert.True(t, mat.EqualApprox(want, out, 1e-12))
}
