package means

import (
	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
)

// MeanFunction maps a batch of inputs (NxD) to mean values (NxQ).
type MeanFunction interface {
	dispatch.Typed

	Eval(x *mat.Dense) *mat.Dense
}

var (
	_ MeanFunction = Identity{}
	_ MeanFunction = &Constant{}
	_ MeanFunction = &Linear{}
)

// Identity is m(x) = x, the Q = D special case of a Linear mean with A = I
// and b = 0. It dispatches as a subtype of LinearMean.
type Identity struct{}

func (Identity) Kind() dispatch.Kind {
	return dispatch.IdentityMean
}

func (Identity) Eval(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	out := mat.NewDense(n, d, nil)
	out.Copy(x)
	return out
}

// Constant is m(x) = c for a fixed Q-vector c.
type Constant struct {
	c *mat.VecDense
}

func NewConstant(c []float64) *Constant {
	return &Constant{
		c: mat.NewVecDense(len(c), c),
	}
}

func (m *Constant) Kind() dispatch.Kind {
	return dispatch.ConstantMean
}

func (m *Constant) Eval(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	out := mat.NewDense(n, m.c.Len(), nil)
	for i := 0; i < n; i++ {
		out.SetRow(i, m.c.RawVector().Data)
	}
	return out
}

// Linear is m(x) = A'x + b with A of shape DxQ and b of length Q.
type Linear struct {
	a *mat.Dense
	b *mat.VecDense
}

func NewLinear(a *mat.Dense, b *mat.VecDense) *Linear {
	return &Linear{a: a, b: b}
}

func (m *Linear) Kind() dispatch.Kind {
	return dispatch.LinearMean
}

func (m *Linear) A() *mat.Dense {
	return m.a
}

func (m *Linear) B() *mat.VecDense {
	return m.b
}

func (m *Linear) Eval(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	_, q := m.a.Dims()
	out := mat.NewDense(n, q, nil)
	out.Mul(x, m.a)
	for i := 0; i < n; i++ {
		for j := 0; j < q; j++ {
			out.Set(i, j, out.At(i, j)+m.b.AtVec(j))
		}
	}
	return out
}
