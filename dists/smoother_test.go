package dists

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func scalarModel(a, q float64, tSteps int) SequenceModel {
	model := SequenceModel{
		M0: mat.NewVecDense(1, []float64{0}),
		P0: mat.NewDense(1, 1, []float64{1}),
		H:  mat.NewVecDense(1, []float64{1}),
		R:  make([]float64, tSteps),
	}
	for i := 0; i < tSteps; i++ {
		model.R[i] = 1
	}
	for i := 0; i < tSteps-1; i++ {
		model.A = append(model.A, mat.NewDense(1, 1, []float64{a}))
		model.Q = append(model.Q, mat.NewDense(1, 1, []float64{q}))
	}
	return model
}

func TestSmoothSingleStep(t *testing.T) {
	// One observation: the smoothed state is the plain Gaussian posterior.
	// m = m0 + k(y - m0), P = P0 - s k^2 with k = P0/(P0 + r).
	mg, err := Smooth(scalarModel(1, 1, 1), []float64{2})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, mg.Mu.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, mg.Same[0].At(0, 0), 1e-12)
	assert.Len(t, mg.Cross, 0)
}

func TestSmoothMatchesScalarRecursion(t *testing.T) {
	a, q := 0.9, 0.5
	ys := []float64{1.0, -0.5, 2.0}
	mg, err := Smooth(scalarModel(a, q, len(ys)), ys)
	require.NoError(t, err)

	// Same recursions written out in scalar arithmetic.
	n := len(ys)
	mp := make([]float64, n)
	pp := make([]float64, n)
	mf := make([]float64, n)
	pf := make([]float64, n)
	for i := 0; i < n; i++ {
		if i == 0 {
			mp[i], pp[i] = 0, 1
		} else {
			mp[i] = a * mf[i-1]
			pp[i] = a*a*pf[i-1] + q
		}
		s := pp[i] + 1
		k := pp[i] / s
		mf[i] = mp[i] + k*(ys[i]-mp[i])
		pf[i] = pp[i] - s*k*k
	}
	ms := make([]float64, n)
	ps := make([]float64, n)
	cross := make([]float64, n-1)
	for i := n - 1; i >= 0; i-- {
		if i == n-1 {
			ms[i], ps[i] = mf[i], pf[i]
			continue
		}
		g := a * pf[i] / pp[i+1]
		ms[i] = mf[i] + g*(ms[i+1]-mp[i+1])
		ps[i] = pf[i] + g*g*(ps[i+1]-pp[i+1])
		cross[i] = g * ps[i+1]
	}

	for i := 0; i < n; i++ {
		assert.InDelta(t, ms[i], mg.Mu.At(i, 0), 1e-12, "mean at step %d", i)
		assert.InDelta(t, ps[i], mg.Same[i].At(0, 0), 1e-12, "covariance at step %d", i)
	}
	for i := 0; i < n-1; i++ {
		assert.InDelta(t, cross[i], mg.Cross[i].At(0, 0), 1e-12, "cross covariance at step %d", i)
	}
}

func TestSmoothShapeMismatch(t *testing.T) {
	model := scalarModel(1, 1, 2)
	_, err := Smooth(model, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrSequenceShape)

	_, err = Smooth(model, nil)
	assert.ErrorIs(t, err, ErrSequenceShape)
}

func TestMarkovMarginal(t *testing.T) {
	mu := mat.NewDense(3, 1, []float64{1, 2, 3})
	same := []*mat.Dense{
		mat.NewDense(1, 1, []float64{4}),
		mat.NewDense(1, 1, []float64{5}),
		mat.NewDense(1, 1, []float64{6}),
	}
	cross := []*mat.Dense{
		mat.NewDense(1, 1, []float64{0.1}),
		mat.NewDense(1, 1, []float64{0.2}),
	}
	mg := NewMarkovGaussian(mu, same, cross)

	head := mg.Marginal(0, 2)
	assert.Equal(t, 2.0, head.Mu.At(1, 0))
	assert.Equal(t, 5.0, head.Cov[1].At(0, 0))

	tail := mg.Marginal(1, 3)
	assert.Equal(t, 2.0, tail.Mu.At(0, 0))
	assert.Equal(t, 6.0, tail.Cov[1].At(0, 0))
}
