package utils

import (
	"gonum.org/v1/gonum/mat"
)

// Identity Matrix.
func Eye(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// Embed a vector into a square diagonal matrix.
func DiagEmbed(v []float64) *mat.Dense {
	n := len(v)
	out := mat.NewDense(n, n, nil)
	for i, x := range v {
		out.Set(i, i, x)
	}
	return out
}

// Transpose every matrix of a batch.
func Adjoint(batch []*mat.Dense) []*mat.Dense {
	out := make([]*mat.Dense, len(batch))
	for i, m := range batch {
		r, c := m.Dims()
		t := mat.NewDense(c, r, nil)
		t.Copy(m.T())
		out[i] = t
	}
	return out
}

// Outer product of two vectors.
func Outer(a, b []float64) *mat.Dense {
	out := mat.NewDense(len(a), len(b), nil)
	out.Outer(1, mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b))
	return out
}
