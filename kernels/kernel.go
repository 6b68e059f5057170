package kernels

import (
	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
)

type Kernel interface {
	dispatch.Typed

	// Gram matrix K(X, Z) for row-stacked inputs X (NxD) and Z (MxD).
	Eval(x, z mat.Matrix) *mat.Dense
}
