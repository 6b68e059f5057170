package features

import (
	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
)

// InducingFeature is the reference set defining K(., Z) terms.
type InducingFeature interface {
	dispatch.Typed
}

var _ InducingFeature = &InducingPoints{}

// InducingPoints is the plain feature: M fixed points in input space.
type InducingPoints struct {
	Z *mat.Dense // MxD
}

func NewInducingPoints(z *mat.Dense) *InducingPoints {
	return &InducingPoints{Z: z}
}

func (f *InducingPoints) Kind() dispatch.Kind {
	return dispatch.InducingPoints
}

func (f *InducingPoints) Len() int {
	m, _ := f.Z.Dims()
	return m
}
