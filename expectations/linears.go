package expectations

import (
	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
	"c4science.ch/source/gpexp/dists"
	"c4science.ch/source/gpexp/features"
	"c4science.ch/source/gpexp/kernels"
)

// Terminal closed forms for the Linear kernel. The transpose identities in
// misc.go bottom out here.
func registerLinears(reg *dispatch.Registry[Handler]) {
	on := dispatch.On

	// expectation[n] = <K_{x_n, Z}> = variance * mu_n'Z'. NxM.
	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.LinearKernel), on(dispatch.InducingPoints),
		on(dispatch.None), on(dispatch.None),
	}, func(_ *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, feat1 features.InducingFeature,
		_ dispatch.Typed, _ features.InducingFeature,
		_ *int) (Tensor, error) {
		k := obj1.(*kernels.Linear)
		z := feat1.(*features.InducingPoints).Z
		g := p.(*dists.Gaussian)
		n, d := g.Mu.Dims()
		m, _ := z.Dims()
		out := make(Tensor, n)
		for i := 0; i < n; i++ {
			out[i] = mat.NewDense(1, m, nil)
			out[i].Mul(g.Mu.Slice(i, i+1, 0, d), z.T())
			out[i].Scale(k.Variance(), out[i])
		}
		return out, nil
	})

	// expectation[n] = <K_{Z, x_n} x_n'> = variance * Z (cov_n + mu_n mu_n').
	// NxMxD.
	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.LinearKernel), on(dispatch.InducingPoints),
		on(dispatch.IdentityMean), on(dispatch.None),
	}, func(_ *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, feat1 features.InducingFeature,
		_ dispatch.Typed, _ features.InducingFeature,
		_ *int) (Tensor, error) {
		k := obj1.(*kernels.Linear)
		z := feat1.(*features.InducingPoints).Z
		g := p.(*dists.Gaussian)
		n, d := g.Mu.Dims()
		m, _ := z.Dims()
		out := make(Tensor, n)
		var xx mat.Dense
		for i := 0; i < n; i++ {
			// xx = cov_i + mu_i mu_i'
			xx.Outer(1, g.Mu.RowView(i), g.Mu.RowView(i))
			xx.Add(&xx, g.Cov[i])
			out[i] = mat.NewDense(m, d, nil)
			out[i].Mul(z, &xx)
			out[i].Scale(k.Variance(), out[i])
		}
		return out, nil
	})

	// expectation[n] = <K_{Z, x_n} x_{n+1}'> for a Markov chain:
	// variance * Z (cross_n + mu_n mu_{n+1}'). NxMxD.
	reg.Register(dispatch.Signature{
		on(dispatch.MarkovGaussian), on(dispatch.LinearKernel), on(dispatch.InducingPoints),
		on(dispatch.IdentityMean), on(dispatch.None),
	}, func(_ *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, feat1 features.InducingFeature,
		_ dispatch.Typed, _ features.InducingFeature,
		_ *int) (Tensor, error) {
		k := obj1.(*kernels.Linear)
		z := feat1.(*features.InducingPoints).Z
		mg := p.(*dists.MarkovGaussian)
		steps, d := mg.Mu.Dims()
		m, _ := z.Dims()
		out := make(Tensor, steps-1)
		var xx mat.Dense
		for i := 0; i < steps-1; i++ {
			// xx = cross_i + mu_i mu_{i+1}'
			xx.Outer(1, mg.Mu.RowView(i), mg.Mu.RowView(i+1))
			xx.Add(&xx, mg.Cross[i])
			out[i] = mat.NewDense(m, d, nil)
			out[i].Mul(z, &xx)
			out[i].Scale(k.Variance(), out[i])
		}
		return out, nil
	})
}
