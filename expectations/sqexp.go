package expectations

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
	"c4science.ch/source/gpexp/dists"
	"c4science.ch/source/gpexp/features"
	"c4science.ch/source/gpexp/kernels"
)

// Closed form for the SquaredExponential kernel:
// eKxz[n, m] = variance * l^D * det(cov_n + l^2 I)^(-1/2)
//            * exp(-(mu_n - z_m)'(cov_n + l^2 I)^(-1)(mu_n - z_m) / 2).
func registerSqExp(reg *dispatch.Registry[Handler]) {
	on := dispatch.On

	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.SqExpKernel), on(dispatch.InducingPoints),
		on(dispatch.None), on(dispatch.None),
	}, func(_ *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, feat1 features.InducingFeature,
		_ dispatch.Typed, _ features.InducingFeature,
		_ *int) (Tensor, error) {
		k := obj1.(*kernels.SquaredExponential)
		z := feat1.(*features.InducingPoints).Z
		g := p.(*dists.Gaussian)
		n, d := g.Mu.Dims()
		m, _ := z.Dims()
		l2 := k.Lengthscale() * k.Lengthscale()

		out := make(Tensor, n)
		diff := mat.NewVecDense(d, nil)
		var sol mat.VecDense
		var chol mat.Cholesky
		for i := 0; i < n; i++ {
			// b = cov_i + l^2 I
			b := mat.NewSymDense(d, nil)
			for r := 0; r < d; r++ {
				for c := r; c < d; c++ {
					v := g.Cov[i].At(r, c)
					if r == c {
						v += l2
					}
					b.SetSym(r, c, v)
				}
			}
			if ok := chol.Factorize(b); !ok {
				return nil, fmt.Errorf("squared-exponential expectation: covariance block %d is not positive definite", i)
			}
			coef := k.Variance() * math.Pow(k.Lengthscale(), float64(d)) / math.Sqrt(chol.Det())
			out[i] = mat.NewDense(1, m, nil)
			for j := 0; j < m; j++ {
				for r := 0; r < d; r++ {
					diff.SetVec(r, g.Mu.At(i, r)-z.At(j, r))
				}
				if err := chol.SolveVecTo(&sol, diff); err != nil {
					return nil, err
				}
				out[i].Set(0, j, coef*math.Exp(-0.5*mat.Dot(diff, &sol)))
			}
		}
		return out, nil
	})
}
