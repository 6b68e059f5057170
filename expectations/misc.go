package expectations

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
	"c4science.ch/source/gpexp/dists"
	"c4science.ch/source/gpexp/features"
	"c4science.ch/source/gpexp/means"
	"c4science.ch/source/gpexp/utils"
)

// Transpose identities, mean-function composition and the conversion
// handlers for diagonal and Markov distributions.
func registerMisc(reg *dispatch.Registry[Handler]) {
	on := dispatch.On

	// expectation[n] = <x_n K_{x_n, Z}>, K linear: the adjoint of the
	// kernel-first ordering. NxDxM.
	exKxz := func(ev *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, _ features.InducingFeature,
		obj2 dispatch.Typed, feat2 features.InducingFeature,
		nghp *int) (Tensor, error) {
		out, err := ev.Expectation(p, Pair(obj2, feat2), obj1, nil)
		if err != nil {
			return nil, err
		}
		return utils.Adjoint(out), nil
	}
	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.IdentityMean), on(dispatch.None),
		on(dispatch.LinearKernel), on(dispatch.InducingPoints),
	}, exKxz)
	reg.Register(dispatch.Signature{
		on(dispatch.MarkovGaussian), on(dispatch.IdentityMean), on(dispatch.None),
		on(dispatch.LinearKernel), on(dispatch.InducingPoints),
	}, exKxz)

	// expectation[n] = <K_{Z, x_n} m(x_n)>: the adjoint of the mean-first
	// ordering, nghp forwarded. NxMxQ.
	eKzxm := func(ev *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, feat1 features.InducingFeature,
		obj2 dispatch.Typed, _ features.InducingFeature,
		nghp *int) (Tensor, error) {
		out, err := ev.Expectation(p, obj2, Pair(obj1, feat1), nghp)
		if err != nil {
			return nil, err
		}
		return utils.Adjoint(out), nil
	}
	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.Kernel), on(dispatch.InducingFeature),
		on(dispatch.MeanFunction), on(dispatch.None),
	}, eKzxm)
	reg.Register(dispatch.Signature{
		on(dispatch.MarkovGaussian), on(dispatch.Kernel), on(dispatch.InducingFeature),
		on(dispatch.MeanFunction), on(dispatch.None),
	}, eKzxm)

	// expectation[n] = <m(x_n)' K_{x_n, Z}>, m constant: the constant value
	// times the plain kernel expectation. NxQxM.
	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.ConstantMean), on(dispatch.None),
		on(dispatch.Kernel), on(dispatch.InducingPoints),
	}, func(ev *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, _ features.InducingFeature,
		obj2 dispatch.Typed, feat2 features.InducingFeature,
		nghp *int) (Tensor, error) {
		g := p.(*dists.Gaussian)
		c := obj1.(*means.Constant).Eval(g.Mu) // NxQ
		eKxz, err := ev.Expectation(p, Pair(obj2, feat2), nil, nghp)
		if err != nil {
			return nil, err
		}
		out := make(Tensor, len(eKxz))
		for n := range eKxz {
			out[n] = utils.Outer(c.RawRowView(n), eKxz[n].RawRowView(0))
		}
		return out, nil
	})

	// expectation[n] = <m(x_n)' K_{x_n, Z}>, m(x) = A'x + b: composed from
	// the Identity-mean expectation by linearity. NxQxM.
	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.LinearMean), on(dispatch.None),
		on(dispatch.Kernel), on(dispatch.InducingPoints),
	}, func(ev *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, _ features.InducingFeature,
		obj2 dispatch.Typed, feat2 features.InducingFeature,
		nghp *int) (Tensor, error) {
		lm := obj1.(*means.Linear)
		exKxz, err := ev.Expectation(p, means.Identity{}, Pair(obj2, feat2), nghp)
		if err != nil {
			return nil, err
		}
		eKxz, err := ev.Expectation(p, Pair(obj2, feat2), nil, nghp)
		if err != nil {
			return nil, err
		}
		_, q := lm.A().Dims()
		out := make(Tensor, len(exKxz))
		for n := range exKxz {
			_, m := exKxz[n].Dims()
			out[n] = mat.NewDense(q, m, nil)
			out[n].Mul(lm.A().T(), exKxz[n])
			out[n].Add(out[n], utils.Outer(lm.B().RawVector().Data, eKxz[n].RawRowView(0)))
		}
		return out, nil
	})

	// Recursion guard: Identity is a subtype of the Linear mean, so the
	// composition rule above would delegate back to itself for kernels
	// without a specific <x_n K_{x_n, Z}> formula. Kernel-specific
	// registrations are more specific and preempt this entry.
	reg.Register(dispatch.Signature{
		on(dispatch.Gaussian), on(dispatch.IdentityMean), on(dispatch.None),
		on(dispatch.Kernel), on(dispatch.InducingPoints),
	}, func(_ *Evaluator, _ dists.Distribution,
		_ dispatch.Typed, _ features.InducingFeature,
		obj2 dispatch.Typed, _ features.InducingFeature,
		_ *int) (Tensor, error) {
		return nil, fmt.Errorf("%w: <x K(x,Z)> for kernel %s", ErrNotImplemented, dispatch.KindOf(obj2))
	})

	registerConversions(reg)
}

// Catching missing DiagonalGaussian and MarkovGaussian implementations by
// converting to a full Gaussian where that loses nothing.
func registerConversions(reg *dispatch.Registry[Handler]) {
	operand := dispatch.Any()
	feature := dispatch.OneOf(dispatch.InducingFeature, dispatch.None)

	reg.Register(dispatch.Signature{
		dispatch.On(dispatch.DiagonalGaussian), operand, feature, operand, feature,
	}, func(ev *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, feat1 features.InducingFeature,
		obj2 dispatch.Typed, feat2 features.InducingFeature,
		nghp *int) (Tensor, error) {
		dg := p.(*dists.DiagonalGaussian)
		n, _ := dg.Mu.Dims()
		cov := make([]*mat.Dense, n)
		for i := 0; i < n; i++ {
			cov[i] = utils.DiagEmbed(dg.Var.RawRowView(i))
		}
		g := dists.NewGaussian(dg.Mu, cov)
		return ev.Expectation(g, Pair(obj1, feat1), Pair(obj2, feat2), nghp)
	})

	// If only one operand is supplied, obj1 is associated with x_n and
	// obj2 with x_{n+1}; the chain marginal over the matching steps is a
	// plain Gaussian. The two-operand case needs the cross-step terms and
	// therefore a Markov-specific rule; rather than re-entering with the
	// unchanged distribution and looping, fail fast.
	reg.Register(dispatch.Signature{
		dispatch.On(dispatch.MarkovGaussian), operand, feature, operand, feature,
	}, func(ev *Evaluator, p dists.Distribution,
		obj1 dispatch.Typed, feat1 features.InducingFeature,
		obj2 dispatch.Typed, feat2 features.InducingFeature,
		nghp *int) (Tensor, error) {
		mg := p.(*dists.MarkovGaussian)
		steps, _ := mg.Mu.Dims()
		switch {
		case obj2 == nil:
			return ev.Expectation(mg.Marginal(0, steps-1), Pair(obj1, feat1), nil, nghp)
		case obj1 == nil:
			return ev.Expectation(mg.Marginal(1, steps), Pair(obj2, feat2), nil, nghp)
		default:
			return nil, fmt.Errorf("%w: Markov cross-step expectation for (%s, %s)",
				ErrNotImplemented, dispatch.KindOf(obj1), dispatch.KindOf(obj2))
		}
	})
}
