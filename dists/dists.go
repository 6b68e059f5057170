package dists

import (
	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
)

// Distribution is the latent-input distribution an expectation is taken
// under. Distributions are owned by the caller and read-only here.
type Distribution interface {
	dispatch.Typed
}

var (
	_ Distribution = &Gaussian{}
	_ Distribution = &DiagonalGaussian{}
	_ Distribution = &MarkovGaussian{}
)

// Gaussian is a batch of N independent D-dimensional Gaussians with full
// covariance.
type Gaussian struct {
	Mu  *mat.Dense   // NxD, one mean per data point.
	Cov []*mat.Dense // N blocks, each DxD.
}

func NewGaussian(mu *mat.Dense, cov []*mat.Dense) *Gaussian {
	return &Gaussian{Mu: mu, Cov: cov}
}

func (p *Gaussian) Kind() dispatch.Kind {
	return dispatch.Gaussian
}

// DiagonalGaussian is a batch of Gaussians whose covariances are diagonal,
// stored as one variance row per data point.
type DiagonalGaussian struct {
	Mu  *mat.Dense // NxD
	Var *mat.Dense // NxD, diagonal of the covariance.
}

func NewDiagonalGaussian(mu, variance *mat.Dense) *DiagonalGaussian {
	return &DiagonalGaussian{Mu: mu, Var: variance}
}

func (p *DiagonalGaussian) Kind() dispatch.Kind {
	return dispatch.DiagonalGaussian
}

// MarkovGaussian is a jointly Gaussian sequence in which only adjacent time
// steps covary. Same[n] is Cov(x_n, x_n) and Cross[n] is Cov(x_n, x_{n+1}).
type MarkovGaussian struct {
	Mu    *mat.Dense   // (N+1)xD
	Same  []*mat.Dense // N+1 blocks, each DxD.
	Cross []*mat.Dense // N blocks, each DxD.
}

func NewMarkovGaussian(mu *mat.Dense, same, cross []*mat.Dense) *MarkovGaussian {
	return &MarkovGaussian{Mu: mu, Same: same, Cross: cross}
}

func (p *MarkovGaussian) Kind() dispatch.Kind {
	return dispatch.MarkovGaussian
}

// Marginal returns the per-step Gaussian over steps [from, to), dropping the
// cross-step terms. The returned distribution views the receiver's data.
func (p *MarkovGaussian) Marginal(from, to int) *Gaussian {
	_, d := p.Mu.Dims()
	return &Gaussian{
		Mu:  p.Mu.Slice(from, to, 0, d).(*mat.Dense),
		Cov: p.Same[from:to],
	}
}
