package dists

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var ErrSequenceShape = errors.New("sequence model and observations disagree on length")

// SequenceModel describes a linear-Gaussian chain x_{t+1} = A_t x_t + w_t,
// w_t ~ N(0, Q_t), observed through y_t = h'x_t + e_t, e_t ~ N(0, R_t).
type SequenceModel struct {
	A  []*mat.Dense // Transitions, one per step pair.
	Q  []*mat.Dense // Process noise covariances, one per step pair.
	M0 *mat.VecDense
	P0 *mat.Dense
	H  *mat.VecDense
	R  []float64 // Observation noise variances, one per step.
}

// Smooth runs a Kalman filter and an RTS smoother over the observations and
// returns the smoothed joint as a MarkovGaussian: per-step means, same-step
// covariances and adjacent cross covariances.
func Smooth(model SequenceModel, ys []float64) (*MarkovGaussian, error) {
	T := len(ys)
	if T == 0 || len(model.A) != T-1 || len(model.Q) != T-1 || len(model.R) != T {
		return nil, ErrSequenceShape
	}
	d := model.M0.Len()

	var (
		h     = model.H
		A     = model.A
		Q     = model.Q
		m_p   = make([]*mat.VecDense, T)
		P_p   = make([]*mat.Dense, T)
		m_f   = make([]*mat.VecDense, T)
		P_f   = make([]*mat.Dense, T)
		m_s   = make([]*mat.VecDense, T)
		P_s   = make([]*mat.Dense, T)
		cross = make([]*mat.Dense, T-1)
	)
	for i := 0; i < T; i++ {
		m_p[i] = mat.NewVecDense(d, nil)
		P_p[i] = mat.NewDense(d, d, nil)
		m_f[i] = mat.NewVecDense(d, nil)
		P_f[i] = mat.NewDense(d, d, nil)
		m_s[i] = mat.NewVecDense(d, nil)
		P_s[i] = mat.NewDense(d, d, nil)
	}

	var k, tmp1 mat.VecDense
	var G, tmp2 mat.Dense
	// Forward pass (Kalman filter).
	for i := 0; i < T; i++ {
		if i == 0 {
			m_p[i].CopyVec(model.M0)
			P_p[i].Copy(model.P0)
		} else {
			m_p[i].MulVec(A[i-1], m_f[i-1])
			P_p[i].Product(A[i-1], P_f[i-1], A[i-1].T())
			P_p[i].Add(P_p[i], Q[i-1])
		}
		// s = h'P_p[i]h + R[i]
		tmp1.MulVec(P_p[i].T(), h)
		s := mat.Dot(&tmp1, h) + model.R[i]
		// k = P_p[i]h / s
		k.MulVec(P_p[i], h)
		k.ScaleVec(1.0/s, &k)
		// m_f[i] = m_p[i] + k * (ys[i] - h'm_p[i])
		m_f[i].ScaleVec(ys[i]-mat.Dot(h, m_p[i]), &k)
		m_f[i].AddVec(m_f[i], m_p[i])
		// P_f[i] = P_p[i] - s * kk'
		tmp2.Outer(s, &k, &k)
		P_f[i].Sub(P_p[i], &tmp2)
	}
	// Backward pass (RTS smoother).
	for i := T - 1; i >= 0; i-- {
		if i == T-1 {
			m_s[i].CopyVec(m_f[i])
			P_s[i].Copy(P_f[i])
			continue
		}
		// G = solve(P_p[i+1], A[i]P_f[i]); the smoother gain is G'.
		tmp2.Mul(A[i], P_f[i])
		if err := G.Solve(P_p[i+1], &tmp2); err != nil {
			return nil, err
		}
		// m_s[i] = m_f[i] + G'(m_s[i+1] - m_p[i+1])
		tmp1.SubVec(m_s[i+1], m_p[i+1])
		tmp1.MulVec(G.T(), &tmp1)
		m_s[i].AddVec(m_f[i], &tmp1)
		// P_s[i] = P_f[i] + G'(P_s[i+1] - P_p[i+1])G
		tmp2.Sub(P_s[i+1], P_p[i+1])
		tmp2.Product(G.T(), &tmp2, &G)
		P_s[i].Add(P_f[i], &tmp2)
		// Cov(x_i, x_{i+1}) = G'P_s[i+1]
		cross[i] = mat.NewDense(d, d, nil)
		cross[i].Mul(G.T(), P_s[i+1])
	}

	mu := mat.NewDense(T, d, nil)
	same := make([]*mat.Dense, T)
	for i := 0; i < T; i++ {
		mu.SetRow(i, m_s[i].RawVector().Data)
		same[i] = P_s[i]
	}
	return NewMarkovGaussian(mu, same, cross), nil
}
