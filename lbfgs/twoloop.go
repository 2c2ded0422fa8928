// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lbfgs

// Preconditioner approximates B₀⁻¹ applied to a vector, used as the initial
// Hessian guess when scale-invariant H₀ scaling is not requested.
type Preconditioner func(v []float64) []float64

// Options controls the two-loop recursion's initial-Hessian guess.
type Options struct {
	// ScaleInvH0 enables the Nocedal–Wright 7.20 γ-scaling of the initial
	// Hessian guess from the most recent correction pair. Suppressed
	// automatically on a fresh start (pseudo-iteration 1).
	ScaleInvH0 bool
	// Precond, when non-nil and ScaleInvH0 is not in effect, supplies the
	// initial Hessian guess r = P⁻¹q instead of the plain identity r = q.
	Precond Preconditioner
}

// TwoLoopRecursion computes s ≈ -B⁻¹g from the current gradient g and a
// bounded history of correction pairs, following the classical
// Nocedal–Wright backward/forward two-loop algorithm. g is never modified.
func TwoLoopRecursion(g []float64, hist *History, opts Options) []float64 {
	n := len(g)
	col := hist.Len()

	q := append([]float64(nil), g...)
	alphas := make([]float64, col)

	// Backward pass: newest pair first.
	for i := 0; i < col; i++ {
		p := hist.At(i)
		alpha := p.Rho * dot(p.Dx, q)
		alphas[i] = alpha
		axpy(-alpha, p.Dg, q)
	}

	r := initialGuess(q, hist, opts)

	// Forward pass: oldest pair first.
	for i := col - 1; i >= 0; i-- {
		p := hist.At(i)
		beta := p.Rho * dot(p.Dg, r)
		axpy(alphas[i]-beta, p.Dx, r)
	}

	s := make([]float64, n)
	for i := range s {
		s[i] = -r[i]
	}
	return s
}

func initialGuess(q []float64, hist *History, opts Options) []float64 {
	if opts.ScaleInvH0 && hist.K() > 1 && hist.Len() > 0 {
		newest := hist.At(0)
		gamma := dot(newest.Dx, newest.Dg) / dot(newest.Dg, newest.Dg)
		r := make([]float64, len(q))
		for i, v := range q {
			r[i] = gamma * v
		}
		return r
	}
	if opts.Precond != nil {
		return opts.Precond(q)
	}
	return append([]float64(nil), q...)
}

func axpy(a float64, x []float64, y []float64) {
	for i := range y {
		y[i] += a * x[i]
	}
}
