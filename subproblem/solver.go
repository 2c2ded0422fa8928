// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subproblem

import (
	"math"

	"github.com/curioloop/trustregion/linalg"
	"gonum.org/v1/gonum/mat"
)

// SolveTR writes the computed step into sOut (which must have length
// n = len(g)) and returns the remaining output fields. It never panics on
// numerically pathological H (non-finite entries, exact singularity); it
// panics only on dimension mismatch between g, H, and sOut, which is a
// programmer error rather than a numerical one.
func SolveTR(g []float64, h *mat.SymDense, delta float64, sOut []float64, maxIters int) Output {
	n := len(g)
	if h.SymmetricDim() != n || len(sOut) != n {
		panic("bound check error")
	}
	if maxIters <= 0 {
		maxIters = DefaultMaxIters
	}

	zeroOut := func() Output {
		for i := range sOut {
			sOut[i] = 0
		}
		return Output{S: sOut, M: 0, Interior: false, Lambda: 0, HardCase: false, ReachedSolution: false}
	}

	if delta <= 0 || !finiteVec(g) || !finiteSym(h) {
		return zeroOut()
	}

	// Fast path: Cholesky confirms H is PD and the unconstrained Newton
	// point already lies inside the ball. Skips the eigendecomposition
	// entirely, which is the dominant O(n³) cost of a solve.
	neg := make([]float64, n)
	for i, v := range g {
		neg[i] = -v
	}
	fac := linalg.Cholesky(h)
	if fac.OK {
		s := fac.Solve(neg)
		if norm2(s) <= delta {
			copy(sOut, s)
			return Output{
				S:               sOut,
				M:               modelValue(g, h, sOut),
				Interior:        true,
				Lambda:          0,
				HardCase:        false,
				ReachedSolution: true,
			}
		}
	}

	eig := linalg.Eigh(h)
	if !eig.OK {
		return zeroOut()
	}
	lambdas := eig.Values
	q := eig.Vectors
	ghat := transformToEigenbasis(q, g)

	lambda1 := lambdas[0]
	epsPD := 1e-10 * linalg.InfNorm(h)

	if lambda1 > epsPD {
		p0 := phi(lambdas, ghat, 0)
		if p0 <= delta {
			y := stepCoords(lambdas, ghat, 0)
			s := eigenToOriginal(q, y)
			copy(sOut, s)
			return Output{
				S:               sOut,
				M:               modelValue(g, h, sOut),
				Interior:        true,
				Lambda:          0,
				HardCase:        false,
				ReachedSolution: true,
			}
		}
	}

	lambdaLo := math.Max(0, -lambda1)

	if candidate, _ := CheckHardCaseCandidate(lambdas, ghat); candidate && lambda1 < 0 {
		reducedNorm := reducedEasyNorm(lambdas, ghat, lambda1)
		if reducedNorm < delta {
			y := hardCaseCoords(lambdas, ghat, lambda1, delta, reducedNorm)
			s := eigenToOriginal(q, y)
			enforceRadius(s, delta)
			copy(sOut, s)
			return Output{
				S:               sOut,
				M:               modelValue(g, h, sOut),
				Interior:        false,
				Lambda:          -lambda1,
				HardCase:        true,
				ReachedSolution: true,
			}
		}
	}

	lambdaUpper := norm2(g)/delta + linalg.InfNorm(h)
	if lambdaUpper <= lambdaLo {
		lambdaUpper = lambdaLo + 1
	}
	lambda, reached := solveBoundary(lambdas, ghat, delta, lambdaLo, lambdaUpper, maxIters)
	y := stepCoords(lambdas, ghat, lambda)
	s := eigenToOriginal(q, y)
	enforceRadius(s, delta)
	copy(sOut, s)

	return Output{
		S:               sOut,
		M:               modelValue(g, h, sOut),
		Interior:        false,
		Lambda:          lambda,
		HardCase:        false,
		ReachedSolution: reached,
	}
}

// transformToEigenbasis computes ĝ = Qᵀg.
func transformToEigenbasis(q *mat.Dense, g []float64) []float64 {
	n := len(g)
	ghat := make([]float64, n)
	for j := 0; j < n; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += q.At(i, j) * g[i]
		}
		ghat[j] = sum
	}
	return ghat
}

// eigenToOriginal computes s = Q y.
func eigenToOriginal(q *mat.Dense, y []float64) []float64 {
	n := len(y)
	s := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += q.At(i, j) * y[j]
		}
		s[i] = sum
	}
	return s
}

// stepCoords returns y_i = -ĝᵢ/(λᵢ+λ), the eigenbasis coordinates of s(λ).
func stepCoords(lambdas, ghat []float64, lambda float64) []float64 {
	y := make([]float64, len(ghat))
	for i, g := range ghat {
		y[i] = -g / (lambdas[i] + lambda)
	}
	return y
}

// reducedEasyNorm computes the norm of the reduced easy subproblem's solution
// at shift λ=-λ₁, summing only over eigenvalues strictly above λ₁ (the
// λ₁-eigenspace components are excluded — their ĝ is numerically zero and
// their denominator would otherwise vanish).
func reducedEasyNorm(lambdas, ghat []float64, lambda1 float64) float64 {
	sum := 0.0
	for i, lam := range lambdas {
		if lam > lambda1 {
			d := lam - lambda1
			sum += (ghat[i] * ghat[i]) / (d * d)
		}
	}
	return math.Sqrt(sum)
}

// hardCaseCoords builds the eigenbasis coordinates of the hard-case step:
// the ordinary component away from the λ₁-eigenspace, plus τ along the first
// (index 0) λ₁-eigenvector so that ‖s‖ = Δ.
func hardCaseCoords(lambdas, ghat []float64, lambda1, delta, reducedNorm float64) []float64 {
	y := make([]float64, len(lambdas))
	for i, lam := range lambdas {
		if lam > lambda1 {
			y[i] = -ghat[i] / (lam - lambda1)
		}
	}
	tauSq := delta*delta - reducedNorm*reducedNorm
	if tauSq < 0 {
		tauSq = 0
	}
	y[0] = math.Sqrt(tauSq)
	return y
}

// enforceRadius rescales s in place to satisfy ‖s‖ ≤ Δ(1+ε_tol) when a
// non-converged root-find left it slightly outside the ball.
func enforceRadius(s []float64, delta float64) {
	n := norm2(s)
	limit := delta * (1 + 1e-8)
	if n > limit && n > 0 {
		scale := delta / n
		for i := range s {
			s[i] *= scale
		}
	}
}

// modelValue computes m(s) = gᵀs + ½sᵀHs directly, independent of which case
// produced s.
func modelValue(g []float64, h *mat.SymDense, s []float64) float64 {
	n := len(s)
	gs := 0.0
	for i := range s {
		gs += g[i] * s[i]
	}
	shs := 0.0
	for i := 0; i < n; i++ {
		hsi := 0.0
		for j := 0; j < n; j++ {
			hsi += h.At(i, j) * s[j]
		}
		shs += s[i] * hsi
	}
	return gs + 0.5*shs
}

func finiteVec(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func finiteSym(h *mat.SymDense) bool {
	n := h.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := h.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
