// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subproblem

import "math"

// phi evaluates ‖s(λ)‖ in the eigenbasis: φ(λ) = √Σ ĝᵢ²/(λᵢ+λ)².
func phi(lambdas, ghat []float64, lambda float64) float64 {
	sum := 0.0
	for i, g := range ghat {
		d := lambdas[i] + lambda
		sum += (g * g) / (d * d)
	}
	return math.Sqrt(sum)
}

// phiPrime evaluates φ′(λ) = -Σ ĝᵢ²/(λᵢ+λ)³ / φ(λ).
func phiPrime(lambdas, ghat []float64, lambda, phiVal float64) float64 {
	if phiVal == 0 {
		return 0
	}
	sum := 0.0
	for i, g := range ghat {
		d := lambdas[i] + lambda
		sum += (g * g) / (d * d * d)
	}
	return -sum / phiVal
}

// boundaryEpsTol is the relative tolerance on |φ(λ)-Δ| used by the
// safeguarded root-finder to decide convergence.
const boundaryEpsTol = 1e-12

// solveBoundary finds λ > lambdaLo with φ(λ) = delta by a safeguarded Newton
// iteration on ψ(λ) = 1/Δ - 1/φ(λ) (nearly linear near the root), starting
// from an interior point of the safeguard interval. It always returns a
// usable λ, even when the iteration does not converge within maxIters
// (reached=false in that case).
func solveBoundary(lambdas, ghat []float64, delta, lambdaLo, lambdaUpper float64, maxIters int) (lambda float64, reached bool) {
	const eps = 1e-12
	lo := lambdaLo + eps
	hi := lambdaUpper
	if hi <= lo {
		hi = lo + 1
	}

	lambda = lo
	if p := phi(lambdas, ghat, lo); p < delta {
		// Starting point is already inside the ball; nudge toward hi so the
		// first Newton step has a well-defined slope.
		lambda = lo + 0.5*(hi-lo)
	}

	tol := boundaryEpsTol * math.Max(delta, 1)

	for iter := 0; iter < maxIters; iter++ {
		p := phi(lambdas, ghat, lambda)
		if math.Abs(p-delta) <= tol {
			return lambda, true
		}

		if p > delta {
			lo = math.Max(lo, lambda)
		} else {
			hi = math.Min(hi, lambda)
		}

		dp := phiPrime(lambdas, ghat, lambda, p)
		next := lambda
		if dp != 0 && !math.IsNaN(dp) && !math.IsInf(dp, 0) {
			// Newton step on ψ(λ) = 1/Δ - 1/φ(λ): λ ← λ - ψ(λ)/ψ'(λ).
			next = lambda - (p-delta)/delta*(p/dp)
		}

		if !(next > lo && next < hi) || math.IsNaN(next) {
			next = 0.5 * (lo + hi)
		}
		lambda = next
	}

	return lambda, math.Abs(phi(lambdas, ghat, lambda)-delta) <= tol
}
