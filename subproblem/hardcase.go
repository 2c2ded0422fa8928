// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subproblem

import "math"

// CheckHardCaseCandidate is the isolated structural half of the hard-case
// test: given ascending eigenvalues lambda and the gradient ĝ expressed in
// the eigenbasis, it reports whether the gradient's zero-prefix lines up
// exactly with the λ₁-eigenspace.
//
// It does not know Δ and therefore cannot rule out the case where the
// reduced easy subproblem's norm at shift λ=-λ₁ still exceeds Δ (in which
// case the true solution is an ordinary boundary step, not the hard case).
// SolveTR performs that second, Δ-dependent check itself before committing
// to the hard-case construction.
//
// lambdaIndex is 1-based, matching the ĝⱼ/λⱼ notation above. When ĝ is
// entirely (numerically) zero, lambdaIndex is n+1.
func CheckHardCaseCandidate(lambda, ghat []float64) (hardCase bool, lambdaIndex int) {
	n := len(lambda)
	if n == 0 {
		return false, 0
	}

	lambda1 := lambda[0]
	if lambda1 >= 0 {
		return false, 0
	}

	tol := zeroTolerance(ghat)

	k := 1
	for k < n && lambda[k] == lambda1 {
		k++
	}

	jStar := 0 // 0 means "no nonzero found"
	for i, v := range ghat {
		if math.Abs(v) > tol {
			jStar = i + 1 // 1-based
			break
		}
	}

	if jStar == 0 {
		return true, n + 1
	}

	if jStar == k+1 {
		return true, jStar
	}
	return false, 0
}

// zeroTolerance is the absolute tolerance 10⁻¹⁰·‖g‖ used to decide whether a
// component of ĝ is numerically zero.
func zeroTolerance(g []float64) float64 {
	tol := 1e-10 * norm2(g)
	if tol == 0 {
		// Every component really is exactly zero; any positive tolerance
		// works, this just avoids a zero-width comparison.
		tol = 1e-300
	}
	return tol
}

func norm2(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
