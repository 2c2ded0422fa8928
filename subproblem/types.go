// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subproblem implements the Moré–Sorensen trust-region subproblem
// solver: given a gradient g, a symmetric (possibly indefinite) Hessian H,
// and a radius Δ, it finds s minimizing gᵀs + ½sᵀHs subject to ‖s‖ ≤ Δ.
package subproblem

import "gonum.org/v1/gonum/mat"

// DefaultMaxIters is the root-finder iteration budget used when Input.MaxIters
// is left at zero.
const DefaultMaxIters = 20

// Input bundles the gradient, Hessian, trust-region radius, and root-finder
// budget a single solve needs.
type Input struct {
	G        []float64
	H        *mat.SymDense
	Delta    float64
	MaxIters int
}

// Output is the computed step together with its model value and the flags
// describing which case (interior, boundary, hard case) produced it.
type Output struct {
	S                []float64
	M                float64
	Interior         bool
	Lambda           float64
	HardCase         bool
	ReachedSolution  bool
}

// Solve is the Input/Output convenience wrapper around SolveTR for callers
// that don't want to manage their own step buffer.
func Solve(in Input) Output {
	n := len(in.G)
	sOut := make([]float64, n)
	return SolveTR(in.G, in.H, in.Delta, sOut, in.MaxIters)
}
