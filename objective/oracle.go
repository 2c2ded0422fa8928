// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objective collects the abstract collaborators the optimization
// core consumes but does not itself implement: an objective oracle capable
// of value/gradient/Hessian evaluation, a finite-difference adapter for
// oracles that only supply a subset of those, and a line-search adapter for
// LBFGS-driven callers.
package objective

import "gonum.org/v1/gonum/mat"

// Oracle is the three-operation capability the trust-region outer loop
// consumes: value, gradient, and Hessian at a point. Implementations are
// free to cache between calls at the same x; the outer loop never assumes
// otherwise.
type Oracle interface {
	Value(x []float64) float64
	Gradient(x []float64) []float64
	Hessian(x []float64) *mat.SymDense
}

// FuncOracle adapts three independent functions into an Oracle without
// requiring a caller-defined named type, mirroring a function-valued
// capability over an interface where a closure suffices.
type FuncOracle struct {
	ValueFunc    func(x []float64) float64
	GradientFunc func(x []float64) []float64
	HessianFunc  func(x []float64) *mat.SymDense
}

func (f FuncOracle) Value(x []float64) float64        { return f.ValueFunc(x) }
func (f FuncOracle) Gradient(x []float64) []float64    { return f.GradientFunc(x) }
func (f FuncOracle) Hessian(x []float64) *mat.SymDense { return f.HessianFunc(x) }
