// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg provides the symmetric linear-algebra primitives consumed
// by the trust-region subproblem solver: eigendecomposition, a definite-check
// Cholesky factorization, and triangular solves. None of these raise on
// pathological input; non-finite entries propagate to non-finite outputs.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Eigen holds the symmetric eigendecomposition H = Q diag(Values) Qᵀ with
// Values ascending, matching LAPACK's dsyev convention.
type Eigen struct {
	Values  []float64 // ascending
	Vectors *mat.Dense // columns are the orthonormal eigenvectors
	OK      bool       // false when the input was non-finite or the factorization failed
}

// Eigh computes the symmetric eigendecomposition of a (defensively
// symmetrized) matrix. It never panics: a non-finite entry in h short-circuits
// to a non-finite, OK=false result instead of invoking the LAPACK routine.
func Eigh(h *mat.SymDense) Eigen {
	n := h.SymmetricDim()

	if !finiteSym(h) {
		values := make([]float64, n)
		for i := range values {
			values[i] = math.NaN()
		}
		return Eigen{Values: values, Vectors: nil, OK: false}
	}

	sym := symmetrize(h)

	var es mat.EigenSym
	ok := es.Factorize(sym, true)
	if !ok {
		values := make([]float64, n)
		for i := range values {
			values[i] = math.NaN()
		}
		return Eigen{Values: values, Vectors: nil, OK: false}
	}

	values := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	return Eigen{Values: values, Vectors: &vecs, OK: true}
}

// symmetrize returns H ← ½(H + Hᵀ) as a defensive measure before
// factorization. mat.SymDense is already symmetric by construction, but a
// caller assembling one from a possibly-asymmetric source (e.g. a
// finite-difference Hessian) should not have to symmetrize by hand first.
func symmetrize(h *mat.SymDense) *mat.SymDense {
	n := h.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(h.At(i, j)+h.At(j, i)))
		}
	}
	return out
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

// InfNorm returns the matrix infinity norm (max absolute row sum), used by
// the positive-definiteness threshold ε_pd = 10⁻¹⁰·‖H‖∞ and the boundary
// root-finder's upper safeguard λ_upper.
func InfNorm(h *mat.SymDense) float64 {
	n := h.SymmetricDim()
	max := 0.0
	for i := 0; i < n; i++ {
		row := 0.0
		for j := 0; j < n; j++ {
			row += math.Abs(h.At(i, j))
		}
		if row > max {
			max = row
		}
	}
	return max
}
