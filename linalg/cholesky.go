// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CholFactor is the LINPACK-style factorization A = Rᵀ R with R upper
// triangular, stored row-major (lda = N). OK is false when A is not positive
// definite or contains a non-finite entry; R is left as the partial
// factorization LINPACK itself would leave behind (unusable, never nil).
type CholFactor struct {
	N  int
	R  []float64 // row-major N×N upper triangular
	OK bool
}

// Cholesky factors a (defensively symmetrized) matrix. It never panics: a
// non-positive-definite or non-finite input yields OK=false, not an error.
func Cholesky(h *mat.SymDense) CholFactor {
	n := h.SymmetricDim()
	a := make([]float64, n*n)
	if !finiteSym(h) {
		return CholFactor{N: n, R: a, OK: false}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.5 * (h.At(i, j) + h.At(j, i))
			a[i*n+j] = v
		}
	}
	info := dpofa(a, n, n)
	return CholFactor{N: n, R: a, OK: info == 0}
}

// dpofa factors a symmetric positive definite matrix A = Rᵀ * R.
//
// Only the diagonal and upper triangle of a (row-major, leading dimension
// lda) are read; the strict lower triangle is left unaltered. On success the
// upper triangle of a is overwritten with R and info is 0. Otherwise info
// holds the index of the leading minor that failed to be positive definite,
// and a is left as a partial, unusable factorization.
func dpofa(a []float64, lda, n int) (info int) {
	if n > 0 && lda*n > len(a) {
		panic("bound check error")
	}
	for j := 0; j < n; j++ {
		info = j + 1
		s := 0.0
		for k := 0; k < j; k++ {
			t := a[k*lda+j] - ddot(k, a[k:], lda, a[j:], lda)
			t /= a[k*lda+k]
			a[k*lda+j] = t
			s += t * t
		}
		s = a[j*lda+j] - s
		if s <= 0.0 {
			return
		}
		a[j*lda+j] = math.Sqrt(s)
	}
	return 0
}

// Solve returns x solving A x = b for the factored A, using two triangular
// solves against R. Returns nil if the factorization was not OK.
func (c CholFactor) Solve(b []float64) []float64 {
	if !c.OK {
		return nil
	}
	x := append([]float64(nil), b...)
	// A = Rᵀ R: solve Rᵀ y = b, then R x = y.
	TriangularSolve(c.R, c.N, c.N, x, SolveUpperT)
	TriangularSolve(c.R, c.N, c.N, x, SolveUpperN)
	return x
}
