// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEighReconstructs(t *testing.T) {
	h := mat.NewSymDense(3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	eig := Eigh(h)
	require.True(t, eig.OK)
	require.Len(t, eig.Values, 3)

	for i := 1; i < len(eig.Values); i++ {
		assert.LessOrEqual(t, eig.Values[i-1], eig.Values[i]+1e-12, "eigenvalues must be ascending")
	}

	// Reconstruct H from Q Λ Qᵀ and compare entrywise.
	n, _ := eig.Vectors.Dims()
	var recon mat.Dense
	lambda := mat.NewDiagDense(n, eig.Values)
	recon.Mul(eig.Vectors, lambda)
	var reconFull mat.Dense
	reconFull.Mul(&recon, eig.Vectors.T())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.InDelta(t, h.At(i, j), reconFull.At(i, j), 1e-8)
		}
	}
}

func TestEighNonFiniteDoesNotPanic(t *testing.T) {
	h := mat.NewSymDense(2, []float64{math.NaN(), 0, 0, 1})
	assert.NotPanics(t, func() {
		eig := Eigh(h)
		assert.False(t, eig.OK)
		for _, v := range eig.Values {
			assert.True(t, math.IsNaN(v))
		}
	})
}

func TestCholeskySolvesPositiveDefinite(t *testing.T) {
	h := mat.NewSymDense(3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	fac := Cholesky(h)
	require.True(t, fac.OK)

	b := []float64{1, 2, 3}
	x := fac.Solve(b)
	require.NotNil(t, x)

	// Verify H x ≈ b.
	for i := 0; i < 3; i++ {
		got := 0.0
		for j := 0; j < 3; j++ {
			got += h.At(i, j) * x[j]
		}
		assert.InDelta(t, b[i], got, 1e-8)
	}
}

func TestCholeskyRejectsIndefinite(t *testing.T) {
	h := mat.NewSymDense(2, []float64{-1, 0, 0, -1})
	fac := Cholesky(h)
	assert.False(t, fac.OK)
	assert.Nil(t, fac.Solve([]float64{1, 1}))
}

func TestCholeskyNonFinite(t *testing.T) {
	h := mat.NewSymDense(2, []float64{math.Inf(1), 0, 0, 1})
	assert.NotPanics(t, func() {
		fac := Cholesky(h)
		assert.False(t, fac.OK)
	})
}

func TestTriangularSolveRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(6)
		data := make([]float64, n*n)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				data[i*n+j] = rng.NormFloat64()
			}
			data[i*n+i] += 5 // keep the diagonal away from zero
		}
		b := make([]float64, n)
		for i := range b {
			b[i] = rng.NormFloat64()
		}
		x := append([]float64(nil), b...)
		info := TriangularSolve(data, n, n, x, SolveUpperN)
		require.Zero(t, info)

		// Reconstruct b from U x.
		got := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				got[i] += data[i*n+j] * x[j]
			}
		}
		for i := range b {
			assert.InDelta(t, b[i], got[i], 1e-8)
		}
	}
}

func TestInfNorm(t *testing.T) {
	h := mat.NewSymDense(2, []float64{1, -2, -2, 3})
	assert.InDelta(t, 5, InfNorm(h), 1e-12)
}
