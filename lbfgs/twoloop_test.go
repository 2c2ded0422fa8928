// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lbfgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoLoopRecursionMatchesNewtonDirectionOnQuadratic(t *testing.T) {
	// f(x) = ½xᵀAx with A = diag(2, 5, 10). Feeding the two-loop recursion
	// n axis-aligned secant pairs (dxᵢ = eᵢ, dgᵢ = Adxᵢ = aᵢeᵢ) is the
	// textbook instance of "after m=n steps the direction equals the
	// Newton direction": each pair is exactly an eigenvector of A, so the
	// backward pass isolates and zeroes every coordinate of g in turn and
	// the forward pass reassembles A⁻¹g exactly, independent of pair order.
	a := []float64{2, 5, 10}
	hist := NewHistory(3)
	for i, ai := range a {
		dx := make([]float64, 3)
		dg := make([]float64, 3)
		dx[i] = 1
		dg[i] = ai
		require.True(t, hist.Update(dx, dg))
	}
	require.Equal(t, 3, hist.K())

	g := []float64{3, -4, 7}
	s := TwoLoopRecursion(g, hist, Options{})

	for i := range g {
		want := -g[i] / a[i]
		assert.InDelta(t, want, s[i], 1e-9)
	}
}

func TestTwoLoopRecursionEmptyHistoryIsSteepestDescent(t *testing.T) {
	hist := NewHistory(5)
	g := []float64{1, 2, 3}
	s := TwoLoopRecursion(g, hist, Options{})
	for i := range g {
		assert.InDelta(t, -g[i], s[i], 1e-12)
	}
}

func TestTwoLoopRecursionScaleInvH0SuppressedOnFreshStart(t *testing.T) {
	hist := NewHistory(5)
	require.True(t, hist.Update([]float64{1, 0}, []float64{2, 0}))
	require.Equal(t, 1, hist.K())

	g := []float64{1, 1}
	withScale := TwoLoopRecursion(g, hist, Options{ScaleInvH0: true})
	withoutScale := TwoLoopRecursion(g, hist, Options{ScaleInvH0: false})

	assert.Equal(t, withoutScale, withScale, "scaling must be suppressed at pseudo-iteration 1")
}

func TestTwoLoopRecursionPreconditionerAppliesWhenNotScaling(t *testing.T) {
	hist := NewHistory(5)
	precond := func(v []float64) []float64 {
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = x * 2
		}
		return out
	}
	g := []float64{1, -1}
	s := TwoLoopRecursion(g, hist, Options{Precond: precond})
	assert.InDelta(t, -2, s[0], 1e-12)
	assert.InDelta(t, 2, s[1], 1e-12)
}
