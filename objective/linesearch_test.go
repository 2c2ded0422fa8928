// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objective

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// phi and its derivative model a 1-D slice through a convex bowl centered
// at alpha=3, with phi(0)=9 and phi'(0)=-6, a clear descent direction.
func phi(alpha float64) float64     { d := alpha - 3; return d * d }
func phiPrime(alpha float64) float64 { return 2 * (alpha - 3) }

func runSearch(t *testing.T, tol Tolerances, stp0 float64) (float64, SearchState, int) {
	t.Helper()
	s := NewMoreThuenteSearch(tol)
	f0, g0 := phi(0), phiPrime(0)
	stp, state := s.Step(f0, g0, stp0)
	require.NotZero(t, state&SearchNeedEval, "unexpected immediate state %v", state)

	iters := 0
	for state == SearchNeedEval && iters < 50 {
		f, g := phi(stp), phiPrime(stp)
		stp, state = s.Step(f, g, stp)
		iters++
	}
	return stp, state, iters
}

func TestMoreThuenteSearchConvergesToStrongWolfeStep(t *testing.T) {
	tol := Tolerances{Alpha: 1e-4, Beta: 0.9, Eps: 1e-10, Lower: 0, Upper: 10}
	stp, state, iters := runSearch(t, tol, 1.0)

	require.Equal(t, SearchConverged, state)
	require.Less(t, iters, 20)

	f0, g0 := phi(0), phiPrime(0)
	f, g := phi(stp), phiPrime(stp)
	assert.LessOrEqual(t, f, f0+tol.Alpha*stp*g0, "sufficient decrease must hold")
	assert.LessOrEqual(t, math.Abs(g), tol.Beta*math.Abs(g0), "curvature condition must hold")
}

func TestMoreThuenteSearchRejectsNonDescentInitialSlope(t *testing.T) {
	tol := Tolerances{Alpha: 1e-4, Beta: 0.9, Eps: 1e-10, Lower: 0, Upper: 10}
	s := NewMoreThuenteSearch(tol)
	_, state := s.Step(9, 6 /* positive slope, not descent */, 1.0)
	assert.Equal(t, ErrNonDescentSlope, state)
}

func TestMoreThuenteSearchRejectsInitialStepOutsideBounds(t *testing.T) {
	tol := Tolerances{Alpha: 1e-4, Beta: 0.9, Eps: 1e-10, Lower: 0, Upper: 1}
	s := NewMoreThuenteSearch(tol)
	_, state := s.Step(9, -6, 5.0)
	assert.Equal(t, ErrStepAboveUpper, state)
}

func TestMoreThuenteSearchTightBetaTakesMoreIterations(t *testing.T) {
	loose := Tolerances{Alpha: 1e-4, Beta: 0.9, Eps: 1e-10, Lower: 0, Upper: 10}
	tight := Tolerances{Alpha: 1e-4, Beta: 0.1, Eps: 1e-10, Lower: 0, Upper: 10}

	_, stateLoose, itersLoose := runSearch(t, loose, 1.0)
	_, stateTight, itersTight := runSearch(t, tight, 1.0)

	require.Equal(t, SearchConverged, stateLoose)
	require.Equal(t, SearchConverged, stateTight)
	assert.GreaterOrEqual(t, itersTight, itersLoose)
}
