// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newtontr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/trustregion/objective"
)

func quarticOracle() objective.Oracle {
	return objective.FuncOracle{
		ValueFunc: func(x []float64) float64 {
			d := x[0] - 5
			return d * d * d * d
		},
		GradientFunc: func(x []float64) []float64 {
			d := x[0] - 5
			return []float64{4 * d * d * d}
		},
		HessianFunc: func(x []float64) *mat.SymDense {
			d := x[0] - 5
			return mat.NewSymDense(1, []float64{12 * d * d})
		},
	}
}

func TestSolveConvergesOnQuarticMinimum(t *testing.T) {
	res, err := Solve(quarticOracle(), []float64{0}, Options{GTol: 1e-6, MaxIterations: 200})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.X[0], 0.01)
}

func diagonalQuadraticOracle(a []float64) objective.Oracle {
	n := len(a)
	return objective.FuncOracle{
		ValueFunc: func(x []float64) float64 {
			s := 0.0
			for i, xi := range x {
				s += 0.5 * a[i] * xi * xi
			}
			return s
		},
		GradientFunc: func(x []float64) []float64 {
			g := make([]float64, n)
			for i, xi := range x {
				g[i] = a[i] * xi
			}
			return g
		},
		HessianFunc: func(x []float64) *mat.SymDense {
			data := make([]float64, n*n)
			for i := range a {
				data[i*n+i] = a[i]
			}
			return mat.NewSymDense(n, data)
		},
	}
}

func TestSolveConvergesOn2DQuadratic(t *testing.T) {
	oracle := diagonalQuadraticOracle([]float64{1, 0.9})
	res, err := Solve(oracle, []float64{127, 921}, Options{GTol: 1e-6, MaxIterations: 200, DeltaMax: 1e6})
	require.NoError(t, err)
	assert.InDelta(t, 0, res.X[0], 0.01)
	assert.InDelta(t, 0, res.X[1], 0.01)
	assert.True(t, res.GConverged)
}

func TestSolveNegativeDefiniteToyDoesNotPanic(t *testing.T) {
	oracle := objective.FuncOracle{
		ValueFunc: func(x []float64) float64 {
			return x[1] - 500*x[0]*x[0] - 499.5*x[1]*x[1]
		},
		GradientFunc: func(x []float64) []float64 {
			return []float64{-1000 * x[0], 1 - 999*x[1]}
		},
		HessianFunc: func(x []float64) *mat.SymDense {
			return mat.NewSymDense(2, []float64{-1000, 0, 0, -999})
		},
	}
	assert.NotPanics(t, func() {
		res, err := Solve(oracle, []float64{0, 0}, Options{InitialDelta: 1e-2, DeltaMax: 1, MaxIterations: 5})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.NumIter, 1)
	})
}

func TestSolvePoisonedHessianNeverConverges(t *testing.T) {
	oracle := objective.FuncOracle{
		ValueFunc:    func(x []float64) float64 { return 0.5 * (x[0]*x[0] + x[1]*x[1]) },
		GradientFunc: func(x []float64) []float64 { return []float64{x[0], x[1]} },
		HessianFunc: func(x []float64) *mat.SymDense {
			nan := math.NaN()
			return mat.NewSymDense(2, []float64{nan, nan, nan, nan})
		},
	}
	res, err := Solve(oracle, []float64{1, 1}, Options{MaxIterations: 10})
	require.NoError(t, err)
	assert.False(t, res.FConverged)
	assert.False(t, res.GConverged)
	assert.False(t, res.XConverged)
}

func TestSolveNegativeDeltaMinIsConfigError(t *testing.T) {
	_, err := Solve(diagonalQuadraticOracle([]float64{1, 1}), []float64{1, 1}, Options{DeltaMin: -1.0})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "DeltaMin", cfgErr.Field)
}

func TestSolveDimensionMismatchReturnsError(t *testing.T) {
	oracle := objective.FuncOracle{
		ValueFunc:    func(x []float64) float64 { return 0 },
		GradientFunc: func(x []float64) []float64 { return []float64{0, 0} }, // wrong length
		HessianFunc:  func(x []float64) *mat.SymDense { return mat.NewSymDense(1, []float64{1}) },
	}
	_, err := Solve(oracle, []float64{1}, Options{})
	var dimErr *DimensionError
	require.True(t, errors.As(err, &dimErr))
}

func TestSolveStoresTraceWhenRequested(t *testing.T) {
	res, err := Solve(quarticOracle(), []float64{0}, Options{GTol: 1e-6, MaxIterations: 200, StoreTrace: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Trace)
	assert.Equal(t, 0, res.Trace[0].Iter)
}

func TestSolveCallbackCanHaltEarly(t *testing.T) {
	calls := 0
	cb := TraceSinkFunc(func(r TraceRecord) error {
		calls++
		if calls == 2 {
			return errors.New("stop")
		}
		return nil
	})
	res, err := Solve(quarticOracle(), []float64{0}, Options{GTol: 1e-6, MaxIterations: 200, Callback: cb})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.False(t, res.GConverged)
}
