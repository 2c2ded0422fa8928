// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newtontr

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/trustregion/objective"
	"github.com/curioloop/trustregion/subproblem"
)

// Solve runs the trust-region Newton loop starting from x0 against oracle
// until convergence, the iteration budget, or the time limit is reached.
// A non-nil error is only ever a ConfigError or DimensionError — numerical
// pathology never returns an error, it is reported through the result's
// convergence flags instead.
func Solve(oracle objective.Oracle, x0 []float64, opts Options) (OptimizationResult, error) {
	cfg, err := opts.resolve()
	if err != nil {
		return OptimizationResult{}, err
	}

	n := len(x0)
	if n == 0 {
		return OptimizationResult{}, &DimensionError{Want: 1, Got: 0, What: "x0"}
	}

	d := &driver{oracle: oracle, cfg: cfg, n: n}
	return d.mainLoop(x0)
}

type driver struct {
	oracle  objective.Oracle
	cfg     resolved
	n       int
	numEval int
}

func (d *driver) mainLoop(x0 []float64) (OptimizationResult, error) {
	cfg := d.cfg
	n := d.n
	start := time.Now()

	st := &TRState{
		X:        append([]float64(nil), x0...),
		Eta:      cfg.Eta,
		Delta:    cfg.InitialDelta,
		DeltaMin: cfg.DeltaMin,
		DeltaMax: cfg.DeltaMax,
	}
	st.F = d.oracle.Value(st.X)
	st.G = d.oracle.Gradient(st.X)
	st.H = d.oracle.Hessian(st.X)
	d.numEval++

	if len(st.G) != n {
		return OptimizationResult{}, &DimensionError{Want: n, Got: len(st.G), What: "gradient"}
	}
	if st.H.SymmetricDim() != n {
		return OptimizationResult{}, &DimensionError{Want: n, Got: st.H.SymmetricDim(), What: "hessian"}
	}

	result := OptimizationResult{X: st.X, F: st.F}
	sOut := make([]float64, n)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		if cfg.TimeLimit > 0 && time.Since(start) >= cfg.TimeLimit {
			break
		}

		fFinite := isFinite(st.F)
		gFinite, gInf := finiteInfNorm(st.G)
		hFinite := finiteSym(st.H, n)
		allFinite := fFinite && gFinite && hFinite

		if allFinite && gInf <= cfg.GTol {
			result.GConverged = true
			d.trace(&result, iter, st.F, gInf, st.Delta, 0, false, true, false, st.X, st.G)
			result.NumIter = iter
			break
		}
		if st.Delta <= st.DeltaMin {
			result.NumIter = iter
			break
		}

		out := subproblem.Output{S: sOut}
		if allFinite {
			out = subproblem.SolveTR(st.G, st.H, st.Delta, sOut, cfg.MaxSubIters)
		}

		xNew := make([]float64, n)
		for i := range st.X {
			xNew[i] = st.X[i] + out.S[i]
		}

		var fNew float64
		fNewFinite := false
		if allFinite {
			fNew = d.oracle.Value(xNew)
			d.numEval++
			fNewFinite = isFinite(fNew)
		}

		rho := math.Inf(-1)
		if allFinite && fNewFinite && out.M < 0 {
			rho = (st.F - fNew) / (-out.M)
		}

		stepNorm := norm2(out.S)
		onBoundary := stepNorm >= st.Delta*(1-1e-10)

		switch {
		case rho < cfg.RhoLower:
			st.Delta = math.Max(0.25*stepNorm, st.DeltaMin)
		case rho > cfg.RhoUpper && onBoundary:
			st.Delta = math.Min(2*st.Delta, st.DeltaMax)
		}
		if st.Delta < st.DeltaMin {
			st.Delta = st.DeltaMin
		}

		accept := allFinite && (fNewFinite || cfg.AllowFIncreases) && rho > st.Eta

		xConverged, fConverged := false, false
		if accept {
			if cfg.XTol > 0 && stepNorm <= cfg.XTol {
				xConverged = true
			}
			if cfg.FTol > 0 {
				denom := math.Max(math.Max(math.Abs(st.F), math.Abs(fNew)), 1)
				if math.Abs(st.F-fNew)/denom <= cfg.FTol {
					fConverged = true
				}
			}

			st.X, st.F = xNew, fNew
			st.G = d.oracle.Gradient(st.X)
			st.H = d.oracle.Hessian(st.X)
			d.numEval++
			result.X, result.F = st.X, st.F
		}

		d.trace(&result, iter, st.F, gInf, st.Delta, rho, out.HardCase, accept, !allFinite, st.X, st.G)

		if cb := cfg.Callback; cb != nil {
			rec := TraceRecord{Iter: iter, F: st.F, GradInf: gInf, Delta: st.Delta, Rho: rho, HardCase: out.HardCase, Accepted: accept, NonFinite: !allFinite}
			if err := cb.Record(rec); err != nil {
				result.NumIter = iter + 1
				result.NumEval = d.numEval
				result.Elapsed = time.Since(start)
				return result, nil
			}
		}

		result.NumIter = iter + 1
		if xConverged {
			result.XConverged = true
			break
		}
		if fConverged {
			result.FConverged = true
			break
		}
	}

	result.NumEval = d.numEval
	result.Elapsed = time.Since(start)
	return result, nil
}

func (d *driver) trace(result *OptimizationResult, iter int, f, gInf, delta, rho float64, hardCase, accepted, nonFinite bool, x, g []float64) {
	logger := d.cfg.Logger
	if logger.enabled(LogLast) && d.cfg.ShowTrace {
		if logger.enabled(LogEval) {
			logger.logf("iter=%d f=%g |g|inf=%g delta=%g rho=%g accepted=%v\n", iter, f, gInf, delta, rho, accepted)
		} else {
			logger.logf("iter=%d f=%g\n", iter, f)
		}
		if logger.enabled(LogVerbose) {
			logger.dataf("x=%v g=%v\n", x, g)
		}
	}

	if !d.cfg.StoreTrace {
		return
	}
	rec := TraceRecord{Iter: iter, F: f, GradInf: gInf, Delta: delta, Rho: rho, HardCase: hardCase, Accepted: accepted, NonFinite: nonFinite}
	if d.cfg.ExtendedTrace {
		rec.X = append([]float64(nil), x...)
		rec.G = append([]float64(nil), g...)
	}
	result.Trace = append(result.Trace, rec)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteInfNorm(v []float64) (finite bool, inf float64) {
	finite = true
	for _, vi := range v {
		if !isFinite(vi) {
			finite = false
			continue
		}
		if a := math.Abs(vi); a > inf {
			inf = a
		}
	}
	return finite, inf
}

func finiteSym(h *mat.SymDense, n int) bool {
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if !isFinite(h.At(i, j)) {
				return false
			}
		}
	}
	return true
}

func norm2(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
