// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newtontr

import (
	"math"
	"time"

	"github.com/curioloop/trustregion/subproblem"
)

// Options is the outer loop's only configuration surface. All fields are
// optional; zero values pick the documented default.
type Options struct {
	// InitialDelta is the starting trust-region radius. Default 1.0.
	InitialDelta float64
	// DeltaMax caps the radius. Default +Inf.
	DeltaMax float64
	// DeltaMin floors the radius; must be ≥ 0. Default 0.0.
	DeltaMin float64
	// Eta is the step-acceptance threshold, 0 ≤ Eta < 0.25. Default 0.1.
	Eta float64
	// RhoLower and RhoUpper drive the Δ update. Defaults 0.25 and 0.75.
	RhoLower, RhoUpper float64

	// GTol, FTol, XTol are convergence tolerances on ‖g‖∞, the relative
	// change in f, and the change in x, respectively. Zero disables the FTol
	// and XTol checks; with GTol zero, only an exactly zero gradient counts
	// as converged.
	GTol, FTol, XTol float64

	// MaxIterations bounds the outer loop. Default 100.
	MaxIterations int
	// MaxSubIters bounds the subproblem root-finder. Default subproblem.DefaultMaxIters.
	MaxSubIters int
	// TimeLimit bounds wall-clock time, checked once per outer iteration.
	// Zero disables the check.
	TimeLimit time.Duration

	// AllowFIncreases, when true, drops the finite-f requirement from the
	// acceptance test; ρ must still exceed Eta. ρ is -Inf for a non-finite
	// f and negative for an increase in f, so the flag does not make either
	// kind of step acceptable.
	AllowFIncreases bool

	// StoreTrace appends a TraceRecord per iteration to the result.
	StoreTrace bool
	// ShowTrace prints a progress line per iteration via Logger.
	ShowTrace bool
	// ExtendedTrace additionally populates TraceRecord.X and .G.
	ExtendedTrace bool

	// Callback, if set, is invoked with each iteration's TraceRecord. A
	// returned error is treated as a soft line-search-style failure: the
	// loop stops but no convergence flag is set.
	Callback TraceSink

	// Logger receives the ShowTrace output: progress lines on Msg and, at
	// LogVerbose, x and g on Out. A nil Logger disables that printing;
	// StoreTrace records are kept in the result either way.
	Logger *Logger
}

// resolved is the validated, defaulted configuration the driver actually
// consumes.
type resolved struct {
	Options
}

// resolve validates o and fills in defaults, following the same
// switch-over-first-offender pattern the rest of this module's
// configuration surfaces use: the first invalid field wins and no
// iteration runs.
func (o Options) resolve() (resolved, error) {
	r := resolved{Options: o}

	if r.InitialDelta == 0 {
		r.InitialDelta = 1.0
	}
	if r.DeltaMax == 0 {
		r.DeltaMax = math.Inf(1)
	}
	if r.Eta == 0 {
		r.Eta = 0.1
	}
	if r.RhoLower == 0 {
		r.RhoLower = 0.25
	}
	if r.RhoUpper == 0 {
		r.RhoUpper = 0.75
	}
	if r.MaxIterations == 0 {
		r.MaxIterations = 100
	}
	if r.MaxSubIters == 0 {
		r.MaxSubIters = subproblem.DefaultMaxIters
	}

	switch {
	case r.DeltaMin < 0:
		return r, &ConfigError{Field: "DeltaMin", Reason: "must be ≥ 0"}
	case r.DeltaMax <= r.DeltaMin:
		return r, &ConfigError{Field: "DeltaMax", Reason: "must be greater than DeltaMin"}
	case r.InitialDelta <= 0:
		return r, &ConfigError{Field: "InitialDelta", Reason: "must be positive"}
	case r.InitialDelta > r.DeltaMax:
		return r, &ConfigError{Field: "InitialDelta", Reason: "must not exceed DeltaMax"}
	case r.Eta < 0 || r.Eta >= 0.25:
		return r, &ConfigError{Field: "Eta", Reason: "must satisfy 0 ≤ Eta < 0.25"}
	case r.RhoLower < 0 || r.RhoLower > r.RhoUpper:
		return r, &ConfigError{Field: "RhoLower", Reason: "must satisfy 0 ≤ RhoLower ≤ RhoUpper"}
	case r.RhoUpper > 1:
		return r, &ConfigError{Field: "RhoUpper", Reason: "must be ≤ 1"}
	case r.GTol < 0:
		return r, &ConfigError{Field: "GTol", Reason: "must be ≥ 0"}
	case r.MaxIterations < 1:
		return r, &ConfigError{Field: "MaxIterations", Reason: "must be at least 1"}
	case r.MaxSubIters < 1:
		return r, &ConfigError{Field: "MaxSubIters", Reason: "must be at least 1"}
	case r.TimeLimit < 0:
		return r, &ConfigError{Field: "TimeLimit", Reason: "must be ≥ 0"}
	}

	return r, nil
}
