// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objective

import "math"

const (
	half  = 0.5
	p66   = 0.66
	two   = 2.0
	three = 3.0

	xtrapLower = 1.1
	xtrapUpper = 4.0
)

const (
	stageArmijo = 1
	stageWolfe  = 2
)

// SearchState is the task/status code a LineSearch reports after each step:
// either "evaluate f and g at the returned trial step" or a terminal
// convergence/warning/error outcome.
type SearchState int

const (
	SearchStart      SearchState = 0
	SearchConverged  SearchState = 1 << (4 + iota)
	SearchNeedEval
	SearchError
	SearchWarning
)

const (
	ErrStepBelowLower = SearchError | (1 + iota)
	ErrStepAboveUpper
	ErrNonDescentSlope
	ErrNegativeAlpha
	ErrNegativeBeta
	ErrNegativeEps
	ErrNegativeLower
	ErrUpperBelowLower

	WarnRoundingLimit = SearchWarning | (1 + iota)
	WarnIntervalTiny
	WarnReachedUpper
	WarnReachedLower
)

// Tolerances configures the sufficient-decrease and curvature acceptance
// thresholds and the admissible step range, per Moré & Thuente (1994).
type Tolerances struct {
	// Alpha is the Armijo sufficient-decrease tolerance, f(λ) ≤ f(0) + αλf'(0).
	Alpha float64
	// Beta is the curvature tolerance, |f'(λ)| ≤ β|f'(0)|.
	Beta float64
	// Eps is the relative width below which the bracket is declared too
	// small to keep refining.
	Eps float64
	// Lower and Upper bound the admissible step.
	Lower, Upper float64
}

// bracket is the interval [stx, sty] known to contain an acceptable step,
// together with the function/derivative values at its endpoints.
type bracket struct {
	bracketed  bool
	stage      int
	g0, gx, gy float64
	f0, fx, fy float64
	stx, sty   float64
	width      [2]float64
	bound      [2]float64
}

// LineSearch drives a sequence of trial steps along a fixed search
// direction toward one satisfying strong Wolfe conditions. Step is called
// repeatedly: the caller evaluates f and its directional derivative g at
// the previously returned stp, then calls Step again, until the returned
// state is no longer SearchNeedEval.
type LineSearch interface {
	Step(f, g, stp float64) (float64, SearchState)
}

// MoreThuenteSearch implements LineSearch with the safeguarded
// cubic/quadratic/secant step selection from Moré & Thuente (1994),
// ported from the MINPACK-derived dcsrch/dcstep pair.
type MoreThuenteSearch struct {
	tol   Tolerances
	br    bracket
	state SearchState
}

// NewMoreThuenteSearch prepares a search with the given tolerances. Call
// Step with the initial trial step, function value, and directional
// derivative at zero to begin.
func NewMoreThuenteSearch(tol Tolerances) *MoreThuenteSearch {
	return &MoreThuenteSearch{tol: tol, state: SearchStart}
}

// Step advances the search. On the first call f and g must be the value
// and directional derivative at the origin and stp the initial trial step;
// thereafter f, g, stp are the evaluation at the step this method last
// returned.
func (m *MoreThuenteSearch) Step(f, g, stp float64) (float64, SearchState) {
	if m.state == SearchStart {
		return m.start(f, g, stp)
	}
	return m.iterate(f, g, stp)
}

func (m *MoreThuenteSearch) start(f, g, stp float64) (float64, SearchState) {
	tol := m.tol
	switch {
	case stp < tol.Lower:
		m.state = ErrStepBelowLower
	case stp > tol.Upper:
		m.state = ErrStepAboveUpper
	case g >= 0:
		m.state = ErrNonDescentSlope
	case tol.Alpha < 0:
		m.state = ErrNegativeAlpha
	case tol.Beta < 0:
		m.state = ErrNegativeBeta
	case tol.Eps < 0:
		m.state = ErrNegativeEps
	case tol.Lower < 0:
		m.state = ErrNegativeLower
	case tol.Upper < tol.Lower:
		m.state = ErrUpperBelowLower
	}
	if m.state&SearchError != 0 {
		return stp, m.state
	}

	br := &m.br
	br.bracketed = false
	br.stage = stageArmijo
	br.f0, br.g0 = f, g
	br.width[0] = tol.Upper - tol.Lower
	br.width[1] = br.width[0] / half

	br.stx, br.fx, br.gx = 0, br.f0, br.g0
	br.sty, br.fy, br.gy = 0, br.f0, br.g0
	br.bound[0] = 0
	br.bound[1] = stp + xtrapUpper*stp

	m.state = SearchNeedEval
	return stp, m.state
}

func (m *MoreThuenteSearch) iterate(f, g, stp float64) (float64, SearchState) {
	tol := m.tol
	br := &m.br

	gTest := tol.Alpha * br.g0
	fTest := br.f0 + stp*gTest

	stpMin, stpMax := br.bound[0], br.bound[1]
	switch {
	case br.bracketed && (stp <= stpMin || stp >= stpMax):
		m.state = WarnRoundingLimit
	case br.bracketed && (stpMax-stpMin) <= tol.Eps*stpMax:
		m.state = WarnIntervalTiny
	case stp == tol.Upper && f <= fTest && g <= gTest:
		m.state = WarnReachedUpper
	case stp == tol.Lower && (f > fTest || g >= gTest):
		m.state = WarnReachedLower
	case f <= fTest && math.Abs(g) <= tol.Beta*(-br.g0):
		m.state = SearchConverged
	default:
		m.state = SearchNeedEval
	}
	if m.state&(SearchWarning|SearchConverged) != 0 {
		return stp, m.state
	}

	if br.stage == stageArmijo && f <= fTest && g >= 0 {
		br.stage = stageWolfe
	}

	if br.stage == stageArmijo && f <= br.fx && f > fTest {
		fm := f - stp*gTest
		fxm := br.fx - br.stx*gTest
		fym := br.fy - br.sty*gTest
		gm := g - gTest
		gxm := br.gx - gTest
		gym := br.gy - gTest
		stp = safeguardedStep(&br.stx, &fxm, &gxm, &br.sty, &fym, &gym, stp, fm, gm, &br.bracketed, br.bound)
		br.fx = fxm + br.stx*gTest
		br.fy = fym + br.sty*gTest
		br.gx = gxm + gTest
		br.gy = gym + gTest
	} else {
		stp = safeguardedStep(&br.stx, &br.fx, &br.gx, &br.sty, &br.fy, &br.gy, stp, f, g, &br.bracketed, br.bound)
	}

	if br.bracketed {
		if math.Abs(br.sty-br.stx) >= p66*br.width[1] {
			stp = br.stx + half*(br.sty-br.stx)
		}
		br.width[1] = br.width[0]
		br.width[0] = math.Abs(br.sty - br.stx)
	}

	if br.bracketed {
		stpMin = math.Min(br.stx, br.sty)
		stpMax = math.Max(br.stx, br.sty)
	} else {
		stpMin = stp + xtrapLower*(stp-br.stx)
		stpMax = stp + xtrapUpper*(stp-br.stx)
	}
	br.bound[0], br.bound[1] = stpMin, stpMax

	stp = math.Min(math.Max(stp, tol.Lower), tol.Upper)

	if (br.bracketed && (stp <= stpMin || stp >= stpMax)) || (br.bracketed && stpMax-stpMin <= tol.Eps*stpMax) {
		stp = br.stx
	}

	m.state = SearchNeedEval
	return stp, m.state
}

// safeguardedStep computes a safeguarded trial step from a cubic,
// quadratic, or secant model of the two bracket endpoints and the newest
// evaluation, and updates the bracket in place. It assumes dx and stp-stx
// have opposite signs whenever bracketed is true.
func safeguardedStep(
	stx, fx, dx *float64,
	sty, fy, dy *float64,
	stp, fp, dp float64,
	bracketed *bool, bound [2]float64,
) float64 {
	var gamma, p, q, r, s, stpc, stpf, stpq, theta float64
	stpmin, stpmax := bound[0], bound[1]
	sgnd := dp * (*dx / math.Abs(*dx))

	switch {
	case fp > *fx:
		// Higher function value: the minimizer is bracketed. Prefer the
		// cubic step, falling back to the average with the quadratic step.
		theta = three*(*fx-fp)/(stp-*stx) + *dx + dp
		s = math.Max(math.Max(math.Abs(theta), math.Abs(*dx)), math.Abs(dp))
		gamma = s * math.Sqrt((theta/s)*(theta/s)-(*dx/s)*(dp/s))
		if stp < *stx {
			gamma = -gamma
		}
		p = (gamma - *dx) + theta
		q = ((gamma - *dx) + gamma) + dp
		r = p / q
		stpc = *stx + r*(stp-*stx)
		stpq = *stx + ((*dx/((*fx-fp)/(stp-*stx)+*dx))/two)*(stp-*stx)
		if math.Abs(stpc-*stx) < math.Abs(stpq-*stx) {
			stpf = stpc
		} else {
			stpf = stpc + (stpq-stpc)/two
		}
		*bracketed = true

	case sgnd < 0:
		// Lower function value, opposite-signed derivatives: bracketed.
		// Prefer the cubic step unless the secant step is closer to stp.
		theta = three*(*fx-fp)/(stp-*stx) + *dx + dp
		s = math.Max(math.Max(math.Abs(theta), math.Abs(*dx)), math.Abs(dp))
		gamma = s * math.Sqrt((theta/s)*(theta/s)-(*dx/s)*(dp/s))
		if stp > *stx {
			gamma = -gamma
		}
		p = (gamma - dp) + theta
		q = ((gamma - dp) + gamma) + *dx
		r = p / q
		stpc = stp + r*(*stx-stp)
		stpq = stp + (dp/(dp-*dx))*(*stx-stp)
		if math.Abs(stpc-stp) > math.Abs(stpq-stp) {
			stpf = stpc
		} else {
			stpf = stpq
		}
		*bracketed = true

	case math.Abs(dp) < math.Abs(*dx):
		// Lower function value, same-signed derivatives, decreasing
		// magnitude: compute the cubic step only when it makes sense and
		// safeguard it against the current bracket or trap bounds.
		theta = three*(*fx-fp)/(stp-*stx) + *dx + dp
		s = math.Max(math.Max(math.Abs(theta), math.Abs(*dx)), math.Abs(dp))
		gamma = s * math.Sqrt(math.Max(0, (theta/s)*(theta/s)-(*dx/s)*(dp/s)))
		if stp > *stx {
			gamma = -gamma
		}
		p = (gamma - dp) + theta
		q = (gamma + (*dx - dp)) + gamma
		r = p / q
		if r < 0 && gamma != 0 {
			stpc = stp + r*(*stx-stp)
		} else if stp > *stx {
			stpc = stpmax
		} else {
			stpc = stpmin
		}
		stpq = stp + (dp/(dp-*dx))*(*stx-stp)
		if *bracketed {
			if math.Abs(stpc-stp) < math.Abs(stpq-stp) {
				stpf = stpc
			} else {
				stpf = stpq
			}
			if stp > *stx {
				stpf = math.Min(stp+p66*(*sty-stp), stpf)
			} else {
				stpf = math.Max(stp+p66*(*sty-stp), stpf)
			}
		} else {
			if math.Abs(stpc-stp) > math.Abs(stpq-stp) {
				stpf = stpc
			} else {
				stpf = stpq
			}
			stpf = math.Min(stpmax, stpf)
			stpf = math.Max(stpmin, stpf)
		}

	default:
		// Lower function value, same-signed derivatives, non-decreasing
		// magnitude: bracketed gets the cubic step, otherwise a trap bound.
		if *bracketed {
			theta = three*(fp-*fy)/(*sty-stp) + *dy + dp
			s = math.Max(math.Max(math.Abs(theta), math.Abs(*dy)), math.Abs(dp))
			gamma = s * math.Sqrt(math.Max(0, (theta/s)*(theta/s)-(*dy/s)*(dp/s)))
			if stp > *sty {
				gamma = -gamma
			}
			p = (gamma - dp) + theta
			q = ((gamma - dp) + gamma) + *dy
			r = p / q
			stpf = stp + r*(*sty-stp)
		} else if stp > *stx {
			stpf = stpmax
		} else {
			stpf = stpmin
		}
	}

	if fp > *fx {
		*sty, *fy, *dy = stp, fp, dp
	} else {
		if sgnd < 0 {
			*sty, *fy, *dy = *stx, *fx, *dx
		}
		*stx, *fx, *dx = stp, fp, dp
	}

	return stpf
}
