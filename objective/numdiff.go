// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objective

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
var cubeEps = math.Pow(math.Nextafter(1, 2)-1, 1.0/3.0)

// Method selects the finite-difference stencil.
type Method int

const (
	// Forward is the first-order-accurate one-sided difference.
	Forward Method = iota
	// Central is the second-order-accurate two-sided difference, falling
	// back to a second-order one-sided stencil near a bound.
	Central
)

// Bound constrains an independent variable's admissible range; either side
// may be left as an infinity to leave that side unconstrained.
type Bound struct {
	Lower, Upper float64
}

// NumDiffOracle turns a bare scalar-valued function into a full Oracle by
// estimating the gradient with a finite-difference stencil on Value, and
// the Hessian with a second finite-difference stencil applied to that
// estimated (or supplied) gradient. Ported from a scipy-derived
// step-selection and stencil scheme originally used for general Jacobian
// estimation, retargeted from an m-vector-valued function onto the
// gradient/Hessian pair the trust-region loop needs.
type NumDiffOracle struct {
	N int
	// ValueFunc is required; it is evaluated exactly, never differenced.
	ValueFunc func(x []float64) float64
	// GradientFunc, if set, is used directly instead of differencing
	// ValueFunc — only the Hessian is then estimated by finite differences.
	GradientFunc func(x []float64) []float64

	GradMethod Method
	HessMethod Method

	// Bounds limits the range of x perturbed during differencing; nil means
	// unconstrained in every coordinate.
	Bounds []Bound

	// RelStep and AbsStep override the automatic step-size selection; see
	// absoluteStep for the precedence between them.
	RelStep float64
	AbsStep float64
}

func (o *NumDiffOracle) Value(x []float64) float64 { return o.ValueFunc(x) }

func (o *NumDiffOracle) Gradient(x []float64) []float64 {
	if o.GradientFunc != nil {
		return o.GradientFunc(x)
	}
	scalar := func(y []float64) []float64 { return []float64{o.ValueFunc(y)} }
	jac := o.diffVector(x, 1, scalar, o.GradMethod)
	return jac // n*1 flattened is exactly the gradient
}

func (o *NumDiffOracle) Hessian(x []float64) *mat.SymDense {
	n := o.N
	grad := o.Gradient
	jac := o.diffVector(x, n, grad, o.HessMethod) // column-major n*n: jac[i+j*n] = ∂gⱼ/∂xᵢ

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// average the two finite-difference estimates of the mixed
			// partial to symmetrize away stencil noise.
			v := 0.5 * (jac[i+j*n] + jac[j+i*n])
			h.SetSym(i, j, v)
		}
	}
	return h
}

// diffVector estimates the Jacobian (flattened column-major, n*m entries,
// jac[i+j*n] = ∂fⱼ/∂xᵢ) of f: R^n -> R^m at x by finite differences,
// following the same bound-aware step adjustment as the gradient stencil.
func (o *NumDiffOracle) diffVector(x []float64, m int, f func([]float64) []float64, method Method) []float64 {
	n := o.N
	h, oneSide := o.stepSizes(x, method)

	jac := make([]float64, n*m)
	f0 := f(x)

	xw := append([]float64(nil), x...)
	if method == Forward {
		for i := 0; i < n; i++ {
			t := xw[i]
			xw[i] = t + h[i]
			f1 := f(xw)
			d := 1.0 / h[i]
			for j := 0; j < m; j++ {
				jac[i+j*n] = (f1[j] - f0[j]) * d
			}
			xw[i] = t
		}
		return jac
	}

	for i := 0; i < n; i++ {
		t := xw[i]
		s := h[i]
		d := 1.0 / (2 * s)
		if oneSide[i] {
			xw[i] = t + s
			f1 := f(xw)
			xw[i] = t + 2*s
			f2 := f(xw)
			for j := 0; j < m; j++ {
				jac[i+j*n] = (4*f1[j] - 3*f0[j] - f2[j]) * d
			}
		} else {
			xw[i] = t - s
			f1 := f(xw)
			xw[i] = t + s
			f2 := f(xw)
			for j := 0; j < m; j++ {
				jac[i+j*n] = (f2[j] - f1[j]) * d
			}
		}
		xw[i] = t
	}
	return jac
}

// stepSizes computes the per-coordinate absolute step and, for the central
// method, whether that coordinate must fall back to a one-sided stencil
// because a two-sided step would cross a bound.
func (o *NumDiffOracle) stepSizes(x []float64, method Method) (h []float64, oneSide []bool) {
	n := o.N
	h = make([]float64, n)
	oneSide = make([]bool, n)

	eps := sqrtEps
	if method == Central {
		eps = cubeEps
	}

	for i, v := range x {
		s := o.AbsStep
		if s == 0 {
			rel := o.RelStep
			if rel == 0 {
				h[i] = math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
				continue
			}
			s = math.Copysign(rel, v) * math.Abs(v)
		}
		if (v+s)-v == 0 {
			s = math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
		}
		h[i] = s
	}

	if method == Central {
		for i := range h {
			h[i] = math.Abs(h[i])
		}
	}

	if o.Bounds == nil {
		return h, oneSide
	}

	for i, v := range x {
		lb, ub := o.Bounds[i].Lower, o.Bounds[i].Upper
		ld, ud := v-lb, ub-v
		switch method {
		case Forward:
			fits := math.Abs(h[i]) < math.Max(ld, ud)
			step := v + h[i]
			violated := step < lb || step > ub
			if violated && fits {
				h[i] = -h[i]
			} else if !fits {
				if ud >= ld {
					h[i] = ud
				} else {
					h[i] = -ld
				}
			}
		case Central:
			central := ld >= h[i] && ud >= h[i]
			if !central {
				if ud >= ld {
					h[i] = math.Min(h[i], 0.5*ud)
				} else {
					h[i] = -math.Min(h[i], 0.5*ld)
				}
				oneSide[i] = true
			}
			minDist := math.Min(ud, ld)
			if !central && math.Abs(h[i]) <= minDist {
				h[i] = minDist
				oneSide[i] = false
			}
		}
	}
	return h, oneSide
}
