// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package newtontr implements the outer trust-region Newton loop: it
// repeatedly asks an objective.Oracle for (f, g, H), delegates the
// constrained-quadratic step to the subproblem package, and drives Δ up or
// down by the actual/predicted reduction ratio until it converges or gives
// up.
package newtontr

import "gonum.org/v1/gonum/mat"

// TRState is the trust-region driver's working state at the start of an
// iteration: the current iterate, its evaluation, and the current radius
// together with the radius's floor and ceiling.
type TRState struct {
	X []float64
	F float64
	G []float64
	H *mat.SymDense

	Delta    float64
	Eta      float64
	DeltaMin float64
	DeltaMax float64
}
