// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lbfgs implements the two-loop recursion used to turn a bounded
// history of (dx, dg) correction pairs into a quasi-Newton search direction,
// independent of any particular line search or optimizer driver.
package lbfgs

import "math"

// Pair is one stored correction: dxᵢ = xᵢ - xᵢ₋₁, dgᵢ = gᵢ - gᵢ₋₁, and the
// cached curvature reciprocal ρᵢ = 1/(dxᵢ·dgᵢ).
type Pair struct {
	Dx, Dg []float64
	Rho    float64
}

// History is a fixed-capacity ring buffer of correction pairs: capacity m,
// indexed by a head/tail/col triple advanced modulo m over a fixed backing
// slice, so a full history never reallocates. A pair whose curvature
// condition dxᵀdg > 0 fails is never stored; instead the whole history is
// reset and the pseudo-iteration counter returns to 0.
type History struct {
	capacity          int
	slots             []Pair
	head, tail, col   int
	updates           int // pseudo-iteration counter k, uncapped, reset to 0 on curvature failure
}

// NewHistory allocates a history with the given capacity (m ≥ 1).
func NewHistory(capacity int) *History {
	if capacity < 1 {
		panic("lbfgs: history capacity must be at least 1")
	}
	return &History{capacity: capacity, slots: make([]Pair, capacity)}
}

// Reset clears the history and returns the pseudo-iteration counter to 0.
func (h *History) Reset() {
	h.head, h.tail, h.col, h.updates = 0, 0, 0, 0
}

// K returns the current pseudo-iteration counter (the number of successful
// updates since the last reset).
func (h *History) K() int { return h.updates }

// Len returns the number of pairs currently retained (min(K(), capacity)).
func (h *History) Len() int { return h.col }

// Cap returns the ring buffer's capacity m.
func (h *History) Cap() int { return h.capacity }

// At returns the i-th most recent pair: At(0) is the newest, At(Len()-1) is
// the oldest still retained.
func (h *History) At(i int) Pair {
	if i < 0 || i >= h.col {
		panic("lbfgs: history index out of range")
	}
	idx := ((h.tail-i)%h.capacity + h.capacity) % h.capacity
	return h.slots[idx]
}

// Update stores a new correction pair, applying the curvature-condition
// check dxᵀdg > 0. It reports whether the pair was stored; a false return
// means the history was reset instead.
func (h *History) Update(dx, dg []float64) bool {
	dr := dot(dx, dg)
	if !(dr > 0) || math.IsNaN(dr) || math.IsInf(dr, 0) {
		h.Reset()
		return false
	}

	h.updates++
	if h.updates <= h.capacity {
		h.col = h.updates
		h.tail = (h.head + h.updates - 1) % h.capacity
	} else {
		h.tail = (h.tail + 1) % h.capacity
		h.head = (h.head + 1) % h.capacity
	}

	h.slots[h.tail] = Pair{
		Dx:  append([]float64(nil), dx...),
		Dg:  append([]float64(nil), dg...),
		Rho: 1 / dr,
	}
	return true
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
