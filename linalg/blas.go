// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

// daxpy performs constant times a vector plus a vector operation: dy ← da*dx + dy.
func daxpy(n int, da float64, dx []float64, incx int, dy []float64, incy int) {
	if n <= 0 || da == 0.0 {
		return
	}
	ix, iy := 0, 0
	for i := 0; i < n; i++ {
		dy[iy] += da * dx[ix]
		ix += incx
		iy += incy
	}
}

// ddot computes the dot product of two vectors.
func ddot(n int, dx []float64, incx int, dy []float64, incy int) (dot float64) {
	if n <= 0 {
		return 0.0
	}
	ix, iy := 0, 0
	for i := 0; i < n; i++ {
		dot += dx[ix] * dy[iy]
		ix += incx
		iy += incy
	}
	return
}
