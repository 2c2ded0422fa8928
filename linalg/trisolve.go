// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

// SolveJob selects which triangular system dtrsl solves.
type SolveJob int

const (
	SolveLowerN SolveJob = 0b00 // T * x = b, T lower triangular
	SolveUpperN SolveJob = 0b01 // T * x = b, T upper triangular
	SolveLowerT SolveJob = 0b10 // Tᵀ * x = b, T lower triangular
	SolveUpperT SolveJob = 0b11 // Tᵀ * x = b, T upper triangular
)

// TriangularSolve solves one of the four triangular systems in place over b,
// where t is a row-major n×n matrix with leading dimension ldt. It never
// panics on a singular (zero-diagonal) triangle; b is left untouched in that
// case, matching the LINPACK contract "info != 0 leaves b unaltered".
func TriangularSolve(t []float64, ldt, n int, b []float64, job SolveJob) (info int) {
	return dtrsl(t, ldt, n, b, 1, int(job))
}

// dtrsl solves systems of the form
//
//	T * x = b or Tᵀ * x = b
//
// where T is a triangular matrix of order n, stored row-major with leading
// dimension ldt. b has stride ldb and is overwritten with the solution when
// info == 0; otherwise info is the (1-based) index of the first zero
// diagonal element of T and b is left unaltered.
func dtrsl(t []float64, ldt, n int, b []float64, ldb int, job int) (info int) {

	tn := uint(ldt * n)
	if len(t) <= 0 || len(b) <= 0 || tn > uint(len(t)) {
		panic("bound check error")
	}

	for idx := uint(0); idx < tn; idx += uint(1 + ldt) {
		if t[idx] == 0.0 {
			info = 1 + int(idx)/(1+ldt)
			return
		}
	}

	switch job {
	case int(SolveLowerN):
		b[0] /= t[0]
		for j := 1; j < n; j++ {
			temp := -b[(j-1)*ldb]
			daxpy(n-j, temp, t[j*ldt+(j-1):], ldt, b[j*ldb:], ldb)
			b[j*ldb] /= t[j*ldt+j]
		}
	case int(SolveUpperN):
		b[(n-1)*ldb] /= t[(n-1)*ldt+(n-1)]
		for j := n - 2; j >= 0; j-- {
			temp := -b[(j+1)*ldb]
			daxpy(j+1, temp, t[j+1:], ldt, b, ldb)
			b[j*ldb] /= t[j*ldt+j]
		}
	case int(SolveLowerT):
		b[(n-1)*ldb] /= t[(n-1)*ldt+(n-1)]
		for j := n - 2; j >= 0; j-- {
			temp := ddot((n-1)-j, t[(j+1)*ldt+j:], ldt, b[(j+1)*ldb:], ldb)
			b[j*ldb] = (b[j*ldb] - temp) / t[j*ldt+j]
		}
	case int(SolveUpperT):
		b[0] /= t[0]
		for j := 1; j < n; j++ {
			temp := ddot(j, t[j:], ldt, b, ldb)
			b[j*ldb] = (b[j*ldb] - temp) / t[j*ldt+j]
		}
	default:
		info = -1
	}
	return
}
