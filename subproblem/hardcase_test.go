// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subproblem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHardCaseCandidateTruthTable(t *testing.T) {
	cases := []struct {
		name       string
		lambda     []float64
		ghat       []float64
		wantHard   bool
		wantIndex  int
	}{
		{"hard-simple-lambda1", []float64{-1, 2, 3}, []float64{0, 1, 1}, true, 2},
		{"hard-multiplicity-two", []float64{-1, -1, 3}, []float64{0, 0, 1}, true, 3},
		{"fully-degenerate", []float64{-1, -1, -1}, []float64{0, 0, 0}, true, 4},
		{"positive-definite", []float64{1, 2, 3}, []float64{0, 1, 1}, false, 0},
		{"component-in-eigenspace", []float64{-1, -1, -1}, []float64{0, 0, 1}, false, 0},
		{"nonzero-at-lambda1", []float64{-1, 2, 3}, []float64{1, 1, 1}, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hard, idx := CheckHardCaseCandidate(c.lambda, c.ghat)
			assert.Equal(t, c.wantHard, hard)
			if c.wantHard {
				assert.Equal(t, c.wantIndex, idx)
			}
		})
	}
}
