// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newtontr

import "fmt"

// ConfigError reports an invalid Options field, surfaced at construction
// time before any iteration runs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("newtontr: invalid option %q: %s", e.Field, e.Reason)
}

// DimensionError reports a shape mismatch between x0, the gradient, and the
// Hessian returned by the oracle.
type DimensionError struct {
	Want, Got int
	What      string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("newtontr: %s dimension mismatch: want %d, got %d", e.What, e.Want, e.Got)
}
