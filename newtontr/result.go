// Copyright ©2026 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newtontr

import (
	"fmt"
	"io"
	"time"
)

// LogLevel controls how much the driver writes to a Logger's Msg writer.
type LogLevel int

const (
	// LogNoop suppresses all output.
	LogNoop LogLevel = -1
	// LogLast prints the iteration number and f on every iteration.
	LogLast LogLevel = 0
	// LogEval instead prints the iteration number, f, ‖g‖∞, Δ, ρ, and
	// whether the step was accepted, on every iteration.
	LogEval LogLevel = 1
	// LogVerbose additionally writes x and g to Out on every iteration.
	LogVerbose LogLevel = 2
)

// Logger writes human-readable progress lines and, optionally, a
// machine-parseable per-iteration record — mirroring the store_trace,
// show_trace, and extended_trace knobs of the outer loop.
type Logger struct {
	Level LogLevel
	Msg   io.Writer // human-readable progress lines
	Out   io.Writer // machine-parseable data, one record per line
}

func (l *Logger) enabled(level LogLevel) bool {
	return l != nil && l.Msg != nil && l.Level >= level
}

func (l *Logger) logf(format string, a ...any) {
	_, _ = fmt.Fprintf(l.Msg, format, a...)
}

func (l *Logger) dataf(format string, a ...any) {
	if l.Out != nil {
		_, _ = fmt.Fprintf(l.Out, format, a...)
	}
}

// TraceRecord is one outer-loop iteration's snapshot: enough to reconstruct
// convergence history without keeping the full state around.
type TraceRecord struct {
	Iter     int
	F        float64
	GradInf  float64
	Delta    float64
	Rho      float64
	HardCase bool
	Accepted bool
	// NonFinite marks that f, g, or H was non-finite on this iteration; the
	// step is always rejected when this is true.
	NonFinite bool
	// X and G are populated only when Options.ExtendedTrace is set.
	X, G []float64
}

// TraceSink is the abstract collaborator through which the driver reports
// iterate history without depending on any particular presentation layer.
// Options.Callback is a TraceSink in function form.
type TraceSink interface {
	Record(TraceRecord) error
}

// TraceSinkFunc adapts a plain function to TraceSink.
type TraceSinkFunc func(TraceRecord) error

func (f TraceSinkFunc) Record(r TraceRecord) error { return f(r) }

// Summary carries the bookkeeping counters common to every run.
type Summary struct {
	NumIter int
	NumEval int
	Elapsed time.Duration
}

// OptimizationResult is the outer loop's terminal report.
type OptimizationResult struct {
	X []float64
	F float64

	FConverged bool
	GConverged bool
	XConverged bool

	Trace []TraceRecord

	Summary
}

// Converged reports whether any of the three convergence criteria fired.
func (r OptimizationResult) Converged() bool {
	return r.FConverged || r.GConverged || r.XConverged
}
