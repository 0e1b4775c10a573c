// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package progress defines the named callback types shared by every
// pipeline stage, following the teacher's DebugKb_t convention
// (fem/fem.go: "type DebugKb_t func(d *Domain, it int)") of small
// named function types rather than ad hoc interface{} callbacks.
package progress

import (
	"fmt"

	"github.com/lenscaustics/causticlens/grid"
)

// Phase identifies where in the pipeline a ProgressFunc report comes
// from (spec.md §6).
type Phase string

const (
	PhaseInit        Phase = "Init"
	PhaseHeightRelax Phase = "Height/Relax"
	PhaseSolidify    Phase = "Solidify"
	PhaseDone        Phase = "Done"
	PhaseError       Phase = "Error"
)

// IterRelaxPhase returns the "Iter(k)/Relax" phase tag for outer
// iteration k (spec.md §6).
func IterRelaxPhase(k int) Phase { return Phase(fmt.Sprintf("Iter(%d)/Relax", k)) }

// IterMarchPhase returns the "Iter(k)/March" phase tag for outer
// iteration k (spec.md §6).
func IterMarchPhase(k int) Phase { return Phase(fmt.Sprintf("Iter(%d)/March", k)) }

// Func reports (phase tag, numeric progress in [0,1]). Events are
// delivered in monotonic non-decreasing iteration order (spec.md §5).
type Func func(phase Phase, frac float64)

// DiagnosticFunc receives, at most once per outer iteration, a
// luminance grid: the residual D linearly remapped to [0,1]
// (min->0, max->1). Purely informational (spec.md §6).
type DiagnosticFunc func(iteration int, luminance *grid.ScalarGrid)

// CancelFunc is polled at the mandatory cooperative yield points
// (spec.md §5): between inner relaxation sweeps at a caller-configured
// cadence, and between outer iterations. Returning true requests that
// the run stop and return a Cancelled result.
type CancelFunc func() bool

// Luminance linearly remaps d's values to [0,1] (min->0, max->1) for
// delivery through a DiagnosticFunc. A constant grid maps to all
// zeros.
func Luminance(d *grid.ScalarGrid) *grid.ScalarGrid {
	out := grid.New(d.W, d.H)
	min, max := d.Get(0, 0), d.Get(0, 0)
	for x := 0; x < d.W; x++ {
		for y := 0; y < d.H; y++ {
			v := d.Get(x, y)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	span := max - min
	for x := 0; x < d.W; x++ {
		for y := 0; y < d.H; y++ {
			if span == 0 {
				out.Set(x, y, 0)
				continue
			}
			out.Set(x, y, (d.Get(x, y)-min)/span)
		}
	}
	return out
}
