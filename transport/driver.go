// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport implements the Iteration Driver of spec.md §4.9
// step 3: the outer loop that redistributes mesh vertex positions so
// accumulated pixel-cell areas converge toward the target image, by
// repeatedly accumulating area, forming a residual, solving a Poisson
// equation for a potential, and advecting the mesh along its negative
// gradient.
package transport

import (
	"github.com/cpmech/gosl/io"

	"github.com/lenscaustics/causticlens/accum"
	"github.com/lenscaustics/causticlens/gradient"
	"github.com/lenscaustics/causticlens/grid"
	"github.com/lenscaustics/causticlens/lenserr"
	"github.com/lenscaustics/causticlens/lmesh"
	"github.com/lenscaustics/causticlens/march"
	"github.com/lenscaustics/causticlens/progress"
	"github.com/lenscaustics/causticlens/relax"
)

// Options configures Run.
type Options struct {
	Outer int // number of outer iterations (N_outer)

	RelaxOmega         float64
	RelaxTolerance     float64
	RelaxMaxSweeps     int
	RelaxCallbackEvery int

	BForm march.BForm

	Progress   progress.Func
	Diagnostic progress.DiagnosticFunc
	Cancel     progress.CancelFunc
}

// Run performs Options.Outer outer iterations against m in place:
// accumulate pixel area, form the zero-mean residual against target,
// solve a Poisson equation for the potential, and advect the mesh
// along its negative gradient (spec.md §4.9 step 3). target must be
// energy-normalized before calling Run (spec.md §4.9 step 1), this
// package does not normalize it.
func Run(m *lmesh.Mesh, target *grid.ScalarGrid, opts Options) error {
	for iter := 0; iter < opts.Outer; iter++ {
		if opts.Cancel != nil && opts.Cancel() {
			return lenserr.New(lenserr.Cancelled, "transport: cancelled before outer iteration %d", iter)
		}

		a := accum.Accumulate(m)
		d := grid.New(m.W, m.H)
		for x := 0; x < m.W; x++ {
			for y := 0; y < m.H; y++ {
				d.Set(x, y, a.Get(x, y)-target.Get(x, y))
			}
		}
		d.ShiftMean()

		if opts.Diagnostic != nil {
			opts.Diagnostic(iter, progress.Luminance(d))
		}

		phi := grid.New(m.W, m.H)
		relaxed := 0
		err := relax.Relax(phi, d, relax.Options{
			Omega:         opts.RelaxOmega,
			Tolerance:     opts.RelaxTolerance,
			MaxSweeps:     opts.RelaxMaxSweeps,
			CallbackEvery: opts.RelaxCallbackEvery,
			Callback: func(sweep int, maxDelta float64) bool {
				relaxed = sweep
				if opts.Progress != nil {
					opts.Progress(progress.IterRelaxPhase(iter), float64(sweep)/float64(opts.RelaxMaxSweeps))
				}
				return opts.Cancel != nil && opts.Cancel()
			},
		})
		if err != nil {
			return err
		}
		io.Pfgrey("transport: iter %d, residual relaxed in ~%d sweeps\n", iter, relaxed)

		gx, gy := gradient.Of(phi)
		vx := grid.New(m.W+1, m.H+1)
		vy := grid.New(m.W+1, m.H+1)
		for x := 0; x < m.W; x++ {
			for y := 0; y < m.H; y++ {
				vx.Set(x, y, -gx.Get(x, y))
				vy.Set(x, y, -gy.Get(x, y))
			}
		}

		march.Advect(m, vx, vy, march.Options{BForm: opts.BForm})

		if opts.Progress != nil {
			opts.Progress(progress.IterMarchPhase(iter), float64(iter+1)/float64(opts.Outer))
		}
	}
	return nil
}
