// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relax implements the Poisson Relaxer of spec.md §4.4: a
// successive-over-relaxation (SOR) solve of the discrete Laplacian on
// a dense 2D grid, using degree-weighted boundary stencils rather than
// ghost-cell Neumann mirroring (kept deliberately — spec.md §9, the
// mesh-advection coupling was tuned against this exact behavior).
package relax

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/lenscaustics/causticlens/grid"
	"github.com/lenscaustics/causticlens/lenserr"
)

// Options configures a single Relax call.
type Options struct {
	// Omega is the SOR over-relaxation factor, 1<Omega<2.
	Omega float64
	// Tolerance is the max|delta| convergence criterion (tau).
	Tolerance float64
	// MaxSweeps caps the number of Gauss-Seidel sweeps (M_inner).
	MaxSweeps int
	// CallbackEvery is the sweep cadence at which Callback is invoked,
	// so a host can drive progress and observe cancellation (spec.md
	// §5, §9). Zero or negative disables the callback.
	CallbackEvery int
	// Callback is invoked every CallbackEvery sweeps with the sweep
	// index and the max|delta| observed in the sweep just completed.
	// Returning true requests cancellation.
	Callback func(sweep int, maxDelta float64) (cancel bool)
}

// DefaultOmega is the fixed over-relaxation factor spec.md §4.4 uses
// for every relax call in this pipeline.
const DefaultOmega = 1.99

// DefaultTolerance is tau.
const DefaultTolerance = 1e-5

// DefaultMaxSweeps is M_inner.
const DefaultMaxSweeps = 10000

// Relax solves the discrete Poisson problem Laplacian(u) = f on u's
// grid, in place, via Gauss-Seidel SOR with degree-weighted boundary
// stencils. f must already be zero-mean (grid.ScalarGrid.ShiftMean);
// the relaxer does not enforce this itself, matching spec.md §4.4's
// "caller must shift" precondition.
//
// Returns a *lenserr.Error of kind Diverged if any update is
// non-finite, or of kind Cancelled if Callback requested it. A nil
// return means either max|delta| < Tolerance was reached, or
// MaxSweeps was exhausted (the caller's tolerance was simply not met
// within the cap; this is not itself an error per spec.md §4.4).
func Relax(u, f *grid.ScalarGrid, opts Options) error {
	w, h := u.W, u.H
	if f.W != w || f.H != h {
		return lenserr.New(lenserr.InvalidInput, "relax: u and f have mismatched shapes (%dx%d vs %dx%d)", w, h, f.W, f.H)
	}
	if w == 0 || h == 0 {
		return nil
	}

	omega := opts.Omega
	if omega <= 0 {
		omega = DefaultOmega
	}
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	maxSweeps := opts.MaxSweeps
	if maxSweeps <= 0 {
		maxSweeps = DefaultMaxSweeps
	}

	for sweep := 1; sweep <= maxSweeps; sweep++ {
		maxDelta := 0.0
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				var sum float64
				var k int
				if x > 0 {
					sum += u.Get(x-1, y)
					k++
				}
				if x < w-1 {
					sum += u.Get(x+1, y)
					k++
				}
				if y > 0 {
					sum += u.Get(x, y-1)
					k++
				}
				if y < h-1 {
					sum += u.Get(x, y+1)
					k++
				}
				if k == 0 {
					continue
				}
				cur := u.Get(x, y)
				delta := omega / float64(k) * (sum - float64(k)*cur - f.Get(x, y))
				if math.IsNaN(delta) || math.IsInf(delta, 0) {
					return lenserr.New(lenserr.Diverged, "relax: non-finite update at (%d,%d) on sweep %d", x, y, sweep)
				}
				u.Set(x, y, cur+delta)
				if math.Abs(delta) > maxDelta {
					maxDelta = math.Abs(delta)
				}
			}
		}
		if opts.CallbackEvery > 0 && sweep%opts.CallbackEvery == 0 && opts.Callback != nil {
			if opts.Callback(sweep, maxDelta) {
				return lenserr.New(lenserr.Cancelled, "relax: cancelled at sweep %d", sweep)
			}
		}
		if maxDelta < tol {
			io.Pfgrey("relax: converged after %d sweeps, max|delta|=%v\n", sweep, maxDelta)
			return nil
		}
	}
	return nil
}
