// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package height implements the Height Solver of spec.md §4.7: from
// the converged in-plane node displacement it forms a Snell-law
// surface-normal field, takes its divergence, and solves a second
// Poisson equation for the out-of-plane height z(x,y).
package height

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/lenscaustics/causticlens/grid"
	"github.com/lenscaustics/causticlens/lmesh"
	"github.com/lenscaustics/causticlens/progress"
	"github.com/lenscaustics/causticlens/relax"
)

// Options configures Solve.
type Options struct {
	RefractiveIndex float64 // n, must be >1
	FocalDistance   float64 // H
	MetersPerPixel  float64

	RelaxOmega         float64
	RelaxTolerance     float64
	RelaxMaxSweeps     int
	RelaxCallbackEvery int

	Progress progress.Func
	Cancel   progress.CancelFunc
}

// normalField builds Nx,Ny on a (W+1,H+1) grid from the mesh's current
// node displacements, per spec.md §4.7:
//
//	deltaX = (ix-x)*metersPerPixel, deltaY = (iy-y)*metersPerPixel
//	Nx = tan(atan(deltaX/H) / (n-1)),  Ny analogous
//
// Values at the far boundary (ix=W or iy=H) default to 0, matching the
// same extension convention the Iteration Driver uses for its
// velocity grid.
func normalField(m *lmesh.Mesh, n, focal, metersPerPixel float64) (nx, ny *grid.ScalarGrid) {
	nx = grid.New(m.W+1, m.H+1)
	ny = grid.New(m.W+1, m.H+1)
	denom := n - 1
	for ix := 0; ix < m.W; ix++ {
		for iy := 0; iy < m.H; iy++ {
			node := m.NodeAt(ix, iy)
			dx := (float64(ix) - node.X) * metersPerPixel
			dy := (float64(iy) - node.Y) * metersPerPixel
			nx.Set(ix, iy, math.Tan(math.Atan(dx/focal)/denom))
			ny.Set(ix, iy, math.Tan(math.Atan(dy/focal)/denom))
		}
	}
	return nx, ny
}

// divergence forms div(N) on the (W,H) pixel grid from Nx,Ny shaped
// (W+1,H+1), via forward differences; since Nx,Ny already cover index
// W and H respectively there is no boundary special case.
func divergence(nx, ny *grid.ScalarGrid, w, h int) *grid.ScalarGrid {
	d := grid.New(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			dnx := nx.Get(x+1, y) - nx.Get(x, y)
			dny := ny.Get(x, y+1) - ny.Get(x, y)
			d.Set(x, y, dnx+dny)
		}
	}
	return d
}

// Solve computes z(W,H) from m's current node positions and writes it
// back onto m's node z-coordinates for ix<W, iy<H (spec.md §4.7). The
// last row/column of nodes (ix=W or iy=H) keep whatever z they already
// had, consistent with the far-boundary-defaults-to-0 convention used
// throughout this pipeline.
func Solve(m *lmesh.Mesh, opts Options) error {
	nx, ny := normalField(m, opts.RefractiveIndex, opts.FocalDistance, opts.MetersPerPixel)
	div := divergence(nx, ny, m.W, m.H)

	io.Pfgrey("height: divergence mean=%v max|.|=%v\n", div.Mean(), div.MaxAbs())
	div.ShiftMean()

	z := grid.New(m.W, m.H)
	err := relax.Relax(z, div, relax.Options{
		Omega:         opts.RelaxOmega,
		Tolerance:     opts.RelaxTolerance,
		MaxSweeps:     opts.RelaxMaxSweeps,
		CallbackEvery: opts.RelaxCallbackEvery,
		Callback: func(sweep int, maxDelta float64) bool {
			if opts.Progress != nil {
				opts.Progress(progress.PhaseHeightRelax, float64(sweep)/float64(opts.RelaxMaxSweeps))
			}
			return opts.Cancel != nil && opts.Cancel()
		},
	})
	if err != nil {
		return err
	}

	for ix := 0; ix < m.W; ix++ {
		for iy := 0; iy < m.H; iy++ {
			m.NodeAt(ix, iy).Z = z.Get(ix, iy)
		}
	}
	return nil
}
