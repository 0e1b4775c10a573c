// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lens implements the Core Façade of spec.md §4.9 and §6: the
// single entry point, GenerateLens, that sequences the whole
// inverse-caustics pipeline from an energy-normalized target image to
// a closed, solidified lens mesh.
package lens

import (
	"github.com/cpmech/gosl/io"

	"github.com/lenscaustics/causticlens/grid"
	"github.com/lenscaustics/causticlens/height"
	"github.com/lenscaustics/causticlens/lenserr"
	"github.com/lenscaustics/causticlens/lmesh"
	"github.com/lenscaustics/causticlens/progress"
	"github.com/lenscaustics/causticlens/solidify"
	"github.com/lenscaustics/causticlens/transport"
)

// re-exported so callers only need to import this package for the
// whole public surface of spec.md §6-§7.
type (
	// ProgressFunc is the progress sink type (spec.md §6).
	ProgressFunc = progress.Func
	// DiagnosticFunc is the diagnostic-image sink type (spec.md §6).
	DiagnosticFunc = progress.DiagnosticFunc
	// CancelFunc is polled at every cooperative yield point (spec.md §5).
	CancelFunc = progress.CancelFunc
	// Phase identifies where in the pipeline a ProgressFunc report comes from.
	Phase = progress.Phase
	// Kind is the closed error-kind enumeration (spec.md §7).
	Kind = lenserr.Kind
)

const (
	InvalidInput = lenserr.InvalidInput
	Diverged     = lenserr.Diverged
	Cancelled    = lenserr.Cancelled
	BadConfig    = lenserr.BadConfig
)

// Sinks bundles the three optional callbacks GenerateLens accepts.
type Sinks struct {
	Progress   ProgressFunc
	Diagnostic DiagnosticFunc
	Cancel     CancelFunc
}

// GenerateLens runs the entire pipeline of spec.md §4.9 over target
// and returns the closed, solidified lens mesh. target is read but
// never mutated; energy normalization operates on an internal copy.
func GenerateLens(target *grid.ScalarGrid, cfg Config, sinks Sinks) (*lmesh.Mesh, error) {
	if err := cfg.Validate(); err != nil {
		notifyError(sinks, err)
		return nil, err
	}
	if target.W < 2 || target.H < 2 {
		err := lenserr.New(lenserr.InvalidInput, "target image must be at least 2x2, got %dx%d", target.W, target.H)
		notifyError(sinks, err)
		return nil, err
	}
	if target.Sum() <= 0 {
		err := lenserr.New(lenserr.InvalidInput, "target image must have positive total energy, got %v", target.Sum())
		notifyError(sinks, err)
		return nil, err
	}

	if sinks.Cancel != nil && sinks.Cancel() {
		err := lenserr.New(lenserr.Cancelled, "cancelled before start")
		notifyError(sinks, err)
		return nil, err
	}

	normalized := normalizeEnergy(target)

	report(sinks, progress.PhaseInit, 0)
	if cfg.Verbose {
		io.Pf(">> building lattice %dx%d\n", target.W, target.H)
	}
	m := lmesh.NewLattice(target.W, target.H)

	err := transport.Run(m, normalized, transport.Options{
		Outer:              cfg.Iterations,
		RelaxOmega:         cfg.Omega,
		RelaxTolerance:     cfg.InnerTolerance,
		RelaxMaxSweeps:     cfg.InnerMaxSweeps,
		RelaxCallbackEvery: cfg.RelaxCallbackEvery,
		BForm:              cfg.QuadraticFormB,
		Progress:           sinks.Progress,
		Diagnostic:         sinks.Diagnostic,
		Cancel:             sinks.Cancel,
	})
	if err != nil {
		notifyError(sinks, err)
		return nil, err
	}

	err = height.Solve(m, height.Options{
		RefractiveIndex:    cfg.RefractiveIndex,
		FocalDistance:      cfg.FocalDistance,
		MetersPerPixel:     cfg.resolveMetersPerPixel(target.W),
		RelaxOmega:         cfg.Omega,
		RelaxTolerance:     cfg.InnerTolerance,
		RelaxMaxSweeps:     cfg.InnerMaxSweeps,
		RelaxCallbackEvery: cfg.RelaxCallbackEvery,
		Progress:           sinks.Progress,
		Cancel:             sinks.Cancel,
	})
	if err != nil {
		notifyError(sinks, err)
		return nil, err
	}

	report(sinks, progress.PhaseSolidify, 0)
	solid, err := solidify.Solidify(m, cfg.SolidifyOffset)
	if err != nil {
		notifyError(sinks, err)
		return nil, err
	}

	report(sinks, progress.PhaseDone, 1)
	return solid, nil
}

// normalizeEnergy returns a new grid scaled so its sum equals W*H
// (spec.md §4.9 step 1). Idempotent: normalizing an already-normalized
// grid returns it unchanged to within floating-point tolerance.
func normalizeEnergy(src *grid.ScalarGrid) *grid.ScalarGrid {
	s := src.Sum()
	scale := float64(src.W*src.H) / s
	out := src.Clone()
	for x := 0; x < out.W; x++ {
		for y := 0; y < out.H; y++ {
			out.Set(x, y, out.Get(x, y)*scale)
		}
	}
	return out
}

func report(sinks Sinks, phase progress.Phase, frac float64) {
	if sinks.Progress != nil {
		sinks.Progress(phase, frac)
	}
}

func notifyError(sinks Sinks, err error) {
	if sinks.Progress != nil {
		sinks.Progress(progress.PhaseError, 0)
	}
	_ = err
}
