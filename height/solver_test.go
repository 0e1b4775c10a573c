// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package height

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/lenscaustics/causticlens/lenserr"
	"github.com/lenscaustics/causticlens/lmesh"
)

func TestSolveUndeformedMeshIsFlat(tst *testing.T) {
	chk.PrintTitle("SolveUndeformedMeshIsFlat. spec.md §8.6, iterations=0 leaves z identically 0")
	m := lmesh.NewLattice(8, 8)
	err := Solve(m, Options{
		RefractiveIndex: 1.49,
		FocalDistance:   1.0,
		MetersPerPixel:  0.1 / 9,
		RelaxOmega:      1.99,
		RelaxTolerance:  1e-5,
		RelaxMaxSweeps:  5000,
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	for ix := 0; ix < m.W; ix++ {
		for iy := 0; iy < m.H; iy++ {
			z := m.NodeAt(ix, iy).Z
			if math.Abs(z) > 1e-4 {
				tst.Fatalf("node (%d,%d).Z = %v, want ~0", ix, iy, z)
			}
		}
	}
}

func TestSolveSmallGridNoPanic(tst *testing.T) {
	chk.PrintTitle("SolveSmallGridNoPanic. spec.md §8.8, W=H=2 runs without index errors")
	m := lmesh.NewLattice(2, 2)
	err := Solve(m, Options{
		RefractiveIndex: 1.49,
		FocalDistance:   1.0,
		MetersPerPixel:  0.1 / 3,
		RelaxOmega:      1.99,
		RelaxTolerance:  1e-5,
		RelaxMaxSweeps:  5000,
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
}

func TestSolveCancellation(tst *testing.T) {
	chk.PrintTitle("SolveCancellation. the height relax loop observes cancellation too")
	m := lmesh.NewLattice(16, 16)
	n := m.NodeAt(8, 8)
	n.X += 1
	err := Solve(m, Options{
		RefractiveIndex:    1.49,
		FocalDistance:      1.0,
		MetersPerPixel:     0.1 / 17,
		RelaxOmega:         1.99,
		RelaxTolerance:     1e-9,
		RelaxMaxSweeps:     10000,
		RelaxCallbackEvery: 1,
		Cancel:             func() bool { return true },
	})
	if err == nil || !lenserr.Is(err, lenserr.Cancelled) {
		tst.Fatalf("expected Cancelled, got %v", err)
	}
}
