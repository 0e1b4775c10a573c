// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package march

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/lenscaustics/causticlens/grid"
	"github.com/lenscaustics/causticlens/lmesh"
)

func signedArea(p1x, p1y, p2x, p2y, p3x, p3y float64) float64 {
	return ((p2x-p1x)*(p3y-p1y) - (p3x-p1x)*(p2y-p1y)) / 2
}

func TestAdvectNeverFlipsOrientation(tst *testing.T) {
	chk.PrintTitle("AdvectNeverFlipsOrientation. spec.md §8.3 half-step safety invariant")
	m := lmesh.NewLattice(6, 6)
	vx := grid.New(7, 7)
	vy := grid.New(7, 7)
	for ix := 0; ix <= 6; ix++ {
		for iy := 0; iy <= 6; iy++ {
			// a velocity field that pulls everything toward the center,
			// the kind of field the real pipeline produces from -grad(phi).
			cx, cy := 3.0, 3.0
			vx.Set(ix, iy, (cx-float64(ix))*0.2)
			vy.Set(ix, iy, (cy-float64(iy))*0.2)
		}
	}

	signsBefore := make([]float64, len(m.Triangles))
	for i, t := range m.Triangles {
		p1, p2, p3 := m.Vertices(t)
		signsBefore[i] = sign(signedArea(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y))
	}

	for iter := 0; iter < 5; iter++ {
		Advect(m, vx, vy, Options{})
	}

	for i, t := range m.Triangles {
		p1, p2, p3 := m.Vertices(t)
		after := sign(signedArea(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y))
		if after != 0 && signsBefore[i] != 0 && after != signsBefore[i] {
			tst.Fatalf("triangle %d flipped orientation", i)
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 1e-12:
		return 1
	case v < -1e-12:
		return -1
	default:
		return 0
	}
}

func TestQuadraticSmallestPositiveRootDegenerateLinear(tst *testing.T) {
	chk.PrintTitle("QuadraticSmallestPositiveRootDegenerateLinear. A=0,B!=0 falls back to -C/B")
	root := quadraticSmallestPositiveRoot(0, 2, -4)
	if math.Abs(root-2) > 1e-12 {
		tst.Fatalf("got %v, want 2", root)
	}
}

func TestQuadraticSmallestPositiveRootNoRealRoots(tst *testing.T) {
	chk.PrintTitle("QuadraticSmallestPositiveRootNoRealRoots. complex roots yield the infinite sentinel")
	root := quadraticSmallestPositiveRoot(1, 0, 1) // t^2+1=0
	if !math.IsInf(root, 1) {
		tst.Fatalf("expected +Inf sentinel, got %v", root)
	}
}

func TestQuadraticSmallestPositiveRootPicksSmaller(tst *testing.T) {
	chk.PrintTitle("QuadraticSmallestPositiveRootPicksSmaller. (t-2)(t-5)=0 picks 2")
	// t^2 -7t +10 = 0 -> roots 2 and 5
	root := quadraticSmallestPositiveRoot(1, -7, 10)
	if math.Abs(root-2) > 1e-9 {
		tst.Fatalf("got %v, want 2", root)
	}
}

func TestAdvectFallsBackWhenNoPositiveRoot(tst *testing.T) {
	chk.PrintTitle("AdvectFallsBackWhenNoPositiveRoot. zero velocity field uses the fallback cap")
	m := lmesh.NewLattice(2, 2)
	vx := grid.New(3, 3)
	vy := grid.New(3, 3)
	tmin := Advect(m, vx, vy, Options{})
	if tmin != FallbackCap {
		tst.Fatalf("got tmin=%v, want FallbackCap=%v", tmin, FallbackCap)
	}
}
