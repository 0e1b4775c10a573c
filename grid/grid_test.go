// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewIsZero(tst *testing.T) {
	chk.PrintTitle("NewIsZero. fresh grids start at zero")
	g := New(4, 3)
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if g.Get(x, y) != 0 {
				tst.Fatalf("cell (%d,%d) not zero", x, y)
			}
		}
	}
}

func TestSetGetAdd(tst *testing.T) {
	chk.PrintTitle("SetGetAdd. basic indexed access")
	g := New(2, 2)
	g.Set(1, 0, 3.0)
	g.Add(1, 0, 2.0)
	if g.Get(1, 0) != 5.0 {
		tst.Fatalf("got %v, want 5", g.Get(1, 0))
	}
}

func TestShiftMeanZeroesSum(tst *testing.T) {
	chk.PrintTitle("ShiftMeanZeroesSum. zero-mean precondition for the relaxer")
	g := New(3, 3)
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	i := 0
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			g.Set(x, y, vals[i])
			i++
		}
	}
	g.ShiftMean()
	sum := g.Sum()
	if sum > 1e-9 || sum < -1e-9 {
		tst.Fatalf("sum after ShiftMean = %v, want ~0", sum)
	}
}

func TestShiftMeanIdempotent(tst *testing.T) {
	chk.PrintTitle("ShiftMeanIdempotent. shifting an already-zero-mean grid is a no-op")
	g := New(4, 4)
	g.Set(0, 0, 10)
	g.Set(1, 1, -10)
	g.ShiftMean()
	before := g.Clone()
	g.ShiftMean()
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			d := g.Get(x, y) - before.Get(x, y)
			if d > 1e-12 || d < -1e-12 {
				tst.Fatalf("second ShiftMean moved cell (%d,%d) by %v", x, y, d)
			}
		}
	}
}

func TestCloneIsIndependent(tst *testing.T) {
	chk.PrintTitle("CloneIsIndependent. mutating a clone must not affect the original")
	g := New(2, 2)
	g.Set(0, 0, 1)
	c := g.Clone()
	c.Set(0, 0, 99)
	if g.Get(0, 0) != 1 {
		tst.Fatalf("clone mutation leaked into original")
	}
}

func TestMaxAbs(tst *testing.T) {
	chk.PrintTitle("MaxAbs. largest magnitude cell wins regardless of sign")
	g := New(2, 2)
	g.Set(0, 0, -7)
	g.Set(1, 1, 3)
	if g.MaxAbs() != 7 {
		tst.Fatalf("got %v, want 7", g.MaxAbs())
	}
}
