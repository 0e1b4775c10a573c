// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the dense 2D float array used throughout the
// lens pipeline: the target image, the residual, the potential, the
// height field and every intermediate derived quantity are all a
// ScalarGrid.
package grid

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// ScalarGrid is a dense 2D array of floats indexed (x,y) with
// 0<=x<W, 0<=y<H. Storage is row-major over x (data[x][y]); this is an
// implementation choice, held consistent across every grid in a run.
type ScalarGrid struct {
	W, H int
	data [][]float64
}

// New allocates a zero-initialized W x H grid.
func New(w, h int) *ScalarGrid {
	return &ScalarGrid{
		W:    w,
		H:    h,
		data: la.MatAlloc(w, h),
	}
}

// Get returns the value at (x,y).
func (g *ScalarGrid) Get(x, y int) float64 {
	return g.data[x][y]
}

// Set assigns the value at (x,y).
func (g *ScalarGrid) Set(x, y int, v float64) {
	g.data[x][y] = v
}

// Add accumulates v into (x,y).
func (g *ScalarGrid) Add(x, y int, v float64) {
	g.data[x][y] += v
}

// InBounds reports whether (x,y) addresses a cell of this grid.
func (g *ScalarGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Fill sets every cell to v.
func (g *ScalarGrid) Fill(v float64) {
	la.MatFill(g.data, v)
}

// Clone returns a deep copy.
func (g *ScalarGrid) Clone() *ScalarGrid {
	o := New(g.W, g.H)
	for x := 0; x < g.W; x++ {
		copy(o.data[x], g.data[x])
	}
	return o
}

// Sum returns the sum of every cell.
func (g *ScalarGrid) Sum() float64 {
	var s float64
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			s += g.data[x][y]
		}
	}
	return s
}

// Mean returns Sum()/(W*H). Returns NaN if the grid is empty.
func (g *ScalarGrid) Mean() float64 {
	return g.Sum() / float64(g.W*g.H)
}

// ShiftBy adds c to every cell; used to zero-mean a right-hand side
// before it is handed to the Poisson relaxer.
func (g *ScalarGrid) ShiftBy(c float64) {
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			g.data[x][y] += c
		}
	}
}

// ShiftMean subtracts the current mean from every cell so Sum()
// becomes zero (to floating-point precision).
func (g *ScalarGrid) ShiftMean() {
	g.ShiftBy(-g.Mean())
}

// MaxAbs returns the largest absolute value held in the grid.
func (g *ScalarGrid) MaxAbs() float64 {
	var m float64
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			m = utl.Max(m, abs(g.data[x][y]))
		}
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
