// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package accum implements the Pixel-Area Accumulator (spec.md §4.3):
// given a deformed mesh, it bins each triangle's area into the pixel
// cell containing its centroid.
package accum

import (
	"math"

	"github.com/cpmech/gosl/utl"

	"github.com/lenscaustics/causticlens/grid"
	"github.com/lenscaustics/causticlens/lmesh"
)

// Accumulate computes A(W,H): for every triangle of m, the unsigned
// 2D area (using only x,y) is added to the cell containing the
// triangle's centroid; triangles whose centroid falls outside the
// pixel grid are dropped. A freshly built lattice accumulates to 1 in
// every cell (two unit triangles of area 1/2 each).
func Accumulate(m *lmesh.Mesh) *grid.ScalarGrid {
	a := grid.New(m.W, m.H)
	u := make([]float64, 3)
	v := make([]float64, 3)
	cross := make([]float64, 3)
	for _, t := range m.Triangles {
		p1, p2, p3 := m.Vertices(t)
		u[0], u[1], u[2] = p2.X-p1.X, p2.Y-p1.Y, 0
		v[0], v[1], v[2] = p3.X-p1.X, p3.Y-p1.Y, 0
		utl.Cross3d(cross, u, v)
		area := math.Abs(cross[2]) / 2

		cx := (p1.X + p2.X + p3.X) / 3
		cy := (p1.Y + p2.Y + p3.Y) / 3
		ix := int(math.Floor(cx))
		iy := int(math.Floor(cy))
		if a.InBounds(ix, iy) {
			a.Add(ix, iy, area)
		}
	}
	return a
}
