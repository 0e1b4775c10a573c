// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package march implements the Time-Step Controller of spec.md §4.6:
// for every triangle it finds the positive time at which a linearly
// advected copy of that triangle would collapse to zero area, takes
// the global minimum over the mesh, and advects every node by half
// that value.
package march

import (
	"math"

	"github.com/lenscaustics/causticlens/grid"
	"github.com/lenscaustics/causticlens/lmesh"
)

// BForm selects which transcription of the quadratic coefficient B
// (spec.md §9, Open Question 1) is used. The spec's own worked
// formula is kept as the default; the alternate is offered purely for
// scrutiny, per the instruction to preserve source parity while still
// exposing the ambiguity.
type BForm int

const (
	// BFormAsGiven is the formula spec.md §4.6 states "(as implemented)":
	// B = x2.x*u3.y + u2.x*x3.y - x3.x*u2.y - u3.x*x2.y.
	BFormAsGiven BForm = iota
	// BFormAlternate swaps the u2/u3 roles in the cross terms, the
	// "v2<->v1" swap the Open Question flags as a possible transcription
	// slip in the original source.
	BFormAlternate
)

// FallbackCap is the large sentinel time used when no triangle yields
// a positive root (spec.md §4.6 edge case).
const FallbackCap = 1e4

// quadraticSmallestPositiveRoot returns the smallest strictly positive
// real root of A*t^2 + B*t + C = 0, or +Inf if there is none (complex
// roots, or a degenerate A=0,B=0 system).
func quadraticSmallestPositiveRoot(a, b, c float64) float64 {
	const zeroTol = 1e-14
	if math.Abs(a) < zeroTol {
		if math.Abs(b) < zeroTol {
			return math.Inf(1)
		}
		t := -c / b
		if t > 0 {
			return t
		}
		return math.Inf(1)
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return math.Inf(1)
	}
	sq := math.Sqrt(disc)
	t1 := (-b + sq) / (2 * a)
	t2 := (-b - sq) / (2 * a)
	best := math.Inf(1)
	if t1 > 0 && t1 < best {
		best = t1
	}
	if t2 > 0 && t2 < best {
		best = t2
	}
	return best
}

// collapseTime returns the smallest positive root for one triangle
// given its vertex positions p1,p2,p3 and velocities v1,v2,v3 (x,y
// pairs only, per spec.md §4.6), under the selected coefficient form.
func collapseTime(p1x, p1y, p2x, p2y, p3x, p3y, v1x, v1y, v2x, v2y, v3x, v3y float64, form BForm) float64 {
	x2x, x2y := p2x-p1x, p2y-p1y
	x3x, x3y := p3x-p1x, p3y-p1y
	u2x, u2y := v2x-v1x, v2y-v1y
	u3x, u3y := v3x-v1x, v3y-v1y

	a := u2x*u3y - u3x*u2y
	var b float64
	switch form {
	case BFormAlternate:
		b = x2x*u2y + u3x*x3y - x3x*u3y - u2x*x2y
	default:
		b = x2x*u3y + u2x*x3y - x3x*u2y - u3x*x2y
	}
	c := x2x*x3y - x3x*x2y
	return quadraticSmallestPositiveRoot(a, b, c)
}

// Options configures Advect.
type Options struct {
	// BForm selects the coefficient-B transcription (default BFormAsGiven).
	BForm BForm
}

// Advect finds tmin, the global minimum positive collapse time over
// every triangle of m, and moves every node's (x,y) by
// (vx,vy)*(tmin/2), the half-step safety margin of spec.md §4.6. vx,vy
// are velocity grids shaped (W+1,H+1), indexed by each node's (Ix,Iy).
// Returns the tmin actually used (either the true minimum, or
// FallbackCap if no triangle produced a finite positive root).
func Advect(m *lmesh.Mesh, vx, vy *grid.ScalarGrid, opts Options) float64 {
	tmin := math.Inf(1)
	for _, t := range m.Triangles {
		p1, p2, p3 := m.Vertices(t)
		v1x, v1y := vx.Get(p1.Ix, p1.Iy), vy.Get(p1.Ix, p1.Iy)
		v2x, v2y := vx.Get(p2.Ix, p2.Iy), vy.Get(p2.Ix, p2.Iy)
		v3x, v3y := vx.Get(p3.Ix, p3.Iy), vy.Get(p3.Ix, p3.Iy)
		tt := collapseTime(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y, v1x, v1y, v2x, v2y, v3x, v3y, opts.BForm)
		if tt < tmin {
			tmin = tt
		}
	}
	if math.IsInf(tmin, 1) {
		tmin = FallbackCap
	}
	step := tmin / 2
	for i := range m.Nodes {
		n := &m.Nodes[i]
		n.X += vx.Get(n.Ix, n.Iy) * step
		n.Y += vy.Get(n.Ix, n.Iy) * step
	}
	return tmin
}
