// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solidify implements the Solidifier of spec.md §4.8: it
// extrudes the sculpted top surface into a closed, watertight
// prismatic mesh by adding a flat bottom layer and four side bands.
package solidify

import (
	"github.com/cpmech/gosl/chk"

	"github.com/lenscaustics/causticlens/lenserr"
	"github.com/lenscaustics/causticlens/lmesh"
)

// Solidify builds a new, closed Mesh from top (whose node Z values
// have already been set by the Height Solver): a bottom layer of
// (W+1)*(H+1) nodes at z=-offset, the existing top layer kept as-is,
// a top cap, a bottom cap, and four side bands, all wound so every
// outward normal points away from the solid's interior.
//
// The node-grid extents used by spec.md §4.8's triangle-count formula
// are (W+1,H+1), not the pixel dimensions (W,H) used everywhere else
// in this pipeline (DESIGN.md resolves this as an inherited off-by-one
// in the distilled spec's own variable naming): substituting the
// node-grid extents into "2(N-1)(M-1) top + same bottom +
// 4(N-1)+4(M-1) side" with N=W+1, M=H+1 recovers exactly
// 2*W*H top + 2*W*H bottom + 4*W+4*H side, which is what this
// function produces.
func Solidify(top *lmesh.Mesh, offset float64) (*lmesh.Mesh, error) {
	if offset <= 0 {
		return nil, lenserr.New(lenserr.BadConfig, "solidify: offset must be > 0, got %v", offset)
	}

	w, h := top.W, top.H
	nTop := len(top.Nodes)

	out := &lmesh.Mesh{
		W:     w,
		H:     h,
		Nodes: make([]lmesh.Node, 2*nTop),
	}
	copy(out.Nodes[:nTop], top.Nodes)
	for i := 0; i < nTop; i++ {
		n := top.Nodes[i]
		out.Nodes[nTop+i] = lmesh.Node{X: n.X, Y: n.Y, Z: -offset, Ix: n.Ix, Iy: n.Iy}
	}

	topIdx := func(ix, iy int) int { return iy*(w+1) + ix }
	botIdx := func(ix, iy int) int { return nTop + iy*(w+1) + ix }

	out.Triangles = make([]lmesh.Triangle, 0, 4*w*h+4*w+4*h)

	// bottom cap: same winding as the original lattice (outward -z).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i00 := botIdx(x, y)
			i01 := botIdx(x, y+1)
			i10 := botIdx(x+1, y)
			i11 := botIdx(x+1, y+1)
			out.Triangles = append(out.Triangles,
				lmesh.Triangle{A: i00, B: i01, C: i10},
				lmesh.Triangle{A: i11, B: i10, C: i01},
			)
		}
	}

	// top cap: reversed winding from the original lattice (outward +z).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i00 := topIdx(x, y)
			i01 := topIdx(x, y+1)
			i10 := topIdx(x+1, y)
			i11 := topIdx(x+1, y+1)
			out.Triangles = append(out.Triangles,
				lmesh.Triangle{A: i00, B: i10, C: i01},
				lmesh.Triangle{A: i11, B: i01, C: i10},
			)
		}
	}

	// side bands.
	// left (ix=0, vary iy): pattern A, outward -x.
	for iy := 0; iy < h; iy++ {
		t0, t1 := topIdx(0, iy), topIdx(0, iy+1)
		b0, b1 := botIdx(0, iy), botIdx(0, iy+1)
		out.Triangles = append(out.Triangles,
			lmesh.Triangle{A: t0, B: t1, C: b0},
			lmesh.Triangle{A: t1, B: b1, C: b0},
		)
	}
	// right (ix=W, vary iy): pattern B, outward +x.
	for iy := 0; iy < h; iy++ {
		t0, t1 := topIdx(w, iy), topIdx(w, iy+1)
		b0, b1 := botIdx(w, iy), botIdx(w, iy+1)
		out.Triangles = append(out.Triangles,
			lmesh.Triangle{A: t0, B: b0, C: t1},
			lmesh.Triangle{A: t1, B: b0, C: b1},
		)
	}
	// front (iy=0, vary ix): pattern B, outward -y.
	for ix := 0; ix < w; ix++ {
		t0, t1 := topIdx(ix, 0), topIdx(ix+1, 0)
		b0, b1 := botIdx(ix, 0), botIdx(ix+1, 0)
		out.Triangles = append(out.Triangles,
			lmesh.Triangle{A: t0, B: b0, C: t1},
			lmesh.Triangle{A: t1, B: b0, C: b1},
		)
	}
	// back (iy=H, vary ix): pattern A, outward +y.
	for ix := 0; ix < w; ix++ {
		t0, t1 := topIdx(ix, h), topIdx(ix+1, h)
		b0, b1 := botIdx(ix, h), botIdx(ix+1, h)
		out.Triangles = append(out.Triangles,
			lmesh.Triangle{A: t0, B: t1, C: b0},
			lmesh.Triangle{A: t1, B: b1, C: b0},
		)
	}

	return out, nil
}

// edgeKey is an undirected edge identified by its two endpoint
// indices, ordered so (a,b) and (b,a) compare equal.
type edgeKey struct{ lo, hi int }

func makeEdge(a, b int) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// CheckWatertight verifies spec.md §8.4: every edge of m must appear
// in exactly two triangles. Returns nil if m is watertight, or an
// error describing the first violation found.
func CheckWatertight(m *lmesh.Mesh) error {
	counts := make(map[edgeKey]int, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		counts[makeEdge(t.A, t.B)]++
		counts[makeEdge(t.B, t.C)]++
		counts[makeEdge(t.C, t.A)]++
	}
	for e, c := range counts {
		if c != 2 {
			return chk.Err("solidify: edge (%d,%d) used %d times, want 2", e.lo, e.hi, c)
		}
	}
	return nil
}
