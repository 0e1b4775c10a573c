// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lmesh implements the mesh data model of a caustic lens: a
// dense array of Nodes addressed by lattice index, a list of
// Triangles referencing those nodes, and the Builder that constructs
// the initial uniform square lattice.
package lmesh

import "github.com/cpmech/gosl/utl"

// Node is a mutable 3D point plus its immutable originating lattice
// position. Ix,Iy never change after construction; X,Y,Z are mutated
// in place by the deformation and height-solver stages.
type Node struct {
	X, Y, Z float64
	Ix, Iy  int
}

// Triangle holds three indices into a Mesh's Nodes slice. Vertex
// ordering is fixed at construction time and never re-sorted.
type Triangle struct {
	A, B, C int
}

// Mesh is a set of Nodes of size (W+1)*(H+1), addressable both as a
// flat slice and via a 2D lattice index, plus the Triangles that
// connect them. W,H are the pixel-grid dimensions the lattice was
// built over.
//
// The node array is the single source of truth: NodeAt returns a
// pointer into it, so mutating through that pointer is observed by
// every Triangle referencing the same node index. There is no
// separate 2D index object to keep in sync.
type Mesh struct {
	W, H      int
	Nodes     []Node
	Triangles []Triangle
}

// index computes the flat offset of lattice position (ix,iy) into
// Nodes, per the (W+1)-stride convention fixed for the whole run.
func (m *Mesh) index(ix, iy int) int {
	return iy*(m.W+1) + ix
}

// NodeAt returns a pointer to the node originally at lattice position
// (ix,iy). The pointer aliases Mesh.Nodes; mutating through it is
// visible to every Triangle that references this node.
func (m *Mesh) NodeAt(ix, iy int) *Node {
	return &m.Nodes[m.index(ix, iy)]
}

// Vertices returns pointers to the three nodes of triangle t.
func (m *Mesh) Vertices(t Triangle) (p1, p2, p3 *Node) {
	return &m.Nodes[t.A], &m.Nodes[t.B], &m.Nodes[t.C]
}

// NewLattice builds the initial uniform square lattice over a W x H
// pixel grid: (W+1)*(H+1) nodes at integer coordinates (x,y,0) with
// Ix=x, Iy=y, and two triangles per cell with the diagonal running
// from the upper-left to the lower-right corner (spec.md §4.2):
//
//	Triangle 1: (x,y), (x,y+1), (x+1,y)
//	Triangle 2: (x+1,y+1), (x+1,y), (x,y+1)
func NewLattice(w, h int) *Mesh {
	m := &Mesh{
		W:     w,
		H:     h,
		Nodes: make([]Node, (w+1)*(h+1)),
	}
	// axis coordinates via utl.LinSpace, the same way the teacher builds
	// a node coordinate axis for a structured mesh (e.g. mdl/fluid/fluid.go's
	// Z := utl.LinSpace(0, o.H, np)); here start==0, stop==w/h so the
	// resulting values coincide exactly with the integer lattice positions.
	xs := utl.LinSpace(0, float64(w), w+1)
	ys := utl.LinSpace(0, float64(h), h+1)
	for iy := 0; iy <= h; iy++ {
		for ix := 0; ix <= w; ix++ {
			*m.NodeAt(ix, iy) = Node{
				X: xs[ix], Y: ys[iy], Z: 0,
				Ix: ix, Iy: iy,
			}
		}
	}
	m.Triangles = make([]Triangle, 0, 2*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i00 := m.index(x, y)
			i01 := m.index(x, y+1)
			i10 := m.index(x+1, y)
			i11 := m.index(x+1, y+1)
			m.Triangles = append(m.Triangles,
				Triangle{A: i00, B: i01, C: i10},
				Triangle{A: i11, B: i10, C: i01},
			)
		}
	}
	return m
}
