// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lmesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewLatticeNodeCounts(tst *testing.T) {
	chk.PrintTitle("NewLatticeNodeCounts. (W+1)*(H+1) nodes, 2*W*H triangles")
	m := NewLattice(4, 3)
	if len(m.Nodes) != 5*4 {
		tst.Fatalf("got %d nodes, want %d", len(m.Nodes), 5*4)
	}
	if len(m.Triangles) != 2*4*3 {
		tst.Fatalf("got %d triangles, want %d", len(m.Triangles), 2*4*3)
	}
}

func TestNewLatticeNodePositions(tst *testing.T) {
	chk.PrintTitle("NewLatticeNodePositions. lattice nodes sit at integer coordinates")
	m := NewLattice(3, 3)
	for iy := 0; iy <= m.H; iy++ {
		for ix := 0; ix <= m.W; ix++ {
			n := m.NodeAt(ix, iy)
			if n.X != float64(ix) || n.Y != float64(iy) || n.Z != 0 {
				tst.Fatalf("node (%d,%d) = %v,%v,%v", ix, iy, n.X, n.Y, n.Z)
			}
			if n.Ix != ix || n.Iy != iy {
				tst.Fatalf("node (%d,%d) has wrong lattice index %d,%d", ix, iy, n.Ix, n.Iy)
			}
		}
	}
}

func TestNodeAtAliasesTriangleVertices(tst *testing.T) {
	chk.PrintTitle("NodeAtAliasesTriangleVertices. mutating a node is seen through every triangle")
	m := NewLattice(2, 2)
	n := m.NodeAt(1, 1)
	n.Z = 42
	found := false
	for _, t := range m.Triangles {
		p1, p2, p3 := m.Vertices(t)
		for _, p := range []*Node{p1, p2, p3} {
			if p.Ix == 1 && p.Iy == 1 {
				if p.Z != 42 {
					tst.Fatalf("triangle vertex did not observe mutation")
				}
				found = true
			}
		}
	}
	if !found {
		tst.Fatalf("no triangle referenced node (1,1)")
	}
}

func TestDiagonalOrientationFixed(tst *testing.T) {
	chk.PrintTitle("DiagonalOrientationFixed. each cell's two triangles match spec.md §4.2 exactly")
	m := NewLattice(2, 2)
	corner := func(n *Node) [2]int { return [2]int{n.Ix, n.Iy} }
	cellIdx := 0
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			t1 := m.Triangles[2*cellIdx]
			t2 := m.Triangles[2*cellIdx+1]
			a, b, c := m.Vertices(t1)
			want1 := [3][2]int{{x, y}, {x, y + 1}, {x + 1, y}}
			got1 := [3][2]int{corner(a), corner(b), corner(c)}
			if got1 != want1 {
				tst.Fatalf("cell (%d,%d) triangle1 = %v, want %v", x, y, got1, want1)
			}
			a, b, c = m.Vertices(t2)
			want2 := [3][2]int{{x + 1, y + 1}, {x + 1, y}, {x, y + 1}}
			got2 := [3][2]int{corner(a), corner(b), corner(c)}
			if got2 != want2 {
				tst.Fatalf("cell (%d,%d) triangle2 = %v, want %v", x, y, got2, want2)
			}
			cellIdx++
		}
	}
}
