// Copyright 2024 The CausticLens Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gradient implements the forward-difference Gradient Operator
// of spec.md §4.5, used to turn the potential field φ into the
// velocity field that advects mesh nodes.
package gradient

import "github.com/lenscaustics/causticlens/grid"

// Of returns (gx, gy) for scalar grid u via forward differences:
//
//	gx[x][y] = u[x+1][y] - u[x][y]  if x<W-1, else 0
//	gy[x][y] = u[x][y+1] - u[x][y]  if y<H-1, else 0
func Of(u *grid.ScalarGrid) (gx, gy *grid.ScalarGrid) {
	gx = grid.New(u.W, u.H)
	gy = grid.New(u.W, u.H)
	for x := 0; x < u.W; x++ {
		for y := 0; y < u.H; y++ {
			if x < u.W-1 {
				gx.Set(x, y, u.Get(x+1, y)-u.Get(x, y))
			}
			if y < u.H-1 {
				gy.Set(x, y, u.Get(x, y+1)-u.Get(x, y))
			}
		}
	}
	return gx, gy
}
