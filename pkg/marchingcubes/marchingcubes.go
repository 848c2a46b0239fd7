// Package marchingcubes turns one octree leaf's eight corner signed
// distances into triangles and writes them into the GL vertex/index
// pool.
//
// The classic Lorensen/Bourke marching-cubes algorithm resolves its
// 256 corner-sign cases against a hand-transcribed case/edge table;
// referenced by original_source/src/cutsim/octree.hpp's MarchingCubes
// collaborator and implemented again by deadsy/sdfx/render for
// whole-volume rendering. This package deliberately triangulates by
// marching tetrahedra instead: each cube splits into six tetrahedra
// sharing its main diagonal, and each tetrahedron's sign pattern has
// only 16 cases, reducible to three shapes (no surface, one corner cut
// off, or a four-point quad) that a few lines of index arithmetic
// cover exactly — no 256-row table to transcribe by hand and have no
// way to test. The tradeoff is the usual one for marching tetrahedra:
// more triangles per cube and a face-diagonal bias, not a difference
// in correctness.
package marchingcubes

import "github.com/go-cam/camkernel/pkg/geom"

// Triangle is three points in the winding order they were cut, given
// in the caller's coordinate space (already world-space by the time
// Triangulate is called — corners are leaf-node vertices, not local
// cube coordinates).
type Triangle struct {
	A, B, C geom.Point
}

// tets is the cube split into six tetrahedra sharing the main diagonal
// from corner 2 to corner 4 — the only pair of direction-table corners
// that are opposite each other on the cube, i.e. direction[2] =
// (-1,-1,-1) and direction[4] = (1,1,1). Each entry indexes into the
// octree's corner direction table.
var tets = [6][4]int{
	{2, 3, 0, 4},
	{2, 0, 1, 4},
	{2, 1, 5, 4},
	{2, 5, 6, 4},
	{2, 6, 7, 4},
	{2, 7, 3, 4},
}

// Triangulate returns the triangles marching tetrahedra cuts from a
// cube whose eight corners are at the given positions with the given
// signed distances (negative inside, positive outside, matching
// Octnode.f's convention). corners and f must be in the octree's
// direction-table order.
func Triangulate(corners [8]geom.Point, f [8]float64) []Triangle {
	var out []Triangle
	for _, tet := range tets {
		var p [4]geom.Point
		var tf [4]float64
		for i, idx := range tet {
			p[i] = corners[idx]
			tf[i] = f[idx]
		}
		out = append(out, triangulateTet(p, tf)...)
	}
	return out
}

func triangulateTet(p [4]geom.Point, f [4]float64) []Triangle {
	var insideMask int
	count := 0
	for i := 0; i < 4; i++ {
		if f[i] <= 0 {
			insideMask |= 1 << i
			count++
		}
	}
	if count == 0 || count == 4 {
		return nil
	}

	interp := func(i, j int) geom.Point {
		t := f[i] / (f[i] - f[j])
		return p[i].Add(p[j].Sub(p[i]).Mul(t))
	}

	if count == 1 || count == 3 {
		wantBit := count == 1 // the lone vertex is "inside" when count==1, "outside" when count==3
		lone := -1
		for i := 0; i < 4; i++ {
			isInside := insideMask&(1<<i) != 0
			if isInside == wantBit {
				lone = i
			}
		}
		var others [3]int
		n := 0
		for i := 0; i < 4; i++ {
			if i != lone {
				others[n] = i
				n++
			}
		}
		pa := interp(lone, others[0])
		pb := interp(lone, others[1])
		pc := interp(lone, others[2])
		if count == 3 {
			// Outside-lone case cuts off the opposite corner of the
			// surface the inside-lone case would cut; flip winding so
			// both still face outward from the material.
			pb, pc = pc, pb
		}
		return []Triangle{{A: pa, B: pb, C: pc}}
	}

	// count == 2: two inside, two outside, cut is a planar quad.
	var insideIdx, outsideIdx [2]int
	ii, oi := 0, 0
	for i := 0; i < 4; i++ {
		if insideMask&(1<<i) != 0 {
			insideIdx[ii] = i
			ii++
		} else {
			outsideIdx[oi] = i
			oi++
		}
	}
	i0, i1 := insideIdx[0], insideIdx[1]
	o0, o1 := outsideIdx[0], outsideIdx[1]
	p00 := interp(i0, o0)
	p01 := interp(i0, o1)
	p10 := interp(i1, o0)
	p11 := interp(i1, o1)
	return []Triangle{
		{A: p00, B: p01, C: p11},
		{A: p00, B: p11, C: p10},
	}
}
