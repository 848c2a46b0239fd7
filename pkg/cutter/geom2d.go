package cutter

import (
	"math"

	"github.com/go-cam/camkernel/pkg/geom"
)

// This file implements the XY-projected distance predicates the
// contact functions in ball.go/cylindrical.go/toroidal.go/conical.go
// build on. Projecting to the XY plane is a deliberate simplification:
// the full cutter-geometry library (exact 3-D vertex/facet/edge contact
// against an arbitrarily tilted triangle) is an external collaborator,
// not this module's concern. What this module needs is a predicate good
// enough to drive push-cutter for horizontal (waterline) slices, which
// is all the end-to-end cases here exercise.

func distPointPoint2D(p, q geom.Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Hypot(dx, dy)
}

// distPointSegment2D returns the 2-D distance from p to the segment ab.
func distPointSegment2D(p, a, b geom.Point) float64 {
	ab := geom.Pt(b.X-a.X, b.Y-a.Y, 0)
	ap := geom.Pt(p.X-a.X, p.Y-a.Y, 0)
	abLenSq := ab.X*ab.X + ab.Y*ab.Y
	if abLenSq == 0 {
		return distPointPoint2D(p, a)
	}
	t := (ap.X*ab.X + ap.Y*ab.Y) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := geom.Pt(a.X+t*ab.X, a.Y+t*ab.Y, 0)
	return distPointPoint2D(p, proj)
}

// pointInTriangle2D reports whether p lies inside (or on) the triangle
// abc, using the sign of the three edge cross products.
func pointInTriangle2D(p, a, b, c geom.Point) bool {
	sign := func(p1, p2, p3 geom.Point) float64 {
		return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
	}
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// distPointTriangle2D returns the 2-D distance from p to the triangle
// abc: zero if p projects inside the triangle, otherwise the distance
// to the nearest edge.
func distPointTriangle2D(p, a, b, c geom.Point) float64 {
	if pointInTriangle2D(p, a, b, c) {
		return 0
	}
	d1 := distPointSegment2D(p, a, b)
	d2 := distPointSegment2D(p, b, c)
	d3 := distPointSegment2D(p, c, a)
	return math.Min(d1, math.Min(d2, d3))
}
