// Package cutter implements the Cutter contact predicates as a
// polymorphic capability set: given a triangle feature (vertex, edge,
// or facet) and a Fiber, return the parameter sub-range and CC points
// where the cutter would touch it.
//
// A full cutter-geometry library (exact sphere/ball/bull/cone contact
// predicates against arbitrarily tilted triangles) is its own body of
// work; what follows is a reference implementation behind that
// interface — simple enough to live in-tree, accurate enough for
// horizontal (waterline) cuts, where every contact reduces to a 2-D
// distance in the cut plane.
package cutter

import (
	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

// Cutter is the capability set every concrete tool geometry implements:
// vertex_drop, facet_drop, edge_drop contact predicates against a
// Fiber. Each returns an interval (possibly Empty()) rather than an
// error for "no contact" — that is the expected, common case, not a
// failure.
type Cutter interface {
	// Radius returns the cutter's nominal lateral reach.
	Radius() float64

	// VertexDrop returns the contact interval where the cutter touches
	// the single point v.
	VertexDrop(f *fiber.Fiber, v geom.Point) (*fiber.Interval, error)

	// EdgeDrop returns the contact interval where the cutter touches
	// the segment a-b.
	EdgeDrop(f *fiber.Fiber, a, b geom.Point) (*fiber.Interval, error)

	// FacetDrop returns the contact interval where the cutter touches
	// the interior of the triangle tri.
	FacetDrop(f *fiber.Fiber, tri trimesh.Triangle) (*fiber.Interval, error)
}

// contactSamples controls the resolution of the crossing search used
// by vertexDrop/edgeDrop/facetDrop below. 64 samples across
// [0,1] is enough to resolve contact intervals to a small fraction of
// the fiber's own step size.
const contactSamples = 64

// scanContactInterval walks t across [0,1] evaluating
// dist(t) - effectiveRadius, linearly interpolating the sign crossings
// into a single contiguous contact interval. Each drop call (one per
// triangle vertex, one per edge, one for the facet) scans once and so
// contributes at most one interval.
func scanContactInterval(f *fiber.Fiber, dist func(t float64) float64, radius float64, ccAt func(t float64) geom.Point) *fiber.Interval {
	iv := fiber.NewInterval()

	prevT := 0.0
	prevG := dist(prevT) - radius
	if prevG <= 0 {
		iv.UpdateLower(0, ccAt(0))
		iv.UpdateUpper(0, ccAt(0))
	}

	for i := 1; i <= contactSamples; i++ {
		t := float64(i) / float64(contactSamples)
		g := dist(t) - radius

		if g <= 0 {
			if prevG > 0 {
				// entering contact: interpolate the crossing
				frac := prevG / (prevG - g)
				tc := prevT + frac*(t-prevT)
				iv.UpdateLower(tc, ccAt(tc))
				iv.UpdateUpper(tc, ccAt(tc))
			}
			iv.UpdateLower(t, ccAt(t))
			iv.UpdateUpper(t, ccAt(t))
		} else if prevG <= 0 {
			// leaving contact: interpolate the crossing
			frac := prevG / (prevG - g)
			tc := prevT + frac*(t-prevT)
			iv.UpdateLower(tc, ccAt(tc))
			iv.UpdateUpper(tc, ccAt(tc))
		}

		prevT, prevG = t, g
	}

	return iv
}

// radiusAtFunc returns a cutter's effective lateral reach when
// contacting a feature at featureZ, given the fiber's own cutting
// height. Ball and Cylindrical reach the same radius regardless of
// depth; Toroidal and Conical both narrow toward their tip, each
// tracing a different profile, so they're the ones that use both
// arguments.
type radiusAtFunc func(f *fiber.Fiber, featureZ float64) float64

// constantRadius builds a radiusAtFunc for cutters whose lateral reach
// doesn't vary with depth.
func constantRadius(radius float64) radiusAtFunc {
	return func(*fiber.Fiber, float64) float64 { return radius }
}

// vertexDrop, edgeDrop, and facetDrop are the three feature-contact
// bodies every Cutter in this package shares; only the op string (for
// error attribution) and the radius function differ between cutters.
func vertexDrop(f *fiber.Fiber, v geom.Point, radiusAt radiusAtFunc) (*fiber.Interval, error) {
	return scanContactInterval(f, func(t float64) float64 {
		return distPointPoint2D(f.Point(t), v)
	}, radiusAt(f, v.Z), func(t float64) geom.Point { return v }), nil
}

func edgeDrop(op string, f *fiber.Fiber, a, b geom.Point, radiusAt radiusAtFunc) (*fiber.Interval, error) {
	if a == b {
		return nil, &cncerr.InputError{
			Op:      op,
			Detail:  "degenerate edge, a equals b",
			Context: cncerr.Context{"point": a},
		}
	}
	return scanContactInterval(f, func(t float64) float64 {
		return distPointSegment2D(f.Point(t), a, b)
	}, radiusAt(f, (a.Z+b.Z)/2), func(t float64) geom.Point { return nearestOnSegment(f.Point(t), a, b) }), nil
}

func facetDrop(op string, f *fiber.Fiber, tri trimesh.Triangle, radiusAt radiusAtFunc) (*fiber.Interval, error) {
	if tri.IsDegenerate() {
		return nil, &cncerr.InputError{Op: op, Detail: "degenerate (zero-area) triangle"}
	}
	return scanContactInterval(f, func(t float64) float64 {
		return distPointTriangle2D(f.Point(t), tri.P1, tri.P2, tri.P3)
	}, radiusAt(f, tri.P1.Z), func(t float64) geom.Point {
		p := f.Point(t)
		return geom.Pt(p.X, p.Y, tri.P1.Z)
	}), nil
}

// nearestOnSegment returns the closest point on segment ab to p, in
// the XY plane (Z taken from a).
func nearestOnSegment(p, a, b geom.Point) geom.Point {
	ab := b.Sub(a)
	abLenSq := ab.X*ab.X + ab.Y*ab.Y
	if abLenSq == 0 {
		return a
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return geom.Pt(a.X+t*ab.X, a.Y+t*ab.Y, a.Z+t*(b.Z-a.Z))
}
