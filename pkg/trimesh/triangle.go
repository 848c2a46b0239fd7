package trimesh

import "github.com/go-cam/camkernel/pkg/geom"

// Triangle is a triangle in 3-space with a precomputed unit normal.
type Triangle struct {
	P1, P2, P3 geom.Point
	Normal     geom.Point
}

// NewTriangle builds a Triangle and precomputes its normal.
func NewTriangle(p1, p2, p3 geom.Point) Triangle {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	return Triangle{P1: p1, P2: p2, P3: p3, Normal: n.Normalize()}
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	return t.P2.Sub(t.P1).Cross(t.P3.Sub(t.P1)).Length() / 2
}

// IsDegenerate reports whether the triangle has (numerically) zero
// area. Degenerate triangles are skipped by the push-cutter with a
// count returned to the caller, never fatal.
func (t Triangle) IsDegenerate() bool {
	const epsArea = 1e-12
	return t.Area() < epsArea
}

// Bbox returns the triangle's axis-aligned bounding box.
func (t Triangle) Bbox() geom.Bbox {
	b := geom.NewBbox()
	b.AddPoint(t.P1)
	b.AddPoint(t.P2)
	b.AddPoint(t.P3)
	return b
}
