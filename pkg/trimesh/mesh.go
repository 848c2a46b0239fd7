// Package trimesh provides a read-only triangle mesh with a spatial
// index, standing in for the STL mesh + kd-tree surface collider the
// original treats as an external collaborator.
package trimesh

import (
	"github.com/dhconnelly/rtreego"
	"github.com/go-cam/camkernel/pkg/geom"
)

// DefaultBucketSize is the R-tree's minimum node fill; New sets the
// maximum fill to four times it. A small default favors tight overlap queries on
// the thin, scan-line-shaped boxes the push-cutter asks about.
const DefaultBucketSize = 1

// spatialTriangle adapts a Triangle to rtreego.Spatial.
type spatialTriangle struct {
	tri  Triangle
	rect rtreego.Rect
}

func (s *spatialTriangle) Bounds() rtreego.Rect {
	return s.rect
}

// Mesh is an immutable, read-only collection of triangles plus an
// R-tree bucket index used to answer "which triangles overlap this
// fiber's sweep box" queries in O(log n + k).
type Mesh struct {
	triangles  []Triangle
	index      *rtreego.Rtree
	bucketSize int
}

// New builds a Mesh from a flat triangle list, using bucketSize as the
// R-tree's minimum branching factor. bucketSize <= 0 defaults to
// DefaultBucketSize.
func New(triangles []Triangle, bucketSize int) *Mesh {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	m := &Mesh{
		triangles:  triangles,
		bucketSize: bucketSize,
		index:      rtreego.NewTree(3, bucketSize, bucketSize*4),
	}
	for _, t := range triangles {
		rect, err := rectFromBbox(t.Bbox())
		if err != nil {
			// A triangle with a fully degenerate (point-like) bbox on
			// every axis cannot form a valid rtreego.Rect; skip the
			// index entry but keep the triangle in the flat list.
			continue
		}
		m.index.Insert(&spatialTriangle{tri: t, rect: rect})
	}
	return m
}

// Triangles returns every triangle in the mesh.
func (m *Mesh) Triangles() []Triangle {
	return m.triangles
}

// BucketSize returns the configured index bucket size.
func (m *Mesh) BucketSize() int {
	return m.bucketSize
}

// Overlapping returns every triangle whose bounding box intersects bb,
// the candidate set the push-cutter filters down to exact contact
// predicates. This is the module's reference implementation of the
// kd-tree surface collider the original calls external.
func (m *Mesh) Overlapping(bb geom.Bbox) []Triangle {
	rect, err := rectFromBbox(bb)
	if err != nil {
		return nil
	}
	results := m.index.SearchIntersect(rect)
	out := make([]Triangle, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*spatialTriangle).tri)
	}
	return out
}

// rectFromBbox converts a geom.Bbox into an rtreego.Rect, padding
// degenerate (zero-thickness) axes by a small epsilon since rtreego
// requires strictly positive side lengths.
func rectFromBbox(bb geom.Bbox) (rtreego.Rect, error) {
	const eps = 1e-9
	lengths := []float64{
		sideLength(bb.Min.X, bb.Max.X, eps),
		sideLength(bb.Min.Y, bb.Max.Y, eps),
		sideLength(bb.Min.Z, bb.Max.Z, eps),
	}
	return rtreego.NewRect(rtreego.Point{bb.Min.X, bb.Min.Y, bb.Min.Z}, lengths)
}

func sideLength(lo, hi, eps float64) float64 {
	d := hi - lo
	if d < eps {
		return eps
	}
	return d
}
