// Package weave builds the weave planar half-edge diagram from
// push-cut X and Y fibers, and the face traversal that stitches it
// into closed waterline loops.
//
// The graph uses the arena+id pattern: vertices and half-edges live in
// flat slices on WeaveGraph, referenced by index rather than pointer,
// so a half-edge's twin/next and a vertex's outgoing edges are plain
// integers. This mirrors the half-edge layout in
// other_examples/MauriceGit-sweepcircle__mtHalfEdge.go (EdgeIndex,
// VertexIndex, ETwin/ENext/EPrev as indices into static slices) rather
// than a pointer-linked DCEL, which would fight Go's lack of
// intrusive object cycles.
package weave

import (
	"math"

	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
)

// VertexID indexes into WeaveGraph.vertices.
type VertexID int

// HalfEdgeID indexes into WeaveGraph.halfEdges.
type HalfEdgeID int

const noEdge HalfEdgeID = -1

// VertexKind distinguishes the two roles a weave vertex can play: CL
// vertices are real machined points (interval endpoints);
// INT vertices are routing points created where an X interval crosses
// a Y interval, and are skipped when a loop's CL point sequence is
// emitted.
type VertexKind int

const (
	// KindCL is a cutter-location point: an interval's lower or upper
	// endpoint.
	KindCL VertexKind = iota
	// KindINT is an internal crossing point between an X and a Y
	// interval, used only to route the face walk.
	KindINT
)

// Vertex is one node of the weave diagram.
type Vertex struct {
	Pos  geom.Point
	Kind VertexKind
	// out lists the half-edges whose Origin is this vertex, in
	// insertion order. linkFaces sorts a copy of this by outgoing
	// angle before assigning Next pointers.
	out []HalfEdgeID
}

// HalfEdge is one directed edge of the weave diagram.
type HalfEdge struct {
	Origin  VertexID
	Twin    HalfEdgeID
	Next    HalfEdgeID
	Axis    fiber.Axis
	visited bool
}

// WeaveGraph is the arena holding every vertex and half-edge created
// while building a waterline slice.
type WeaveGraph struct {
	vertices  []Vertex
	halfEdges []HalfEdge

	// clVertices seeds face_traverse: the set of CL vertices to start
	// walks from.
	clVertices []VertexID

	// clIndex lets two fibers' interval endpoints that land on the
	// same geometric point (e.g. a loop's corner, where an X-interval
	// boundary coincides with a Y-interval boundary) share a single
	// vertex instead of producing two unconnected ones. Without this,
	// a rectangular loop's corners would never link into a face.
	clIndex map[posKey]VertexID
}

// posKey rounds a position to a small tolerance so that floating-point
// noise from two different fiber parameterizations landing on "the
// same" point doesn't produce two distinct vertices.
type posKey struct{ x, y, z int64 }

const posEps = 1e-6

func keyOf(p geom.Point) posKey {
	return posKey{
		x: int64(math.Round(p.X / posEps)),
		y: int64(math.Round(p.Y / posEps)),
		z: int64(math.Round(p.Z / posEps)),
	}
}

func newGraph() *WeaveGraph {
	return &WeaveGraph{clIndex: make(map[posKey]VertexID)}
}

// addVertex creates a new vertex and returns its id. CL vertices are
// also recorded in clVertices.
func (g *WeaveGraph) addVertex(pos geom.Point, kind VertexKind) VertexID {
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{Pos: pos, Kind: kind})
	if kind == KindCL {
		g.clVertices = append(g.clVertices, id)
	}
	return id
}

// addCLVertex returns the existing CL vertex at pos if one was already
// created (by another fiber's interval boundary landing on the same
// point), otherwise creates a new one.
func (g *WeaveGraph) addCLVertex(pos geom.Point) VertexID {
	k := keyOf(pos)
	if id, ok := g.clIndex[k]; ok {
		return id
	}
	id := g.addVertex(pos, KindCL)
	g.clIndex[k] = id
	return id
}

// addEdgePair creates two mutually-twinned half-edges between a and b,
// tagged with axis, and registers both as outgoing edges of their
// respective origins.
func (g *WeaveGraph) addEdgePair(a, b VertexID, axis fiber.Axis) {
	ab := HalfEdgeID(len(g.halfEdges))
	ba := ab + 1
	g.halfEdges = append(g.halfEdges,
		HalfEdge{Origin: a, Twin: ba, Next: noEdge, Axis: axis},
		HalfEdge{Origin: b, Twin: ab, Next: noEdge, Axis: axis},
	)
	g.vertices[a].out = append(g.vertices[a].out, ab)
	g.vertices[b].out = append(g.vertices[b].out, ba)
}

// direction returns the unit direction vector of half-edge he, in the
// XY plane.
func (g *WeaveGraph) direction(he HalfEdgeID) geom.Point {
	e := g.halfEdges[he]
	twinOrigin := g.halfEdges[e.Twin].Origin
	from := g.vertices[e.Origin].Pos
	to := g.vertices[twinOrigin].Pos
	d := to.Sub(from)
	d.Z = 0
	return d
}

// linkFaces assigns Next to every half-edge: for half-edge h, Next(h)
// is the outgoing half-edge at h's destination vertex that immediately
// follows Twin(h) in that vertex's counter-clockwise angular order,
// wrapping around. This is the standard DCEL "face to the right" rule,
// and — because every edge in a weave diagram points along one of the
// four axis-aligned compass directions — sorting by angle alone gives
// the X/Y axis alternation a crossing's four arms need at an INT
// vertex with no special-cased logic: East, North, West, South visit
// the edge's own axis and the perpendicular axis in strict alternation.
func (g *WeaveGraph) linkFaces() {
	for v := range g.vertices {
		out := append([]HalfEdgeID(nil), g.vertices[v].out...)
		if len(out) < 2 {
			continue
		}
		angle := make(map[HalfEdgeID]float64, len(out))
		for _, he := range out {
			d := g.direction(he)
			angle[he] = math.Atan2(d.Y, d.X)
		}
		// sort out by angle ascending (CCW from +X axis)
		for i := 1; i < len(out); i++ {
			for j := i; j > 0 && angle[out[j-1]] > angle[out[j]]; j-- {
				out[j-1], out[j] = out[j], out[j-1]
			}
		}
		g.vertices[v].out = out
	}

	for h := range g.halfEdges {
		twin := g.halfEdges[h].Twin
		destVertex := g.halfEdges[twin].Origin
		order := g.vertices[destVertex].out
		pos := -1
		for i, he := range order {
			if he == twin {
				pos = i
				break
			}
		}
		next := order[(pos+1)%len(order)]
		g.halfEdges[h].Next = next
	}
}
