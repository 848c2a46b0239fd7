package weave

import (
	"sort"

	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
)

// WeaveError reports a loop that never closes during face traversal —
// unreachable in a valid planar build, so this is always fatal to the
// current run, never a per-triangle skip. It wraps
// a cncerr.GeometryError so callers matching on the shared taxonomy
// (errors.As into a *cncerr.GeometryError) see weave failures the same
// way as any other geometry degeneracy.
type WeaveError struct {
	*cncerr.GeometryError
}

// Unwrap exposes the wrapped GeometryError to errors.As and errors.Is.
func (e *WeaveError) Unwrap() error { return e.GeometryError }

func newWeaveError(detail string, context cncerr.Context) *WeaveError {
	return &WeaveError{GeometryError: &cncerr.GeometryError{
		Op:      "weave.FaceTraverse",
		Detail:  detail,
		Context: context,
	}}
}

// Weave accumulates a set of fully push-cut X and Y fibers, builds the
// planar half-edge diagram spanning them, and traverses it into
// closed waterline loops. Grounded on
// original_source/src/algo/weave.hpp's addFiber/build/face_traverse/
// getLoops method shape, minus the Python-binding surface.
type Weave struct {
	xfibers []*fiber.Fiber
	yfibers []*fiber.Fiber

	g     *WeaveGraph
	loops [][]VertexID
}

// New returns an empty Weave.
func New() *Weave {
	return &Weave{g: newGraph()}
}

// AddFiber adds a fiber to the weave, in whichever of the X or Y lists
// matches its own Dir.
func (w *Weave) AddFiber(f *fiber.Fiber) {
	switch f.Dir {
	case fiber.AxisX:
		w.xfibers = append(w.xfibers, f)
	default:
		w.yfibers = append(w.yfibers, f)
	}
}

// chain tracks one interval's endpoint vertices and interior (INT)
// vertices while the graph is being built, before the half-edges for
// that interval are created.
type chain struct {
	lower, upper VertexID
	interior     []VertexID
	interiorT    []float64
}

// Build constructs the weave graph in two passes: the first creates CL
// vertices for every interval endpoint and INT vertices for every X/Y
// crossing; the second inserts half-edges along each fiber's interval
// chains.
func (w *Weave) Build() error {
	xChains := make([][]chain, len(w.xfibers))
	yChains := make([][]chain, len(w.yfibers))

	for i, xf := range w.xfibers {
		xChains[i] = make([]chain, len(xf.Intervals()))
		for j, iv := range xf.Intervals() {
			xChains[i][j] = chain{
				lower: w.g.addCLVertex(xf.Point(iv.Lower)),
				upper: w.g.addCLVertex(xf.Point(iv.Upper)),
			}
		}
	}
	for i, yf := range w.yfibers {
		yChains[i] = make([]chain, len(yf.Intervals()))
		for j, iv := range yf.Intervals() {
			yChains[i][j] = chain{
				lower: w.g.addCLVertex(yf.Point(iv.Lower)),
				upper: w.g.addCLVertex(yf.Point(iv.Upper)),
			}
		}
	}

	// Crossings: for every (X interval, Y interval) pair whose ranges
	// straddle each other's fiber position, create one INT vertex and
	// register it into both chains.
	for xi, xf := range w.xfibers {
		y0 := xf.P1.Y
		for xj, xiv := range xf.Intervals() {
			xLo, xHi := span(xf.Point(xiv.Lower).X, xf.Point(xiv.Upper).X)

			for yi, yf := range w.yfibers {
				x0 := yf.P1.X
				// Strict interior: a crossing that lands exactly on an
				// interval boundary is the same point as that
				// interval's own CL endpoint (addCLVertex already
				// dedups it there), not a distinct routing vertex.
				if x0 <= xLo || x0 >= xHi {
					continue
				}
				for yj, yiv := range yf.Intervals() {
					yLo, yHi := span(yf.Point(yiv.Lower).Y, yf.Point(yiv.Upper).Y)
					if y0 <= yLo || y0 >= yHi {
						continue
					}

					z := xf.P1.Z
					cross := w.g.addVertex(geom.Pt(x0, y0, z), KindINT)

					xc := &xChains[xi][xj]
					xc.interior = append(xc.interior, cross)
					xc.interiorT = append(xc.interiorT, x0)

					yc := &yChains[yi][yj]
					yc.interior = append(yc.interior, cross)
					yc.interiorT = append(yc.interiorT, y0)
				}
			}
		}
	}

	// Materialize the half-edge chains.
	for _, fchains := range xChains {
		for _, c := range fchains {
			w.linkChain(c, fiber.AxisX)
		}
	}
	for _, fchains := range yChains {
		for _, c := range fchains {
			w.linkChain(c, fiber.AxisY)
		}
	}

	w.g.linkFaces()
	return nil
}

// linkChain sorts c's interior vertices by parameter and creates the
// half-edge chain lower -> interior... -> upper.
func (w *Weave) linkChain(c chain, axis fiber.Axis) {
	order := make([]int, len(c.interior))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return c.interiorT[order[i]] < c.interiorT[order[j]] })

	verts := make([]VertexID, 0, len(c.interior)+2)
	verts = append(verts, c.lower)
	for _, idx := range order {
		verts = append(verts, c.interior[idx])
	}
	verts = append(verts, c.upper)

	for i := 0; i+1 < len(verts); i++ {
		w.g.addEdgePair(verts[i], verts[i+1], axis)
	}
}

func span(a, b float64) (lo, hi float64) {
	if a < b {
		return a, b
	}
	return b, a
}

// FaceTraverse walks the half-edge diagram into closed loops: from each
// CL vertex, follow unvisited outgoing half-edges via Next until the
// walk returns to its starting edge, recording the CL-vertex positions
// visited (INT vertices are routing points, not machined ones, so
// they're skipped in the emitted loop).
func (w *Weave) FaceTraverse() error {
	w.loops = nil

	for _, start := range w.g.clVertices {
		for _, startEdge := range w.g.vertices[start].out {
			if w.g.halfEdges[startEdge].visited {
				continue
			}

			var loop []VertexID
			he := startEdge
			steps := 0
			maxSteps := 2*len(w.g.halfEdges) + 1
			for {
				e := &w.g.halfEdges[he]
				if e.visited {
					return newWeaveError("face walk revisited a half-edge before closing", cncerr.Context{"halfEdge": he})
				}
				e.visited = true

				if w.g.vertices[e.Origin].Kind == KindCL {
					loop = append(loop, e.Origin)
				}

				if e.Next == noEdge {
					return newWeaveError("half-edge has no Next assigned; linkFaces was not run", cncerr.Context{"halfEdge": he})
				}
				he = e.Next
				steps++
				if steps > maxSteps {
					return newWeaveError("face walk did not close within the graph's edge bound", cncerr.Context{"startEdge": startEdge})
				}
				if he == startEdge {
					break
				}
			}

			// Every undirected edge borders two faces, walked in
			// opposite rotational order. Under linkFaces's Next rule
			// the walk around a component's outer boundary (the
			// unbounded face) runs counter-clockwise, tracing the
			// outline of the region, while each enclosed face is
			// walked clockwise. Keep only the positive-area
			// (counter-clockwise) outline walks and drop the
			// clockwise walks of enclosed faces.
			if signedArea(w.positionsOf(loop)) > 0 {
				w.loops = append(w.loops, loop)
			}
		}
	}

	return nil
}

// positionsOf resolves a loop's vertex ids to positions.
func (w *Weave) positionsOf(loop []VertexID) []geom.Point {
	pts := make([]geom.Point, len(loop))
	for i, id := range loop {
		pts[i] = w.g.vertices[id].Pos
	}
	return pts
}

// signedArea computes twice the signed area of the XY-projected
// polygon via the shoelace formula; positive for counter-clockwise
// vertex order.
func signedArea(pts []geom.Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum
}

// GetLoops returns the CL-point sequence for every closed loop found
// by FaceTraverse.
func (w *Weave) GetLoops() [][]geom.Point {
	out := make([][]geom.Point, 0, len(w.loops))
	for _, loop := range w.loops {
		pts := make([]geom.Point, 0, len(loop))
		for _, vid := range loop {
			pts = append(pts, w.g.vertices[vid].Pos)
		}
		out = append(out, pts)
	}
	return out
}
