// Package glpool is the GL vertex/index pool the octree's
// marching-cubes pass writes triangles into, with swap-and-pop deletion
// so removing a vertex or polygon never leaves a hole in the backing
// arrays.
//
// Grounded on original_source/src/cutsim/gldata.cpp's GLData class:
// addVertex/removeVertex/addPolygon/removePolygon, including the
// overwrite-with-last-element compaction and the back-notification to
// the owning octree node when a vertex's index changes underneath it.
package glpool

import "fmt"

// VertexID indexes into Pool.vertices and Pool.vertexData.
type VertexID int

// PolygonID indexes polygons; Pool.indices[PolygonID*PolyVerts:] holds
// the polygon's vertex ids.
type PolygonID int

// PolyVerts is the vertex count per polygon this pool stores — 3,
// since marching cubes emits triangles.
const PolyVerts = 3

// Vertex is one GL vertex: position plus an RGB color, matching
// GLData's GLVertex(x,y,z,r,g,b) constructor shape.
type Vertex struct {
	X, Y, Z float64
	R, G, B float32
}

// SwapNotifier is implemented by whatever owns a vertex (an octree
// leaf, in this module) so the pool can tell it when removeVertex's
// compaction moves another vertex into its slot. Grounded on
// gldata.cpp's `vertexDataArray[vertexIdx].node->swapIndex(lastIdx,
// vertexIdx)` callback.
type SwapNotifier interface {
	SwapVertexIndex(oldIdx, newIdx VertexID)
}

type vertexData struct {
	owner    SwapNotifier
	polygons []PolygonID
}

func (d *vertexData) addPolygon(p PolygonID) {
	for _, q := range d.polygons {
		if q == p {
			return
		}
	}
	d.polygons = append(d.polygons, p)
}

func (d *vertexData) removePolygon(p PolygonID) {
	for i, q := range d.polygons {
		if q == p {
			d.polygons = append(d.polygons[:i], d.polygons[i+1:]...)
			return
		}
	}
}

// Pool holds the GL-ready vertex and index buffers. The zero value is
// an empty pool, the same one New returns.
type Pool struct {
	vertices   []Vertex
	vertexData []vertexData
	indices    []VertexID
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{}
}

// Vertices returns the live vertex buffer, suitable for upload to a
// GL vertex buffer object. The slice is only valid until the next
// pool mutation.
func (p *Pool) Vertices() []Vertex { return p.vertices }

// Indices returns the live index buffer, suitable for upload to a GL
// index buffer object. Every PolyVerts-run is one triangle's vertex
// ids. The slice is only valid until the next pool mutation.
func (p *Pool) Indices() []VertexID { return p.indices }

// PolygonCount returns the number of live polygons.
func (p *Pool) PolygonCount() int { return len(p.indices) / PolyVerts }

// AddVertex appends v, owned by owner (nil if untracked), and returns
// its id.
func (p *Pool) AddVertex(v Vertex, owner SwapNotifier) VertexID {
	id := VertexID(len(p.vertices))
	p.vertices = append(p.vertices, v)
	p.vertexData = append(p.vertexData, vertexData{owner: owner})
	return id
}

// RemoveVertex deletes vertex idx, first removing every polygon that
// references it, then compacting the vertex array by overwriting idx
// with the last vertex and notifying that vertex's owner of its new
// index.
func (p *Pool) RemoveVertex(idx VertexID) error {
	if int(idx) < 0 || int(idx) >= len(p.vertices) {
		return fmt.Errorf("glpool: vertex index %d out of range [0,%d)", idx, len(p.vertices))
	}
	// RemovePolygon renumbers the polygon it moves into the freed slot,
	// so re-read this vertex's live polygon list after every removal
	// rather than iterating a snapshot whose ids can go stale.
	for len(p.vertexData[idx].polygons) > 0 {
		if err := p.RemovePolygon(p.vertexData[idx].polygons[0]); err != nil {
			return err
		}
	}

	lastIdx := VertexID(len(p.vertices) - 1)
	if idx != lastIdx {
		p.vertices[idx] = p.vertices[lastIdx]
		p.vertexData[idx] = p.vertexData[lastIdx]
		if owner := p.vertexData[idx].owner; owner != nil {
			owner.SwapVertexIndex(lastIdx, idx)
		}
		for _, poly := range p.vertexData[idx].polygons {
			base := int(poly) * PolyVerts
			for m := 0; m < PolyVerts; m++ {
				if p.indices[base+m] == lastIdx {
					p.indices[base+m] = idx
				}
			}
		}
	}
	p.vertices = p.vertices[:lastIdx]
	p.vertexData = p.vertexData[:lastIdx]
	return nil
}

// AddPolygon appends a polygon referencing verts (exactly PolyVerts
// vertex ids) and registers it against each of those vertices.
func (p *Pool) AddPolygon(verts []VertexID) (PolygonID, error) {
	if len(verts) != PolyVerts {
		return 0, fmt.Errorf("glpool: polygon needs exactly %d vertices, got %d", PolyVerts, len(verts))
	}
	for _, v := range verts {
		if int(v) < 0 || int(v) >= len(p.vertices) {
			return 0, fmt.Errorf("glpool: vertex index %d out of range [0,%d)", v, len(p.vertices))
		}
	}
	polygonIdx := PolygonID(len(p.indices) / PolyVerts)
	for _, v := range verts {
		p.indices = append(p.indices, v)
		p.vertexData[v].addPolygon(polygonIdx)
	}
	return polygonIdx, nil
}

// RemovePolygon deletes polygon idx, unregisters it from its vertices,
// and compacts the index array by overwriting idx's slot with the
// last polygon's, per gldata.cpp's removePolygon — including the
// idx==lastIndex boundary case, which is a no-op beyond the trailing
// resize since there is nothing to overwrite with.
func (p *Pool) RemovePolygon(idx PolygonID) error {
	base := int(idx) * PolyVerts
	if base < 0 || base >= len(p.indices) {
		return fmt.Errorf("glpool: polygon index %d out of range", idx)
	}
	for m := 0; m < PolyVerts; m++ {
		p.vertexData[p.indices[base+m]].removePolygon(idx)
	}

	lastIndex := len(p.indices) - PolyVerts
	if base != lastIndex {
		for m := 0; m < PolyVerts; m++ {
			p.indices[base+m] = p.indices[lastIndex+m]
		}
		movedIdx := PolygonID(base / PolyVerts)
		orphanedIdx := PolygonID(lastIndex / PolyVerts)
		for m := 0; m < PolyVerts; m++ {
			v := p.indices[base+m]
			p.vertexData[v].addPolygon(movedIdx)
			p.vertexData[v].removePolygon(orphanedIdx)
		}
	}
	p.indices = p.indices[:lastIndex]
	return nil
}
