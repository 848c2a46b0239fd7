package marchingcubes

import (
	"math"
	"sort"

	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/glpool"
)

// weldKey rounds a position to a small tolerance so that the many
// tetrahedra sharing a cube's face diagonal, which each interpolate
// the same cut edge independently (and in opposite point order, so
// not necessarily bit-identical), land on one pool vertex instead of
// one per triangle corner. Same tolerance as weave/graph.go's posKey.
type weldKey struct{ x, y, z int64 }

const weldEps = 1e-6

func keyOf(p geom.Point) weldKey {
	return weldKey{
		x: int64(math.Round(p.X / weldEps)),
		y: int64(math.Round(p.Y / weldEps)),
		z: int64(math.Round(p.Z / weldEps)),
	}
}

// WriteLeaf triangulates a leaf's corners/signed-distances and writes
// the result into pool as new vertices and polygons owned by owner,
// welding vertices shared between triangles within the leaf into a
// single pool entry, and returns the vertex ids so the caller (an
// octree node) can record them for later removal when the leaf's
// isosurface goes stale again.
func WriteLeaf(pool *glpool.Pool, owner glpool.SwapNotifier, corners [8]geom.Point, f [8]float64) ([]glpool.VertexID, error) {
	tris := Triangulate(corners, f)
	var ids []glpool.VertexID
	weld := make(map[weldKey]glpool.VertexID)

	vertexID := func(p geom.Point) glpool.VertexID {
		key := keyOf(p)
		if id, ok := weld[key]; ok {
			return id
		}
		id := pool.AddVertex(glpool.Vertex{X: p.X, Y: p.Y, Z: p.Z}, owner)
		weld[key] = id
		ids = append(ids, id)
		return id
	}

	for _, tri := range tris {
		va := vertexID(tri.A)
		vb := vertexID(tri.B)
		vc := vertexID(tri.C)
		if _, err := pool.AddPolygon([]glpool.VertexID{va, vb, vc}); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// ClearLeaf removes every vertex a previous WriteLeaf call returned,
// which also removes the polygons built from them (glpool.RemoveVertex
// cascades to its polygons). Callers must do this before a leaf's next
// WriteLeaf. ids need not be the tail of the pool's vertex array:
// removing highest-id-first means every vertex swap-and-pop moves into
// a freed slot has a higher id than any id still pending in the batch,
// so no id in the batch is invalidated by removing another. A moved
// vertex belonging to another owner is reported to that owner through
// its SwapVertexIndex.
func ClearLeaf(pool *glpool.Pool, ids []glpool.VertexID) error {
	sorted := append([]glpool.VertexID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	for _, id := range sorted {
		if err := pool.RemoveVertex(id); err != nil {
			return err
		}
	}
	return nil
}
