// Package cutsim orchestrates the cut-simulation pipeline: subtract a
// sequence of tool-swept OCTVolumes from an octree representing stock,
// regenerate marching-cubes triangles for every leaf the subtraction
// invalidated, and keep those triangles patched into a GL vertex/index
// pool.
//
// Mirrors pkg/waterline's role as the top-level driver for the
// waterline pipeline; grounded the same way, on
// original_source/src/cutsim/octree.hpp's public method shape
// (diff_negative, updateGL) minus the Qt/OpenGL binding layer.
package cutsim

import (
	"fmt"

	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/glpool"
	"github.com/go-cam/camkernel/pkg/marchingcubes"
	"github.com/go-cam/camkernel/pkg/octree"
	"github.com/go-cam/camkernel/pkg/volume"
)

// Simulation holds the stock octree and the GL pool its isosurface is
// mirrored into.
type Simulation struct {
	Tree *octree.Octree
	Pool *glpool.Pool
}

// New builds a Simulation around an octree representing stock of the
// given half-extent, a single root node that Cut subdivides on demand
// down to maxDepth, and an empty GL pool. Since DiffNegative subtracts
// tool volumes (leaving material where f>0), the tree starts with every
// corner already outside the (empty) tool union — the farOutside corner
// values and Outside=true that octree's newNode gives every node cover
// this.
func New(stockHalfExtent float64, maxDepth int, center geom.Point) (*Simulation, error) {
	tree, err := octree.New(stockHalfExtent, maxDepth, center)
	if err != nil {
		return nil, fmt.Errorf("cutsim: %w", err)
	}
	return &Simulation{Tree: tree, Pool: glpool.New()}, nil
}

// Cut subtracts vol from the stock and re-triangulates every leaf the
// subtraction touched: traverse and subdivide where vol straddles a
// node, update corner distances by f := min(f, vol.Dist(corner)), then
// regenerate triangles for leaves marked invalid.
func (s *Simulation) Cut(vol volume.OCTVolume) error {
	// DiffNegative's only possible error is cncerr.ErrCapacity, signaling
	// a node still straddled vol when MaxDepth stopped refinement — not
	// a failure, so it's intentionally not propagated here.
	_ = s.Tree.DiffNegative(vol)
	return s.Resync()
}

// leafOwner is the glpool.SwapNotifier registered for a leaf's
// vertices. It looks the node up by id on every notification, since a
// *Node taken from the tree goes stale once a later Cut subdivides and
// the node arena grows.
type leafOwner struct {
	tree *octree.Octree
	id   octree.NodeID
}

func (o leafOwner) SwapVertexIndex(oldIdx, newIdx glpool.VertexID) {
	o.tree.Node(o.id).SwapVertexIndex(oldIdx, newIdx)
}

// Resync regenerates triangles for every leaf whose isosurface is
// stale, patching the GL pool in place. Cut calls this automatically;
// it is exposed separately because a caller batching several Cut
// volumes back-to-back may want to call DiffNegative several times
// before paying for one Resync pass.
func (s *Simulation) Resync() error {
	for _, id := range s.Tree.GetInvalidLeafNodes() {
		n := s.Tree.Node(id)
		if len(n.GLVertices) > 0 {
			if err := marchingcubes.ClearLeaf(s.Pool, n.GLVertices); err != nil {
				return fmt.Errorf("cutsim: clearing leaf %d: %w", id, err)
			}
			n.GLVertices = nil
		}
		if n.Outside {
			n.MarkIsosurfaceValid()
			continue
		}
		ids, err := marchingcubes.WriteLeaf(s.Pool, leafOwner{tree: s.Tree, id: id}, n.Vertex, n.F)
		if err != nil {
			return fmt.Errorf("cutsim: triangulating leaf %d: %w", id, err)
		}
		n.GLVertices = ids
		n.MarkIsosurfaceValid()
	}
	return nil
}
