// Package octree is a sparse signed-distance octree that incrementally
// subtracts tool-swept OCTVolumes from stock, used as the substrate for
// cut-simulation marching cubes.
//
// Grounded on original_source/src/cutsim/octnode.cpp (corner direction
// table, evaluate/subdivide algorithm verbatim) and
// original_source/src/cutsim/octree.hpp (tree-level init/diff_negative
// traversal shape), laid out with the arena+id pattern — a flat
// []Node slice addressed by integer NodeID — the same approach
// pkg/weave uses for its half-edge diagram, rather than the original's
// parent/child pointers, matching the idiom
// other_examples/o0olele-octree-go__octree_node.go and
// other_examples/soypat-gsdf__octree.go use for the same shape in Go.
package octree

import (
	"math"

	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/glpool"
	"github.com/go-cam/camkernel/pkg/volume"
)

// NodeID indexes into Octree.nodes. The zero value, 0, is always the
// root.
type NodeID int

const noNode NodeID = -1

// direction is the fixed cube-corner table: vertex 2 is the bbox
// minimum corner, vertex 4 is the bbox maximum.
var direction = [8]geom.Point{
	geom.Pt(1, 1, -1),
	geom.Pt(-1, 1, -1),
	geom.Pt(-1, -1, -1),
	geom.Pt(1, -1, -1),
	geom.Pt(1, 1, 1),
	geom.Pt(-1, 1, 1),
	geom.Pt(-1, -1, 1),
	geom.Pt(1, -1, 1),
}

// farOutside seeds every corner's signed distance before the first
// evaluate(), standing in for the original's "+∞-ish" initial value.
const farOutside = 1e6

// Node is one octree node, addressed by NodeID rather than pointer.
type Node struct {
	Parent   NodeID
	Children [8]NodeID // noNode if this is a leaf
	Center   geom.Point
	Scale    float64 // half-side length
	Depth    int

	Vertex [8]geom.Point
	F      [8]float64

	Bbox geom.Bbox

	Inside  bool
	Outside bool

	evaluated        bool
	isosurfaceValid  bool

	// GLVertices are the ids, in the owning GL pool, this node's last
	// marching-cubes emission produced — the back-reference a collapse
	// needs so it can retire them.
	GLVertices []glpool.VertexID
}

// SwapVertexIndex implements glpool.SwapNotifier: when the pool's
// swap-and-pop RemoveVertex moves the vertex at oldIdx into newIdx's
// slot, any node still holding that id in GLVertices must update it.
func (n *Node) SwapVertexIndex(oldIdx, newIdx glpool.VertexID) {
	for i, id := range n.GLVertices {
		if id == oldIdx {
			n.GLVertices[i] = newIdx
		}
	}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Children[0] == noNode }

// IsosurfaceValid reports whether this leaf's last marching-cubes
// triangulation is still current.
func (n *Node) IsosurfaceValid() bool { return n.isosurfaceValid }

// MarkIsosurfaceValid records that the caller has brought this leaf's
// GL-pool triangles up to date with its current corner distances.
func (n *Node) MarkIsosurfaceValid() { n.isosurfaceValid = true }

// Octree is the sparse cubical hierarchy this package implements.
type Octree struct {
	nodes     []Node
	rootScale float64
	maxDepth  int
}

// New allocates an Octree with a root node of the given half-side
// scale, centered at center, with a cap of maxDepth on recursive
// subdivision.
func New(rootScale float64, maxDepth int, center geom.Point) (*Octree, error) {
	if rootScale <= 0 {
		return nil, &cncerr.InputError{
			Op:      "octree.New",
			Detail:  "rootScale must be positive",
			Context: cncerr.Context{"rootScale": rootScale},
		}
	}
	if maxDepth < 0 {
		return nil, &cncerr.InputError{
			Op:      "octree.New",
			Detail:  "maxDepth must be non-negative",
			Context: cncerr.Context{"maxDepth": maxDepth},
		}
	}
	t := &Octree{rootScale: rootScale, maxDepth: maxDepth}
	t.nodes = append(t.nodes, newNode(noNode, center, rootScale, 0))
	return t, nil
}

func newNode(parent NodeID, center geom.Point, scale float64, depth int) Node {
	n := Node{Parent: parent, Center: center, Scale: scale, Depth: depth}
	for i := range n.Children {
		n.Children[i] = noNode
	}
	for i := 0; i < 8; i++ {
		n.Vertex[i] = center.Add(direction[i].Mul(scale))
		n.F[i] = farOutside
	}
	n.Bbox = geom.NewBbox()
	n.Bbox.AddPoint(n.Vertex[2]) // minimum corner
	n.Bbox.AddPoint(n.Vertex[4]) // maximum corner
	n.Outside = true
	return n
}

// Root returns the root node's id.
func (t *Octree) Root() NodeID { return 0 }

// Node returns a pointer into the tree's node arena. The pointer is
// invalidated by any call that appends nodes (Subdivide); callers that
// hold onto a *Node across a Subdivide call must re-fetch it.
func (t *Octree) Node(id NodeID) *Node { return &t.nodes[id] }

// MaxDepth returns the tree's maximum subdivision depth.
func (t *Octree) MaxDepth() int { return t.maxDepth }

// LeafScale returns the scale (half-side length) of a leaf at
// MaxDepth — the tree's finest resolution.
func (t *Octree) LeafScale() float64 {
	scale := t.rootScale
	for i := 0; i < t.maxDepth; i++ {
		scale /= 2
	}
	return scale
}

// Subdivide allocates n's eight children. It is fatal (an
// InvariantError in the original, a panic candidate there; here a
// returned error) to subdivide a node that already has children.
func (t *Octree) Subdivide(id NodeID) error {
	n := &t.nodes[id]
	if !n.IsLeaf() {
		return &cncerr.InvariantError{
			Op:      "octree.Subdivide",
			Detail:  "node already has children",
			Context: cncerr.Context{"node": id},
		}
	}
	for i := 0; i < 8; i++ {
		childCenter := n.Center.Add(direction[i].Mul(n.Scale / 2))
		// newNode starts the child Outside, matching its farOutside
		// corner values until a DiffNegative reaches and evaluates it.
		child := newNode(id, childCenter, n.Scale/2, n.Depth+1)
		childID := NodeID(len(t.nodes))
		t.nodes = append(t.nodes, child)
		// Re-fetch n: append may have reallocated the backing array.
		t.nodes[id].Children[i] = childID
	}
	return nil
}

// Init recursively subdivides the whole tree to depth n, mirroring
// the original Octree(...).init(n).
func (t *Octree) Init(n int) error {
	return t.initNode(t.Root(), n)
}

func (t *Octree) initNode(id NodeID, levels int) error {
	if levels <= 0 {
		return nil
	}
	if err := t.Subdivide(id); err != nil {
		return err
	}
	for i := 0; i < 8; i++ {
		child := t.nodes[id].Children[i]
		if err := t.initNode(child, levels-1); err != nil {
			return err
		}
	}
	return nil
}

// GetLeafNodes returns every leaf node's id under root, in traversal
// order.
func (t *Octree) GetLeafNodes() []NodeID {
	var out []NodeID
	t.collectLeaves(t.Root(), &out)
	return out
}

func (t *Octree) collectLeaves(id NodeID, out *[]NodeID) {
	n := &t.nodes[id]
	if n.IsLeaf() {
		*out = append(*out, id)
		return
	}
	for _, c := range n.Children {
		t.collectLeaves(c, out)
	}
}

// GetInvalidLeafNodes returns every leaf whose isosurface needs
// re-triangulation.
func (t *Octree) GetInvalidLeafNodes() []NodeID {
	var out []NodeID
	for _, id := range t.GetLeafNodes() {
		if !t.nodes[id].isosurfaceValid {
			out = append(out, id)
		}
	}
	return out
}

// evaluate computes vol.Dist at node id's eight corners, folding each
// into F[i] via min, and updates the inside/outside flags. Mirrors
// Octnode::evaluate in octnode.cpp.
func (t *Octree) evaluate(id NodeID, vol volume.OCTVolume) {
	n := &t.nodes[id]
	n.Outside, n.Inside = true, true
	for i := 0; i < 8; i++ {
		newF := vol.Dist(n.Vertex[i])
		if !n.evaluated || newF < n.F[i] {
			n.F[i] = newF
			n.isosurfaceValid = false
		}
		if n.F[i] <= 0 {
			n.Outside = false
		} else {
			n.Inside = false
		}
	}
	n.evaluated = true
}

// DiffNegative subtracts vol from the tree: traverse from the root,
// skip subtrees disjoint from vol's bbox, fold in signed distances at
// the corners of every node that bbox overlaps, and subdivide nodes
// that straddle vol, or that may hold vol wholly inside them, down to
// MaxDepth.
//
// Returns cncerr.ErrCapacity if any node was still straddling vol when
// MaxDepth stopped further refinement — not a failure (the cut is still
// applied at the resolution reached), but a caller that wants to know
// can check for it; most callers ignore it.
func (t *Octree) DiffNegative(vol volume.OCTVolume) error {
	hitCapacity := false
	t.diffNegative(t.Root(), vol, &hitCapacity)
	if hitCapacity {
		return cncerr.ErrCapacity
	}
	return nil
}

func (t *Octree) diffNegative(id NodeID, vol volume.OCTVolume, hitCapacity *bool) {
	n := &t.nodes[id]
	if !n.Bbox.Overlaps(vol.Bbox()) {
		return
	}

	t.evaluate(id, vol)
	n = &t.nodes[id]

	if n.Outside {
		// Every corner is outside vol, but vol can still sit wholly
		// inside the node. The node is clear of vol only when vol's
		// distance at the center exceeds the center-to-corner distance;
		// otherwise it is refined like a straddling node.
		if n.Depth >= t.maxDepth || vol.Dist(n.Center) > math.Sqrt(3)*n.Scale {
			return
		}
	} else if n.Inside {
		return
	} else if n.Depth >= t.maxDepth {
		// Straddles: some corners in, some out.
		*hitCapacity = true
		return
	}
	if n.IsLeaf() {
		if err := t.Subdivide(id); err != nil {
			return
		}
	}
	children := t.nodes[id].Children
	for _, c := range children {
		t.diffNegative(c, vol, hitCapacity)
	}
}

// Collapse retires id's children if they are all fully inside or all
// fully outside the stock, marking id itself a leaf again. Reports the
// GL-vertex ids of the retired children so the caller can release them
// from the GL pool. Collapse is a no-op (returns nil, false) on a node
// that is already a leaf or whose children are a mix of
// inside/outside/straddling.
func (t *Octree) Collapse(id NodeID) ([]glpool.VertexID, bool) {
	n := &t.nodes[id]
	if n.IsLeaf() {
		return nil, false
	}

	allInside, allOutside := true, true
	for _, c := range n.Children {
		cn := &t.nodes[c]
		if !cn.IsLeaf() {
			return nil, false
		}
		if !cn.Inside {
			allInside = false
		}
		if !cn.Outside {
			allOutside = false
		}
	}
	if !allInside && !allOutside {
		return nil, false
	}

	var retired []glpool.VertexID
	for _, c := range n.Children {
		retired = append(retired, t.nodes[c].GLVertices...)
	}

	// The retired children themselves stay in t.nodes — this arena only
	// ever grows, so their slots are simply no longer reachable from
	// any Children array rather than reclaimed. Harmless for an
	// append-only tree; would need a free-list if Octree ever needed to
	// reuse those slots.
	n.Children = [8]NodeID{noNode, noNode, noNode, noNode, noNode, noNode, noNode, noNode}
	n.isosurfaceValid = false
	return retired, true
}
