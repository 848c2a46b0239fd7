package octree

import (
	"errors"
	"testing"

	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/glpool"
	"github.com/go-cam/camkernel/pkg/volume"
)

func TestNewRejectsInvalidParameters(t *testing.T) {
	if _, err := New(0, 3, geom.Pt(0, 0, 0)); err == nil {
		t.Fatal("expected an error for zero rootScale")
	}
	if _, err := New(10, -1, geom.Pt(0, 0, 0)); err == nil {
		t.Fatal("expected an error for negative maxDepth")
	}
}

func TestNewNodeCornersMatchDirectionTable(t *testing.T) {
	tr, err := New(10, 0, geom.Pt(0, 0, 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := tr.Node(tr.Root())
	if got, want := root.Vertex[2], geom.Pt(-10, -10, -10); got != want {
		t.Fatalf("vertex 2 (bbox min) = %v, want %v", got, want)
	}
	if got, want := root.Vertex[4], geom.Pt(10, 10, 10); got != want {
		t.Fatalf("vertex 4 (bbox max) = %v, want %v", got, want)
	}
	if root.Bbox.IsEmpty() {
		t.Fatal("root bbox should not be empty")
	}
	if !root.Bbox.Contains(geom.Pt(0, 0, 0)) {
		t.Fatal("root bbox should contain its own center")
	}
}

func TestSubdivideRejectsNonLeaf(t *testing.T) {
	tr, _ := New(10, 3, geom.Pt(0, 0, 0))
	if err := tr.Subdivide(tr.Root()); err != nil {
		t.Fatalf("first Subdivide: %v", err)
	}
	if err := tr.Subdivide(tr.Root()); err == nil {
		t.Fatal("expected an error subdividing an already-subdivided node")
	}
}

func TestInitProducesExpectedLeafCount(t *testing.T) {
	tr, _ := New(10, 2, geom.Pt(0, 0, 0))
	if err := tr.Init(2); err != nil {
		t.Fatalf("Init: %v", err)
	}
	leaves := tr.GetLeafNodes()
	if want := 8 * 8; len(leaves) != want {
		t.Fatalf("got %d leaves, want %d", len(leaves), want)
	}
	for _, id := range leaves {
		if tr.Node(id).Depth != 2 {
			t.Fatalf("leaf %d at depth %d, want 2", id, tr.Node(id).Depth)
		}
	}
}

func TestDiffNegativeSubdividesStraddlingNodesOnly(t *testing.T) {
	tr, _ := New(10, 4, geom.Pt(0, 0, 0))
	sphere, err := volume.SphereVolume(geom.Pt(0, 0, 0), 3)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	tr.DiffNegative(sphere)

	root := tr.Node(tr.Root())
	if root.IsLeaf() {
		t.Fatal("root should have subdivided: a radius-3 sphere straddles a scale-10 cube")
	}

	var sawOutsideLeaf bool
	for _, id := range tr.GetLeafNodes() {
		n := tr.Node(id)
		if n.Outside {
			sawOutsideLeaf = true
			continue
		}
		if !n.Inside && n.Depth != tr.MaxDepth() {
			t.Fatalf("straddling leaf %d stopped at depth %d short of MaxDepth %d", id, n.Depth, tr.MaxDepth())
		}
	}
	if !sawOutsideLeaf {
		t.Fatal("expected at least one leaf fully outside the sphere (the cube is much bigger than the sphere)")
	}
}

func TestDiffNegativeReportsCapacityWhenStraddlingAtMaxDepth(t *testing.T) {
	tr, _ := New(10, 1, geom.Pt(0, 0, 0))
	sphere, err := volume.SphereVolume(geom.Pt(0, 0, 0), 3)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	if err := tr.DiffNegative(sphere); !errors.Is(err, cncerr.ErrCapacity) {
		t.Fatalf("expected cncerr.ErrCapacity for a sphere straddling a node at MaxDepth, got %v", err)
	}
}

func TestDiffNegativeSkipsDisjointSubtree(t *testing.T) {
	tr, _ := New(10, 3, geom.Pt(0, 0, 0))
	far, err := volume.SphereVolume(geom.Pt(1000, 1000, 1000), 1)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	tr.DiffNegative(far)
	if !tr.Node(tr.Root()).IsLeaf() {
		t.Fatal("root should stay a leaf: the sphere's bbox never overlaps the tree")
	}
}

func TestDiffNegativeMarksFullyEnclosedNodeInsideWithoutSubdividing(t *testing.T) {
	tr, _ := New(10, 5, geom.Pt(0, 0, 0))
	// A sphere much larger than the tree swallows it whole; every
	// corner is negative, so the root should end up Inside and never
	// need to subdivide.
	huge, err := volume.SphereVolume(geom.Pt(0, 0, 0), 1000)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	tr.DiffNegative(huge)
	root := tr.Node(tr.Root())
	if !root.Inside {
		t.Fatal("root should be fully inside a sphere that swallows the whole tree")
	}
	if !root.IsLeaf() {
		t.Fatal("a fully-inside node should never be subdivided")
	}
}

func TestEvaluateFoldsMinimumAcrossMultipleVolumes(t *testing.T) {
	tr, _ := New(10, 0, geom.Pt(0, 0, 0))
	a, _ := volume.SphereVolume(geom.Pt(0, 0, 0), 1)
	b, _ := volume.SphereVolume(geom.Pt(0, 0, 0), 20)
	tr.evaluate(tr.Root(), a)
	fAfterA := tr.Node(tr.Root()).F[2]
	tr.evaluate(tr.Root(), b)
	fAfterB := tr.Node(tr.Root()).F[2]
	if fAfterB > fAfterA {
		t.Fatalf("evaluate should fold in the minimum signed distance across volumes: got %v then %v", fAfterA, fAfterB)
	}
}

func TestCollapseRetiresUniformChildren(t *testing.T) {
	tr, _ := New(10, 3, geom.Pt(0, 0, 0))
	if err := tr.Subdivide(tr.Root()); err != nil {
		t.Fatalf("Subdivide: %v", err)
	}
	root := tr.Node(tr.Root())
	for _, c := range root.Children {
		cn := tr.Node(c)
		cn.Outside = true
		cn.GLVertices = []glpool.VertexID{glpool.VertexID(c)}
	}
	retired, ok := tr.Collapse(tr.Root())
	if !ok {
		t.Fatal("Collapse should succeed when every child is uniformly outside")
	}
	if len(retired) != 8 {
		t.Fatalf("expected 8 retired GL vertex ids, got %d", len(retired))
	}
	if !tr.Node(tr.Root()).IsLeaf() {
		t.Fatal("root should be a leaf again after Collapse")
	}
}

func TestCollapseRejectsMixedChildren(t *testing.T) {
	tr, _ := New(10, 3, geom.Pt(0, 0, 0))
	_ = tr.Subdivide(tr.Root())
	root := tr.Node(tr.Root())
	tr.Node(root.Children[0]).Outside = true
	tr.Node(root.Children[1]).Inside = true
	tr.Node(root.Children[1]).Outside = false
	if _, ok := tr.Collapse(tr.Root()); ok {
		t.Fatal("Collapse should refuse a mix of inside/outside children")
	}
}
