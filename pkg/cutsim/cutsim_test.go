package cutsim

import (
	"math"
	"testing"

	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/glpool"
	"github.com/go-cam/camkernel/pkg/volume"
)

// enclosedVolume integrates the divergence theorem over every triangle
// in the pool to recover the volume the triangulated surface encloses:
// sum of the signed tetrahedra each triangle forms with the origin.
// The sign depends on winding, which the caller need not pin down
// exactly since only the magnitude is checked against the analytic
// sphere volume.
func enclosedVolume(pool *glpool.Pool) float64 {
	verts := pool.Vertices()
	indices := pool.Indices()
	var sum float64
	for i := 0; i+glpool.PolyVerts <= len(indices); i += glpool.PolyVerts {
		a := verts[indices[i]]
		b := verts[indices[i+1]]
		c := verts[indices[i+2]]
		sum += a.X*(b.Y*c.Z-b.Z*c.Y) - a.Y*(b.X*c.Z-b.Z*c.X) + a.Z*(b.X*c.Y-b.Y*c.X)
	}
	return math.Abs(sum) / 6
}

func TestCutProducesTrianglesAtToolBoundary(t *testing.T) {
	sim, err := New(20, 4, geom.Pt(0, 0, 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ball, err := volume.SphereVolume(geom.Pt(0, 0, 0), 8)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	if err := sim.Cut(ball); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if len(sim.Pool.Vertices()) == 0 {
		t.Fatal("expected Cut to populate the GL pool with triangles at the sphere's boundary")
	}
	if sim.Pool.PolygonCount() == 0 {
		t.Fatal("expected Cut to populate the GL pool with polygons")
	}
}

// TestCutOnSphereApproximatesAnalyticVolume cuts a sphere out of stock
// deep enough to resolve its boundary, then checks that the resulting
// mesh is both non-trivial (not a handful of degenerate slivers) and a
// reasonable approximation of the sphere it was meant to trace — the
// two properties a marching-tetrahedra mesh needs to be useful as a
// stand-in for classic marching cubes, even though it spends more
// triangles per cube to get there.
func TestCutOnSphereApproximatesAnalyticVolume(t *testing.T) {
	const radius = 8
	sim, err := New(20, 4, geom.Pt(0, 0, 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ball, err := volume.SphereVolume(geom.Pt(0, 0, 0), radius)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	if err := sim.Cut(ball); err != nil {
		t.Fatalf("Cut: %v", err)
	}

	nVerts := len(sim.Pool.Vertices())
	if nVerts < 200 || nVerts > 20000 {
		t.Fatalf("vertex count %d outside the expected order-of-magnitude range for a depth-4 sphere cut (six tetrahedra per leaf emit more vertices than a single marching-cubes case table would)", nVerts)
	}

	got := enclosedVolume(sim.Pool)
	want := 4.0 / 3.0 * math.Pi * radius * radius * radius
	if rel := math.Abs(got-want) / want; rel > 0.3 {
		t.Fatalf("enclosed volume %.1f differs from the analytic sphere volume %.1f by %.0f%%, want within 30%%", got, want, rel*100)
	}
}

func TestCutOnDisjointVolumeLeavesPoolEmpty(t *testing.T) {
	sim, err := New(10, 3, geom.Pt(0, 0, 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	far, err := volume.SphereVolume(geom.Pt(1000, 1000, 1000), 1)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	if err := sim.Cut(far); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if len(sim.Pool.Vertices()) != 0 {
		t.Fatalf("expected no triangles for a volume that never touches the tree, got %d vertices", len(sim.Pool.Vertices()))
	}
}

func TestResyncIsIdempotentWithoutFurtherCuts(t *testing.T) {
	sim, _ := New(20, 3, geom.Pt(0, 0, 0))
	ball, _ := volume.SphereVolume(geom.Pt(0, 0, 0), 8)
	if err := sim.Cut(ball); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	before := len(sim.Pool.Vertices())
	if err := sim.Resync(); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if after := len(sim.Pool.Vertices()); after != before {
		t.Fatalf("Resync without an intervening Cut changed vertex count from %d to %d", before, after)
	}
}

func TestSecondCutReplacesStaleTriangles(t *testing.T) {
	sim, _ := New(20, 4, geom.Pt(0, 0, 0))
	ballSmall, _ := volume.SphereVolume(geom.Pt(0, 0, 0), 4)
	if err := sim.Cut(ballSmall); err != nil {
		t.Fatalf("Cut (small): %v", err)
	}
	firstCount := len(sim.Pool.Vertices())

	ballBig, _ := volume.SphereVolume(geom.Pt(0, 0, 0), 12)
	if err := sim.Cut(ballBig); err != nil {
		t.Fatalf("Cut (big): %v", err)
	}
	secondCount := len(sim.Pool.Vertices())

	if firstCount == 0 || secondCount == 0 {
		t.Fatalf("expected triangles after both cuts, got %d then %d", firstCount, secondCount)
	}
	// A bigger sphere should invalidate and regenerate the leaves near
	// the old, smaller boundary rather than just accumulating stale
	// geometry on top of it.
	for _, id := range sim.Tree.GetLeafNodes() {
		n := sim.Tree.Node(id)
		if !n.IsosurfaceValid() {
			t.Fatalf("leaf %d should have a valid isosurface after Resync", id)
		}
	}
}
