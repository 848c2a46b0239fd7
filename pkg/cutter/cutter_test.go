package cutter

import (
	"math"
	"testing"

	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

func equilateralTriangle(side float64) trimesh.Triangle {
	h := side * 0.8660254037844386
	return trimesh.NewTriangle(
		geom.Pt(0, 0, 0),
		geom.Pt(side, 0, 0),
		geom.Pt(side/2, h, 0),
	)
}

// TestBallFacetDropOffsetsTriangleEdge checks the basic offset
// property: a horizontal equilateral triangle of side 10, waterlined
// with a ball cutter of radius 1. The resulting contact region,
// projected onto a fiber crossing one edge, should be offset outward
// by about the cutter radius relative to the bare edge.
func TestBallFacetDropOffsetsTriangleEdge(t *testing.T) {
	tri := equilateralTriangle(10)
	ball, err := NewBall(1)
	if err != nil {
		t.Fatalf("NewBall: %v", err)
	}

	// Fiber along Y through the triangle's leftmost region, crossing
	// the bottom edge (y=0) with room on both sides for the radius
	// offset to show up.
	f, err := fiber.New(geom.Pt(2, -5, 0), geom.Pt(2, 5, 0), fiber.AxisY)
	if err != nil {
		t.Fatalf("fiber.New: %v", err)
	}

	iv, err := ball.FacetDrop(f, tri)
	if err != nil {
		t.Fatalf("FacetDrop: %v", err)
	}
	if iv.Empty() {
		t.Fatal("expected a non-empty contact interval crossing the triangle")
	}

	// Lower bound (fiber starts outside, below y=0) should sit close to
	// y = -1 (one radius below the bare edge at y=0), not at y=0.
	lowerY := f.Point(iv.Lower).Y
	if math.Abs(lowerY-(-1)) > 0.3 {
		t.Fatalf("lower contact bound y=%v, want close to -1 (edge offset by cutter radius)", lowerY)
	}
}

func TestScanContactIntervalNoContact(t *testing.T) {
	ball, err := NewBall(0.1)
	if err != nil {
		t.Fatalf("NewBall: %v", err)
	}
	f, err := fiber.New(geom.Pt(100, 0, 0), geom.Pt(100, 1, 0), fiber.AxisY)
	if err != nil {
		t.Fatalf("fiber.New: %v", err)
	}
	iv, err := ball.VertexDrop(f, geom.Pt(0, 0, 0))
	if err != nil {
		t.Fatalf("VertexDrop: %v", err)
	}
	if !iv.Empty() {
		t.Fatalf("expected no contact for a vertex far from the fiber, got %v", iv)
	}
}

func TestCylindricalVertexDropContactsAtClosestApproach(t *testing.T) {
	cyl, err := NewCylindrical(1)
	if err != nil {
		t.Fatalf("NewCylindrical: %v", err)
	}
	f, err := fiber.New(geom.Pt(-5, 0, 0), geom.Pt(5, 0, 0), fiber.AxisX)
	if err != nil {
		t.Fatalf("fiber.New: %v", err)
	}
	iv, err := cyl.VertexDrop(f, geom.Pt(0, 0.5, 0))
	if err != nil {
		t.Fatalf("VertexDrop: %v", err)
	}
	if iv.Empty() {
		t.Fatal("expected contact: vertex lies within radius of the fiber line")
	}
	mid := f.Point((iv.Lower + iv.Upper) / 2)
	if math.Abs(mid.X) > 0.2 {
		t.Fatalf("expected contact centered near x=0 (closest approach), got x=%v", mid.X)
	}
}

func TestEdgeDropRejectsDegenerateEdge(t *testing.T) {
	ball, _ := NewBall(1)
	f, _ := fiber.New(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), fiber.AxisX)
	p := geom.Pt(1, 1, 1)
	if _, err := ball.EdgeDrop(f, p, p); err == nil {
		t.Fatal("expected an error for a degenerate (zero-length) edge")
	}
}

func TestFacetDropRejectsDegenerateTriangle(t *testing.T) {
	ball, _ := NewBall(1)
	f, _ := fiber.New(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), fiber.AxisX)
	tri := trimesh.NewTriangle(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(2, 0, 0))
	if _, err := ball.FacetDrop(f, tri); err == nil {
		t.Fatal("expected an error for a degenerate (collinear) triangle")
	}
}

func TestConicalNarrowsTowardTip(t *testing.T) {
	cone, err := NewConical(2, math.Pi/4)
	if err != nil {
		t.Fatalf("NewConical: %v", err)
	}
	// Fiber's cutting plane sits at z=3; a vertex 0.5 below that plane
	// is still well inside the cone's narrow tip, so a vertex offset by
	// 1 laterally should be out of reach even though the nominal radius
	// is 2.
	f, err := fiber.New(geom.Pt(-5, 0, 3), geom.Pt(5, 0, 3), fiber.AxisX)
	if err != nil {
		t.Fatalf("fiber.New: %v", err)
	}
	iv, err := cone.VertexDrop(f, geom.Pt(0, 1, 2.5))
	if err != nil {
		t.Fatalf("VertexDrop: %v", err)
	}
	if !iv.Empty() {
		t.Fatalf("expected no contact near the cone's tip (effective radius well under 1), got %v", iv)
	}

	// The same vertex, much deeper below the cutting plane, falls
	// within the cone's now-wider local radius.
	iv, err = cone.VertexDrop(f, geom.Pt(0, 1, -5))
	if err != nil {
		t.Fatalf("VertexDrop: %v", err)
	}
	if iv.Empty() {
		t.Fatal("expected contact once the cone has widened past the vertex's lateral offset")
	}
}

func TestToroidalFlatAtTipAndFullRadiusPastCorner(t *testing.T) {
	bull, err := NewToroidal(2, 0.5)
	if err != nil {
		t.Fatalf("NewToroidal: %v", err)
	}
	f, err := fiber.New(geom.Pt(-5, 0, 0), geom.Pt(5, 0, 0), fiber.AxisX)
	if err != nil {
		t.Fatalf("fiber.New: %v", err)
	}

	if got := bull.radiusAt(f, 0); math.Abs(got-1.5) > 1e-9 {
		t.Fatalf("radiusAt tip = %v, want radius-cornerRadius = 1.5", got)
	}
	if got := bull.radiusAt(f, -10); math.Abs(got-2) > 1e-9 {
		t.Fatalf("radiusAt past the corner = %v, want full radius 2", got)
	}
}

func TestNewCuttersRejectInvalidParameters(t *testing.T) {
	if _, err := NewBall(0); err == nil {
		t.Error("NewBall(0) should error")
	}
	if _, err := NewCylindrical(-1); err == nil {
		t.Error("NewCylindrical(-1) should error")
	}
	if _, err := NewToroidal(1, 2); err == nil {
		t.Error("NewToroidal with cornerRadius > radius should error")
	}
	if _, err := NewConical(1, 0); err == nil {
		t.Error("NewConical with zero half-angle should error")
	}
	if _, err := NewConical(1, math.Pi/2); err == nil {
		t.Error("NewConical with half-angle >= pi/2 should error")
	}
}
