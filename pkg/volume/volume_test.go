package volume

import (
	"testing"

	"github.com/go-cam/camkernel/pkg/geom"
)

func TestSphereVolumeDistSign(t *testing.T) {
	v, err := SphereVolume(geom.Pt(0, 0, 0), 5)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}
	if d := v.Dist(geom.Pt(0, 0, 0)); d >= 0 {
		t.Fatalf("center should be inside (negative dist), got %v", d)
	}
	if d := v.Dist(geom.Pt(100, 0, 0)); d <= 0 {
		t.Fatalf("far point should be outside (positive dist), got %v", d)
	}
}

func TestBoxVolumeRejectsInvertedBounds(t *testing.T) {
	if _, err := BoxVolume(geom.Pt(1, 0, 0), geom.Pt(0, 1, 1)); err == nil {
		t.Fatal("expected an error when min.X > max.X")
	}
}

func TestCapsuleVolumeDist(t *testing.T) {
	v, err := CapsuleVolume(geom.Pt(0, 0, 0), geom.Pt(10, 0, 0), 1)
	if err != nil {
		t.Fatalf("CapsuleVolume: %v", err)
	}
	// A point on the swept axis, between the two ends, is inside.
	if d := v.Dist(geom.Pt(5, 0, 0)); d >= 0 {
		t.Fatalf("point on the sweep axis should be inside, got %v", d)
	}
	// A point just past the capsule radius off the axis is outside.
	if d := v.Dist(geom.Pt(5, 2, 0)); d <= 0 {
		t.Fatalf("point 2 units off a radius-1 axis should be outside, got %v", d)
	}
	bb := v.Bbox()
	if bb.IsEmpty() {
		t.Fatal("capsule bbox should not be empty")
	}
}

// TestUnionVolumeMixesCapsuleAndSDF exercises the non-sdf.SDF3 CSG
// path: CapsuleVolume has no backing sdf.SDF3, so combining it with a
// SphereVolume must fall back to the Dist-based booleanVolume instead
// of handing sdf.Union3D a nil operand.
func TestUnionVolumeMixesCapsuleAndSDF(t *testing.T) {
	capsule, err := CapsuleVolume(geom.Pt(0, 0, 0), geom.Pt(10, 0, 0), 1)
	if err != nil {
		t.Fatalf("CapsuleVolume: %v", err)
	}
	sphere, err := SphereVolume(geom.Pt(20, 0, 0), 1)
	if err != nil {
		t.Fatalf("SphereVolume: %v", err)
	}

	u := UnionVolume(capsule, sphere)
	if d := u.Dist(geom.Pt(5, 0, 0)); d >= 0 {
		t.Fatalf("point inside the capsule should be inside the union, got %v", d)
	}
	if d := u.Dist(geom.Pt(20, 0, 0)); d >= 0 {
		t.Fatalf("point inside the sphere should be inside the union, got %v", d)
	}
	if d := u.Dist(geom.Pt(5, 100, 0)); d <= 0 {
		t.Fatalf("point far from both should be outside the union, got %v", d)
	}
	if u.Bbox().IsEmpty() {
		t.Fatal("union bbox should not be empty")
	}
}

func TestCylinderVolumeRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := CylinderVolume(geom.Pt(0, 0, 0), 0, 1); err == nil {
		t.Fatal("expected an error for zero height")
	}
	if _, err := CylinderVolume(geom.Pt(0, 0, 0), 1, -1); err == nil {
		t.Fatal("expected an error for negative radius")
	}
}
