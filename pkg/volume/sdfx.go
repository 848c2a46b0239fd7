package volume

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-cam/camkernel/pkg/geom"
)

// sdfVolume adapts an sdf.SDF3 to OCTVolume. This is the same
// wrap/unwrap pattern the teacher's sdfxSolid used for kernel.Solid,
// now exposing Dist/Bbox instead of a ToMesh pipeline.
type sdfVolume struct {
	s sdf.SDF3
}

func wrap(s sdf.SDF3) OCTVolume { return &sdfVolume{s: s} }

func unwrap(v OCTVolume) sdf.SDF3 {
	if sv, ok := v.(*sdfVolume); ok {
		return sv.s
	}
	return nil
}

func (v *sdfVolume) Dist(p geom.Point) float64 {
	return v.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (v *sdfVolume) Bbox() geom.Bbox {
	bb := v.s.BoundingBox()
	out := geom.NewBbox()
	out.AddPoint(geom.Pt(bb.Min.X, bb.Min.Y, bb.Min.Z))
	out.AddPoint(geom.Pt(bb.Max.X, bb.Max.Y, bb.Max.Z))
	return out
}

// SphereVolume returns a ball-end tool's swept shape when it's held
// stationary at center: a sphere of the given radius.
func SphereVolume(center geom.Point, radius float64) (OCTVolume, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("volume: sphere: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{X: center.X, Y: center.Y, Z: center.Z})
	return wrap(sdf.Transform3D(s, m)), nil
}

// BoxVolume returns an axis-aligned box volume spanning min..max.
func BoxVolume(min, max geom.Point) (OCTVolume, error) {
	size := v3.Vec{X: max.X - min.X, Y: max.Y - min.Y, Z: max.Z - min.Z}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("volume: box: min must be strictly less than max on every axis")
	}
	s, err := sdf.Box3D(size, 0)
	if err != nil {
		return nil, fmt.Errorf("volume: box: %w", err)
	}
	center := v3.Vec{X: min.X + size.X/2, Y: min.Y + size.Y/2, Z: min.Z + size.Z/2}
	m := sdf.Translate3d(center)
	return wrap(sdf.Transform3D(s, m)), nil
}

// CylinderVolume returns a flat-end tool's swept shape while plunging
// straight down: a vertical cylinder of the given height and radius,
// with its base centered at base.
func CylinderVolume(base geom.Point, height, radius float64) (OCTVolume, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("volume: cylinder: height and radius must be positive")
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("volume: cylinder: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{X: base.X, Y: base.Y, Z: base.Z + height/2})
	return wrap(sdf.Transform3D(s, m)), nil
}

// booleanVolume composes two OCTVolumes by the general CSG identity
// on their signed distances (union = min, intersect = max, difference
// = max(dA,-dB)), used whenever at least one operand isn't backed by
// an sdf.SDF3 — CapsuleVolume, for one — so unwrap's nil for a
// non-sdfVolume never reaches sdf.Union3D/Intersect3D/Difference3D.
type booleanVolume struct {
	a, b OCTVolume
	dist func(da, db float64) float64
	bbox func(a, b geom.Bbox) geom.Bbox
}

func (v *booleanVolume) Dist(p geom.Point) float64 {
	return v.dist(v.a.Dist(p), v.b.Dist(p))
}

func (v *booleanVolume) Bbox() geom.Bbox {
	return v.bbox(v.a.Bbox(), v.b.Bbox())
}

func unionBbox(a, b geom.Bbox) geom.Bbox {
	bb := geom.NewBbox()
	bb.AddBbox(a)
	bb.AddBbox(b)
	return bb
}

// bothSDF reports whether a and b are both sdf.SDF3-backed, the only
// case where the faster sdf.Union3D/Intersect3D/Difference3D path
// applies.
func bothSDF(a, b OCTVolume) bool {
	_, aok := a.(*sdfVolume)
	_, bok := b.(*sdfVolume)
	return aok && bok
}

// UnionVolume returns the union of two volumes, used to accumulate a
// tool's full swept path from a sequence of instantaneous positions.
func UnionVolume(a, b OCTVolume) OCTVolume {
	if bothSDF(a, b) {
		return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
	}
	return &booleanVolume{a: a, b: b, dist: math.Min, bbox: unionBbox}
}

// IntersectVolume returns the intersection of two volumes.
func IntersectVolume(a, b OCTVolume) OCTVolume {
	if bothSDF(a, b) {
		return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
	}
	return &booleanVolume{a: a, b: b, dist: math.Max, bbox: unionBbox}
}

// DifferenceVolume returns a minus b. The result's bbox is a's alone,
// since a minus anything is never larger than a.
func DifferenceVolume(a, b OCTVolume) OCTVolume {
	if bothSDF(a, b) {
		return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
	}
	return &booleanVolume{
		a:    a,
		b:    b,
		dist: func(da, db float64) float64 { return math.Max(da, -db) },
		bbox: func(a, b geom.Bbox) geom.Bbox { return a },
	}
}
