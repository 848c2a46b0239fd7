package volume

import (
	"fmt"

	"github.com/go-cam/camkernel/pkg/geom"
)

// capsuleVolume is a ball-end tool's swept shape while moving in a
// straight line between two positions: the Minkowski sum of a line
// segment and a sphere. sdfx has no public capsule primitive with an
// arbitrary-axis constructor, so this is a hand-rolled closed-form
// distance field — the standard capsule SDF, distance to the segment
// minus radius.
type capsuleVolume struct {
	a, b   geom.Point
	radius float64
}

// CapsuleVolume returns the swept volume of a ball of the given radius
// moving in a straight line from a to b.
func CapsuleVolume(a, b geom.Point, radius float64) (OCTVolume, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("volume: capsule: radius must be positive, got %v", radius)
	}
	return &capsuleVolume{a: a, b: b, radius: radius}, nil
}

func (c *capsuleVolume) Dist(p geom.Point) float64 {
	ab := c.b.Sub(c.a)
	abLenSq := ab.Dot(ab)
	var t float64
	if abLenSq > 0 {
		t = p.Sub(c.a).Dot(ab) / abLenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	closest := c.a.Add(ab.Mul(t))
	return p.Distance(closest) - c.radius
}

func (c *capsuleVolume) Bbox() geom.Bbox {
	bb := geom.NewBbox()
	r := c.radius
	bb.AddPoint(geom.Pt(c.a.X-r, c.a.Y-r, c.a.Z-r))
	bb.AddPoint(geom.Pt(c.a.X+r, c.a.Y+r, c.a.Z+r))
	bb.AddPoint(geom.Pt(c.b.X-r, c.b.Y-r, c.b.Z-r))
	bb.AddPoint(geom.Pt(c.b.X+r, c.b.Y+r, c.b.Z+r))
	return bb
}
