package cutter

import (
	"math"

	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

// Conical is a V-shaped (cone) mill of the given half-angle, truncated
// at radius. Unlike Ball/Cylindrical/Toroidal, its lateral reach genuinely
// narrows toward its tip: treating the apex as sitting level with the
// fiber's own cutting plane, the cone's local radius at depth dz below
// that plane is dz*tan(halfAngle), until it reaches the nominal radius
// and the tool transitions to its cylindrical shank.
type Conical struct {
	radius    float64
	halfAngle float64 // radians
}

// NewConical returns a cone-shaped cutter. radius must be positive and
// halfAngle must lie in (0, pi/2).
func NewConical(radius, halfAngle float64) (*Conical, error) {
	if radius <= 0 {
		return nil, &cncerr.InputError{
			Op:      "cutter.NewConical",
			Detail:  "radius must be positive",
			Context: cncerr.Context{"radius": radius},
		}
	}
	if halfAngle <= 0 || halfAngle >= math.Pi/2 {
		return nil, &cncerr.InputError{
			Op:      "cutter.NewConical",
			Detail:  "halfAngle must be in (0, pi/2)",
			Context: cncerr.Context{"halfAngle": halfAngle},
		}
	}
	return &Conical{radius: radius, halfAngle: halfAngle}, nil
}

// Radius returns the cutter's overall lateral reach, once the cone
// widens past its shank transition.
func (c *Conical) Radius() float64 { return c.radius }

// HalfAngle returns the cone's half-angle in radians.
func (c *Conical) HalfAngle() float64 { return c.halfAngle }

// radiusAt returns the cone's local lateral reach at depth
// f.P1.Z-featureZ below the fiber's cutting plane, where the apex sits.
// A feature level with or above that plane (dz<=0) only contacts the
// apex point itself.
func (c *Conical) radiusAt(f *fiber.Fiber, featureZ float64) float64 {
	dz := f.P1.Z - featureZ
	if dz <= 0 {
		return 0
	}
	eff := dz * math.Tan(c.halfAngle)
	if eff > c.radius {
		eff = c.radius
	}
	return eff
}

func (c *Conical) VertexDrop(f *fiber.Fiber, v geom.Point) (*fiber.Interval, error) {
	return vertexDrop(f, v, c.radiusAt)
}

func (c *Conical) EdgeDrop(f *fiber.Fiber, a, b geom.Point) (*fiber.Interval, error) {
	return edgeDrop("Conical.EdgeDrop", f, a, b, c.radiusAt)
}

func (c *Conical) FacetDrop(f *fiber.Fiber, tri trimesh.Triangle) (*fiber.Interval, error) {
	return facetDrop("Conical.FacetDrop", f, tri, c.radiusAt)
}
