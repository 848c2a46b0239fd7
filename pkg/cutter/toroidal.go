package cutter

import (
	"math"

	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

// Toroidal is a bull-nose mill: a cylinder of radius, rounded off by a
// corner torus of cornerRadius. The torus center sits cornerRadius above
// the tool's lowest point, offset radius-cornerRadius from the axis, so
// the very bottom of the tool is already a flat disc of that offset
// radius, not a point — the profile widens smoothly out to the full
// radius once the corner is cleared, at a depth of cornerRadius below
// the tip.
type Toroidal struct {
	radius       float64
	cornerRadius float64
}

// NewToroidal returns a bull-nose cutter. radius must be positive and
// cornerRadius must lie in (0, radius].
func NewToroidal(radius, cornerRadius float64) (*Toroidal, error) {
	if radius <= 0 {
		return nil, &cncerr.InputError{
			Op:      "cutter.NewToroidal",
			Detail:  "radius must be positive",
			Context: cncerr.Context{"radius": radius},
		}
	}
	if cornerRadius <= 0 || cornerRadius > radius {
		return nil, &cncerr.InputError{
			Op:      "cutter.NewToroidal",
			Detail:  "cornerRadius must be in (0, radius]",
			Context: cncerr.Context{"radius": radius, "cornerRadius": cornerRadius},
		}
	}
	return &Toroidal{radius: radius, cornerRadius: cornerRadius}, nil
}

// Radius returns the cutter's overall lateral reach.
func (c *Toroidal) Radius() float64 { return c.radius }

// CornerRadius returns the torus corner radius.
func (c *Toroidal) CornerRadius() float64 { return c.cornerRadius }

// radiusAt returns the bull-nose profile's lateral extent at depth
// f.P1.Z-featureZ below the tool's lowest point. The profile is flat at
// radius-cornerRadius right at the tip, traces the torus's quarter
// circle out to cornerRadius, then holds at the full radius beyond
// that — clamping dz into [0, cornerRadius] and evaluating the same
// formula covers all three regimes.
func (c *Toroidal) radiusAt(f *fiber.Fiber, featureZ float64) float64 {
	dz := f.P1.Z - featureZ
	if dz < 0 {
		dz = 0
	} else if dz > c.cornerRadius {
		dz = c.cornerRadius
	}
	inner := c.radius - c.cornerRadius
	return inner + math.Sqrt(c.cornerRadius*c.cornerRadius-(c.cornerRadius-dz)*(c.cornerRadius-dz))
}

func (c *Toroidal) VertexDrop(f *fiber.Fiber, v geom.Point) (*fiber.Interval, error) {
	return vertexDrop(f, v, c.radiusAt)
}

func (c *Toroidal) EdgeDrop(f *fiber.Fiber, a, b geom.Point) (*fiber.Interval, error) {
	return edgeDrop("Toroidal.EdgeDrop", f, a, b, c.radiusAt)
}

func (c *Toroidal) FacetDrop(f *fiber.Fiber, tri trimesh.Triangle) (*fiber.Interval, error) {
	return facetDrop("Toroidal.FacetDrop", f, tri, c.radiusAt)
}
