package cutter

import (
	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

// Cylindrical is a flat-end (cylindrical) mill of the given radius.
type Cylindrical struct {
	radius float64
}

// NewCylindrical returns a flat-end cutter. radius must be positive.
func NewCylindrical(radius float64) (*Cylindrical, error) {
	if radius <= 0 {
		return nil, &cncerr.InputError{
			Op:      "cutter.NewCylindrical",
			Detail:  "radius must be positive",
			Context: cncerr.Context{"radius": radius},
		}
	}
	return &Cylindrical{radius: radius}, nil
}

// Radius returns the cutter radius.
func (c *Cylindrical) Radius() float64 { return c.radius }

func (c *Cylindrical) VertexDrop(f *fiber.Fiber, v geom.Point) (*fiber.Interval, error) {
	return vertexDrop(f, v, constantRadius(c.radius))
}

func (c *Cylindrical) EdgeDrop(f *fiber.Fiber, a, b geom.Point) (*fiber.Interval, error) {
	return edgeDrop("Cylindrical.EdgeDrop", f, a, b, constantRadius(c.radius))
}

func (c *Cylindrical) FacetDrop(f *fiber.Fiber, tri trimesh.Triangle) (*fiber.Interval, error) {
	return facetDrop("Cylindrical.FacetDrop", f, tri, constantRadius(c.radius))
}
