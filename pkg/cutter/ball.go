package cutter

import (
	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

// Ball is a ball-end (spherical) mill of the given radius.
type Ball struct {
	radius float64
}

// NewBall returns a ball-end cutter. radius must be positive.
func NewBall(radius float64) (*Ball, error) {
	if radius <= 0 {
		return nil, &cncerr.InputError{
			Op:      "cutter.NewBall",
			Detail:  "radius must be positive",
			Context: cncerr.Context{"radius": radius},
		}
	}
	return &Ball{radius: radius}, nil
}

// Radius returns the ball radius.
func (c *Ball) Radius() float64 { return c.radius }

func (c *Ball) VertexDrop(f *fiber.Fiber, v geom.Point) (*fiber.Interval, error) {
	return vertexDrop(f, v, constantRadius(c.radius))
}

func (c *Ball) EdgeDrop(f *fiber.Fiber, a, b geom.Point) (*fiber.Interval, error) {
	return edgeDrop("Ball.EdgeDrop", f, a, b, constantRadius(c.radius))
}

func (c *Ball) FacetDrop(f *fiber.Fiber, tri trimesh.Triangle) (*fiber.Interval, error) {
	return facetDrop("Ball.FacetDrop", f, tri, constantRadius(c.radius))
}
