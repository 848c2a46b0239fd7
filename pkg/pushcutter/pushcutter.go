// Package pushcutter sweeps a Cutter along a single Fiber against the
// triangles near it, plus the batched variant that does this for a
// whole fiber list over a fixed-size worker pool.
package pushcutter

import (
	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/cutter"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

// Push runs the per-fiber push-cutter: for every triangle near f (as
// filtered by mesh's spatial index), compute up to seven contact
// subintervals (one per vertex, one per edge, one for the facet) and
// merge them into f's interval
// set. Degenerate triangles are skipped, not fatal; skipped reports how
// many were skipped, and reasons carries the *cncerr.InputError for
// each one so callers can diagnose a bad mesh without a debugger.
func Push(f *fiber.Fiber, c cutter.Cutter, mesh *trimesh.Mesh) (skipped int, reasons []error, err error) {
	for i, tri := range mesh.Overlapping(fiberBbox(f, c.Radius())) {
		if tri.IsDegenerate() {
			skipped++
			reasons = append(reasons, &cncerr.InputError{
				Op:      "pushcutter.Push",
				Detail:  "degenerate (zero-area) triangle",
				Context: cncerr.Context{"triangle": i},
			})
			continue
		}

		ivs, ivErr := contactIntervals(f, c, tri)
		if ivErr != nil {
			skipped++
			reasons = append(reasons, ivErr)
			continue
		}
		for _, iv := range ivs {
			if iv == nil || iv.Empty() {
				continue
			}
			if err := f.AddInterval(iv); err != nil {
				return skipped, reasons, err
			}
		}
	}
	return skipped, reasons, nil
}

// contactIntervals computes the up-to-seven contact subintervals
// (three vertex, three edge, one facet) for one triangle.
func contactIntervals(f *fiber.Fiber, c cutter.Cutter, tri trimesh.Triangle) ([]*fiber.Interval, error) {
	var ivs []*fiber.Interval

	vIv1, err := c.VertexDrop(f, tri.P1)
	if err != nil {
		return nil, err
	}
	vIv2, err := c.VertexDrop(f, tri.P2)
	if err != nil {
		return nil, err
	}
	vIv3, err := c.VertexDrop(f, tri.P3)
	if err != nil {
		return nil, err
	}
	ivs = append(ivs, vIv1, vIv2, vIv3)

	e1, err := c.EdgeDrop(f, tri.P1, tri.P2)
	if err != nil {
		return nil, err
	}
	e2, err := c.EdgeDrop(f, tri.P2, tri.P3)
	if err != nil {
		return nil, err
	}
	e3, err := c.EdgeDrop(f, tri.P3, tri.P1)
	if err != nil {
		return nil, err
	}
	ivs = append(ivs, e1, e2, e3)

	facetIv, err := c.FacetDrop(f, tri)
	if err != nil {
		return nil, err
	}
	ivs = append(ivs, facetIv)

	return ivs, nil
}

// fiberBbox returns a bounding box around f's full extent, expanded by
// radius, used to query the mesh's spatial index for nearby triangles.
func fiberBbox(f *fiber.Fiber, radius float64) geom.Bbox {
	bb := geom.NewBbox()
	bb.AddPoint(f.P1)
	bb.AddPoint(f.P2)
	bb.Min = geom.Pt(bb.Min.X-radius, bb.Min.Y-radius, bb.Min.Z-radius)
	bb.Max = geom.Pt(bb.Max.X+radius, bb.Max.Y+radius, bb.Max.Z+radius)
	return bb
}
