// Package waterline orchestrates the waterline pipeline: STL mesh +
// cutter → X/Y fiber grid at a Z slice → batched push-cutter → weave
// graph build and face traversal → closed CL loops.
//
// Grounded on original_source/src/ocl_algo.cpp's Waterline/
// AdaptiveWaterline binding shape — this is the Go equivalent of that
// class's run() method, minus the Python scripting surface this module
// has no use for.
package waterline

import (
	"fmt"

	"github.com/go-cam/camkernel/pkg/cutter"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/pushcutter"
	"github.com/go-cam/camkernel/pkg/trimesh"
	"github.com/go-cam/camkernel/pkg/weave"
)

// Waterline computes a single Z-slice waterline.
type Waterline struct {
	Mesh   *trimesh.Mesh
	Cutter cutter.Cutter

	// Z is the slice elevation.
	Z float64

	// SampleStep is the spacing between adjacent fibers along the
	// direction they scan. Smaller values resolve finer features at
	// the cost of more fibers.
	SampleStep float64

	// Workers sets the batched push-cutter's worker count; 0 selects
	// GOMAXPROCS(0), matching pushcutter.Batch's own default.
	Workers int

	// Result, populated by Run.
	Skipped int
}

// Result is the outcome of Run: the closed CL loops found at Z, plus
// bookkeeping on degenerate triangles skipped along the way.
type Result struct {
	Loops   [][]geom.Point
	Skipped int
}

// Run executes the full pipeline and returns the loops found at w.Z.
func (w *Waterline) Run() (*Result, error) {
	if w.SampleStep <= 0 {
		return nil, fmt.Errorf("waterline: SampleStep must be positive, got %v", w.SampleStep)
	}
	if w.Mesh == nil || w.Cutter == nil {
		return nil, fmt.Errorf("waterline: Mesh and Cutter are required")
	}

	bb := meshBounds(w.Mesh)
	margin := w.Cutter.Radius()

	xFibers := generateFibers(bb, w.Z, w.SampleStep, margin, fiber.AxisX)
	yFibers := generateFibers(bb, w.Z, w.SampleStep, margin, fiber.AxisY)

	skipped := 0
	for _, batch := range [][]*fiber.Fiber{xFibers, yFibers} {
		res := pushcutter.Batch(batch, w.Cutter, w.Mesh, w.Workers)
		skipped += res.Skipped
		for idx, err := range res.Errs {
			return nil, fmt.Errorf("waterline: push-cutter failed on fiber %d: %w", idx, err)
		}
	}

	wv := weave.New()
	for _, f := range xFibers {
		wv.AddFiber(f)
	}
	for _, f := range yFibers {
		wv.AddFiber(f)
	}

	if err := wv.Build(); err != nil {
		return nil, err
	}
	if err := wv.FaceTraverse(); err != nil {
		return nil, err
	}

	w.Skipped = skipped
	return &Result{Loops: wv.GetLoops(), Skipped: skipped}, nil
}

// meshBounds returns the union bbox of every triangle in m.
func meshBounds(m *trimesh.Mesh) geom.Bbox {
	bb := geom.NewBbox()
	for _, tri := range m.Triangles() {
		bb.AddBbox(tri.Bbox())
	}
	return bb
}

// generateFibers lays out a grid of fibers spanning bb at elevation z,
// spaced step apart, extended by margin past the mesh extent on both
// ends so a cutter centered just outside the mesh can still register
// contact.
func generateFibers(bb geom.Bbox, z, step, margin float64, dir fiber.Axis) []*fiber.Fiber {
	var fibers []*fiber.Fiber

	switch dir {
	case fiber.AxisX:
		x0, x1 := bb.Min.X-margin, bb.Max.X+margin
		for y := bb.Min.Y - margin; y <= bb.Max.Y+margin; y += step {
			f, err := fiber.New(geom.Pt(x0, y, z), geom.Pt(x1, y, z), fiber.AxisX)
			if err != nil {
				continue
			}
			fibers = append(fibers, f)
		}
	default:
		y0, y1 := bb.Min.Y-margin, bb.Max.Y+margin
		for x := bb.Min.X - margin; x <= bb.Max.X+margin; x += step {
			f, err := fiber.New(geom.Pt(x, y0, z), geom.Pt(x, y1, z), fiber.AxisY)
			if err != nil {
				continue
			}
			fibers = append(fibers, f)
		}
	}

	return fibers
}
