// Command waterline drives an end-to-end waterline extraction from a
// binary STL file and a cutter description, writing the resulting
// loops to DXF and/or SVG.
//
// Grounded on the teacher's examples/simple_box.go: a single main()
// using the stdlib flag package, log.Fatal on any error, and
// fmt.Printf progress lines — no cobra/viper anywhere in the pack.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/go-cam/camkernel/pkg/cutter"
	"github.com/go-cam/camkernel/pkg/export"
	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/go-cam/camkernel/pkg/trimesh"
	"github.com/go-cam/camkernel/pkg/waterline"
)

func main() {
	runID := uuid.New().String()
	log.SetPrefix(fmt.Sprintf("[waterline %s] ", runID[:8]))

	stlPath := flag.String("stl", "", "path to a binary STL file (required)")
	cutterKind := flag.String("cutter", "ball", "cutter type: ball, cylindrical, conical, toroidal")
	radius := flag.Float64("radius", 3.0, "cutter radius")
	cornerRadius := flag.Float64("corner-radius", 1.0, "corner radius (toroidal cutters only)")
	halfAngle := flag.Float64("half-angle", 0.4, "half angle in radians (conical cutters only)")
	z := flag.Float64("z", 0.0, "waterline elevation")
	step := flag.Float64("step", 0.5, "fiber sampling step")
	workers := flag.Int("workers", 0, "push-cutter worker count (0 = GOMAXPROCS)")
	bucketSize := flag.Int("bucket-size", 16, "triangle spatial index bucket size")
	dxfPath := flag.String("dxf", "", "write loops to this DXF file (optional)")
	svgPath := flag.String("svg", "", "write loops to this SVG file (optional)")
	svgScale := flag.Float64("svg-scale", 1.0, "model units to SVG pixels scale factor")
	svgSize := flag.Int("svg-size", 800, "SVG canvas width and height in pixels")
	flag.Parse()

	if *stlPath == "" {
		fmt.Fprintln(os.Stderr, "waterline: -stl is required")
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*stlPath)
	if err != nil {
		log.Fatalf("waterline: opening %s: %v", *stlPath, err)
	}
	mesh, err := trimesh.LoadSTL(f, *bucketSize)
	f.Close()
	if err != nil {
		log.Fatalf("waterline: loading STL: %v", err)
	}
	fmt.Printf("loaded %d triangles from %s\n", len(mesh.Triangles()), *stlPath)

	c, err := buildCutter(*cutterKind, *radius, *cornerRadius, *halfAngle)
	if err != nil {
		log.Fatalf("waterline: %v", err)
	}

	w := &waterline.Waterline{
		Mesh:       mesh,
		Cutter:     c,
		Z:          *z,
		SampleStep: *step,
		Workers:    *workers,
	}
	result, err := w.Run()
	if err != nil {
		log.Fatalf("waterline: %v", err)
	}
	fmt.Printf("extracted %d loop(s) at z=%.3f (%d triangles skipped as degenerate)\n",
		len(result.Loops), *z, result.Skipped)
	if len(result.Loops) > 0 {
		longest := lo.MaxBy(result.Loops, func(a, b []geom.Point) bool { return len(a) > len(b) })
		fmt.Printf("longest loop has %d points\n", len(longest))
	}

	if *dxfPath != "" {
		out, err := os.Create(*dxfPath)
		if err != nil {
			log.Fatalf("waterline: creating %s: %v", *dxfPath, err)
		}
		err = export.WriteDXF(out, result.Loops)
		out.Close()
		if err != nil {
			log.Fatalf("waterline: %v", err)
		}
		fmt.Printf("wrote %s\n", *dxfPath)
	}
	if *svgPath != "" {
		out, err := os.Create(*svgPath)
		if err != nil {
			log.Fatalf("waterline: creating %s: %v", *svgPath, err)
		}
		err = export.WriteSVG(out, result.Loops, *svgSize, *svgSize, *svgScale)
		out.Close()
		if err != nil {
			log.Fatalf("waterline: %v", err)
		}
		fmt.Printf("wrote %s\n", *svgPath)
	}
}

func buildCutter(kind string, radius, cornerRadius, halfAngle float64) (cutter.Cutter, error) {
	switch kind {
	case "ball":
		return cutter.NewBall(radius)
	case "cylindrical":
		return cutter.NewCylindrical(radius)
	case "conical":
		return cutter.NewConical(radius, halfAngle)
	case "toroidal":
		return cutter.NewToroidal(radius, cornerRadius)
	default:
		return nil, fmt.Errorf("unknown cutter type %q (want ball, cylindrical, conical, or toroidal)", kind)
	}
}
