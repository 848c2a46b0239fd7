// Package volume implements the OCTVolume external interface —
// signed-distance fields for the tool-swept shapes the cut-simulation
// octree subtracts from stock — and its concrete implementations.
//
// Grounded on the teacher's pkg/kernel/sdfx/sdfx.go wrapping pattern
// (sdfxSolid, wrap/unwrap, primitive + boolean + transform coverage of
// github.com/deadsy/sdfx), adapted from a ToMesh-producing Kernel
// interface to the Dist/Bbox contract diff_negative needs.
package volume

import "github.com/go-cam/camkernel/pkg/geom"

// OCTVolume is the volume interface the octree subtracts: a
// signed-distance field, negative inside the volume, plus a bounding
// box on the region where Dist < 0. The octree's diff_negative
// traversal calls Dist at node corners and uses Bbox to prune whole
// subtrees that can't overlap.
type OCTVolume interface {
	Dist(p geom.Point) float64
	Bbox() geom.Bbox
}
