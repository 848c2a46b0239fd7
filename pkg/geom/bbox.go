package geom

import "math"

// Bbox is an axis-aligned bounding box. The empty box is distinguished
// by having Min components greater than Max components (set by NewBbox).
type Bbox struct {
	Min, Max Point
	empty    bool
}

// NewBbox returns an empty bounding box.
func NewBbox() Bbox {
	return Bbox{
		Min:   Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max:   Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
		empty: true,
	}
}

// IsEmpty reports whether the box has never had a point added to it.
func (b Bbox) IsEmpty() bool {
	return b.empty
}

// AddPoint expands the box monotonically to include p.
func (b *Bbox) AddPoint(p Point) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
	b.empty = false
}

// AddBbox expands the box to include another box.
func (b *Bbox) AddBbox(o Bbox) {
	if o.IsEmpty() {
		return
	}
	b.AddPoint(o.Min)
	b.AddPoint(o.Max)
}

// Overlaps reports whether two boxes intersect (touching counts as
// overlapping). Two empty boxes never overlap.
func (b Bbox) Overlaps(o Bbox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Contains reports whether p lies within the box (inclusive).
func (b Bbox) Contains(p Point) bool {
	if b.IsEmpty() {
		return false
	}
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the geometric center of the box.
func (b Bbox) Center() Point {
	return b.Min.Add(b.Max).Mul(0.5)
}
