package fiber

import (
	"github.com/go-cam/camkernel/pkg/cncerr"
	"github.com/go-cam/camkernel/pkg/geom"
)

// Axis is the scan direction of a Fiber.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "X"
	}
	return "Y"
}

// Fiber is an axis-aligned line segment in 3-space, parameterized on
// [0,1], carrying an ordered, disjoint sequence of Intervals where the
// cutter would gouge the model.
type Fiber struct {
	P1, P2 geom.Point
	Dir    Axis

	intervals []*Interval
}

// New returns a new Fiber spanning p1 to p2 on the given axis.
// p1 == p2 is an InputError (degenerate fiber), reported to the caller
// rather than panicking, so a bad input degrades one fiber instead of
// aborting the whole scan.
func New(p1, p2 geom.Point, dir Axis) (*Fiber, error) {
	if p1 == p2 {
		return nil, &cncerr.InputError{
			Op:      "fiber.New",
			Detail:  "degenerate fiber, p1 equals p2",
			Context: cncerr.Context{"point": p1},
		}
	}
	return &Fiber{P1: p1, P2: p2, Dir: dir}, nil
}

// Point evaluates the fiber's parameterization at t.
func (f *Fiber) Point(t float64) geom.Point {
	return lerp(f.P1, f.P2, t)
}

// Intervals returns the fiber's intervals in ascending Lower order.
// The returned slice must not be mutated by the caller.
func (f *Fiber) Intervals() []*Interval {
	return f.intervals
}

// AddInterval merges iv into the fiber's ordered interval sequence:
// scan for any existing interval overlapping iv; if found, replace both
// with their union (CC points taken from whichever endpoint won). O(k)
// in the current interval count.
//
// The merged result must satisfy Lower <= Upper; a caller that manages
// to construct an interval violating that (e.g. a corrupted geometric
// predicate) gets a GeometryError back instead of a silently broken
// fiber.
func (f *Fiber) AddInterval(iv *Interval) error {
	if iv.Empty() {
		return nil
	}
	if !iv.Valid() {
		return &cncerr.GeometryError{
			Op:      "fiber.AddInterval",
			Detail:  "interval has Lower > Upper after merge",
			Context: cncerr.Context{"lower": iv.Lower, "upper": iv.Upper},
		}
	}

	merged := iv
	var kept []*Interval
	for _, existing := range f.intervals {
		if merged.overlaps(existing) {
			merged.merge(existing)
		} else {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, merged)
	insertionSortByLower(kept)
	f.intervals = kept
	return nil
}

// insertionSortByLower keeps the interval count (k) small in practice,
// so insertion sort is preferable to a full sort.Slice per call.
func insertionSortByLower(ivs []*Interval) {
	for i := 1; i < len(ivs); i++ {
		for j := i; j > 0 && ivs[j-1].Lower > ivs[j].Lower; j-- {
			ivs[j-1], ivs[j] = ivs[j], ivs[j-1]
		}
	}
}

// Disjoint reports whether the fiber's intervals are pairwise disjoint
// (touching is allowed) and ordered by Lower — the invariant
// AddInterval must preserve on every call. Exposed for tests.
func (f *Fiber) Disjoint() bool {
	for i := 1; i < len(f.intervals); i++ {
		if f.intervals[i-1].Lower > f.intervals[i].Lower {
			return false
		}
		if f.intervals[i-1].Upper > f.intervals[i].Lower {
			return false
		}
	}
	return true
}
