// Package fiber implements the scan-line abstraction the push-cutter
// sweeps over: a Fiber is a line segment parameterized on [0,1], and an
// Interval is a sub-range of that parameter space where the cutter
// would gouge the model.
package fiber

import (
	"math"

	"github.com/go-cam/camkernel/pkg/geom"
)

// Interval is a half-open subset of [0,1] on a Fiber, carrying the
// cutter-contact (CC) point at each endpoint. Per spec, "empty" means
// the interval was never updated — lower/upper have no meaning yet.
type Interval struct {
	Lower, Upper       float64
	LowerCC, UpperCC   geom.Point
	InWeaveLower       bool
	InWeaveUpper       bool

	initialized bool
}

// NewInterval returns an empty interval.
func NewInterval() *Interval {
	return &Interval{}
}

// Empty reports whether the interval has ever been updated.
func (iv *Interval) Empty() bool {
	return !iv.initialized
}

// UpdateUpper sets Upper := max(Upper, t), recording the CC point for
// whichever t ends up winning.
func (iv *Interval) UpdateUpper(t float64, cc geom.Point) {
	if !iv.initialized {
		iv.Lower, iv.Upper = t, t
		iv.LowerCC, iv.UpperCC = cc, cc
		iv.initialized = true
		return
	}
	if t > iv.Upper {
		iv.Upper = t
		iv.UpperCC = cc
	}
}

// UpdateLower sets Lower := min(Lower, t), recording the CC point for
// whichever t ends up winning.
func (iv *Interval) UpdateLower(t float64, cc geom.Point) {
	if !iv.initialized {
		iv.Lower, iv.Upper = t, t
		iv.LowerCC, iv.UpperCC = cc, cc
		iv.initialized = true
		return
	}
	if t < iv.Lower {
		iv.Lower = t
		iv.LowerCC = cc
	}
}

// Valid reports Lower <= Upper, the invariant an interval must satisfy
// after any merge. A violation is a GeometryError, never silently
// tolerated.
func (iv *Interval) Valid() bool {
	return iv.Empty() || iv.Lower <= iv.Upper
}

// overlaps reports whether two intervals touch or strictly overlap —
// the condition under which addInterval must merge them.
func (a *Interval) overlaps(b *Interval) bool {
	return a.Lower <= b.Upper && b.Lower <= a.Upper
}

// merge unions b into a, taking LowerCC from whichever interval had the
// smaller Lower and UpperCC from whichever had the larger Upper.
func (a *Interval) merge(b *Interval) {
	if b.Lower < a.Lower {
		a.Lower = b.Lower
		a.LowerCC = b.LowerCC
	}
	if b.Upper > a.Upper {
		a.Upper = b.Upper
		a.UpperCC = b.UpperCC
	}
}

// lerp evaluates the fiber parameterization at a given t value, purely
// as a convenience for callers that already hold the fiber endpoints.
func lerp(p1, p2 geom.Point, t float64) geom.Point {
	return p1.Lerp(p2, t)
}

// clampUnit guards against numerical drift pushing t slightly outside
// [0,1]; a non-finite t is InputError material for the caller to
// count, not a fatal condition here.
func clampUnit(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
