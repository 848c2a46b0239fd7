package fiber

import (
	"testing"

	"github.com/go-cam/camkernel/pkg/geom"
)

func TestIntervalMergeOverlap(t *testing.T) {
	f, err := New(geom.Pt(0, 0, 0), geom.Pt(10, 0, 0), AxisX)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a := NewInterval()
	a.UpdateLower(0.2, geom.Pt(2, 0, 0))
	a.UpdateUpper(0.5, geom.Pt(5, 0, 0))
	if err := f.AddInterval(a); err != nil {
		t.Fatalf("AddInterval a: %v", err)
	}

	b := NewInterval()
	b.UpdateLower(0.4, geom.Pt(4, 0, 0))
	b.UpdateUpper(0.7, geom.Pt(7, 0, 0))
	if err := f.AddInterval(b); err != nil {
		t.Fatalf("AddInterval b: %v", err)
	}

	ivs := f.Intervals()
	if len(ivs) != 1 {
		t.Fatalf("expected a single merged interval, got %d", len(ivs))
	}
	got := ivs[0]
	if got.Lower != 0.2 || got.Upper != 0.7 {
		t.Fatalf("merged interval = [%v, %v], want [0.2, 0.7]", got.Lower, got.Upper)
	}
	if got.LowerCC.X != 2 || got.UpperCC.X != 7 {
		t.Fatalf("CC points not taken from winning endpoints: lowerCC=%v upperCC=%v", got.LowerCC, got.UpperCC)
	}
	if !f.Disjoint() {
		t.Fatal("fiber intervals not disjoint after merge")
	}
}

func TestIntervalSetDisjointAndOrdered(t *testing.T) {
	f, err := New(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), AxisX)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ranges := [][2]float64{{0.6, 0.8}, {0.0, 0.1}, {0.3, 0.4}}
	for _, r := range ranges {
		iv := NewInterval()
		iv.UpdateLower(r[0], geom.Point{})
		iv.UpdateUpper(r[1], geom.Point{})
		if err := f.AddInterval(iv); err != nil {
			t.Fatalf("AddInterval: %v", err)
		}
	}

	ivs := f.Intervals()
	if len(ivs) != 3 {
		t.Fatalf("expected 3 disjoint intervals, got %d", len(ivs))
	}
	for i := 1; i < len(ivs); i++ {
		if ivs[i-1].Lower > ivs[i].Lower {
			t.Fatalf("intervals not ordered by Lower: %v", ivs)
		}
	}
	if !f.Disjoint() {
		t.Fatal("intervals not disjoint")
	}
}

func TestNewFiberRejectsDegenerate(t *testing.T) {
	p := geom.Pt(1, 2, 3)
	if _, err := New(p, p, AxisX); err == nil {
		t.Fatal("expected error for degenerate fiber (p1 == p2)")
	}
}

func TestFiberPointParameterization(t *testing.T) {
	f, err := New(geom.Pt(0, 0, 0), geom.Pt(10, 0, 0), AxisX)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mid := f.Point(0.5)
	if mid.X != 5 {
		t.Fatalf("Point(0.5).X = %v, want 5", mid.X)
	}
}

func TestAxisString(t *testing.T) {
	if AxisX.String() != "X" {
		t.Errorf("AxisX.String() = %q, want X", AxisX.String())
	}
	if AxisY.String() != "Y" {
		t.Errorf("AxisY.String() = %q, want Y", AxisY.String())
	}
}
