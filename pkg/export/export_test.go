package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-cam/camkernel/pkg/geom"
)

func square() []geom.Point {
	return []geom.Point{
		geom.Pt(0, 0, 0),
		geom.Pt(10, 0, 0),
		geom.Pt(10, 10, 0),
		geom.Pt(0, 10, 0),
	}
}

func TestWriteDXFProducesNonEmptyFile(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDXF(&buf, [][]geom.Point{square()}); err != nil {
		t.Fatalf("WriteDXF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty DXF output")
	}
}

func TestWriteDXFSkipsDegenerateLoops(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDXF(&buf, [][]geom.Point{{geom.Pt(0, 0, 0)}}); err != nil {
		t.Fatalf("WriteDXF: %v", err)
	}
}

func TestWriteSVGProducesValidMarkup(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, [][]geom.Point{square()}, 200, 200, 1.0); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatal("expected SVG output to contain an <svg> tag")
	}
	if !strings.Contains(out, "polygon") {
		t.Fatal("expected SVG output to contain a polygon element for the loop")
	}
}
