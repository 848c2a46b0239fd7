// Package export writes waterline loops out to the two vector formats
// a CAM shop expects to hand a post-processor or inspect by eye: DXF
// (github.com/yofu/dxf) and SVG (github.com/ajstarks/svgo) — neither
// format is named by the original getLoops() output, which stops at
// returning point loops; this is the consumer-facing surface that
// replaces the Python scripting layer for inspecting results.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-cam/camkernel/pkg/geom"
	"github.com/yofu/dxf"
)

// WriteDXF writes each loop as a closed polyline of individual LINE
// entities on a single "WATERLINE" layer to w.
//
// yofu/dxf's Drawing only knows how to save itself to a path
// (SaveAs(path string) error) — it has no io.Writer-based save. We
// bridge the two by saving to a temp file and copying its bytes into
// w, which keeps every other caller in this module dealing only in
// io.Writer, the way the rest of the ambient stack does.
func WriteDXF(w io.Writer, loops [][]geom.Point) error {
	d := dxf.NewDrawing()
	d.Layer("WATERLINE", false)
	for _, loop := range loops {
		if len(loop) < 2 {
			continue
		}
		for i := range loop {
			a := loop[i]
			b := loop[(i+1)%len(loop)]
			d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}

	tmp, err := os.CreateTemp("", "waterline-*.dxf")
	if err != nil {
		return fmt.Errorf("export: creating DXF staging file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := d.SaveAs(tmpPath); err != nil {
		return fmt.Errorf("export: writing DXF: %w", err)
	}
	f, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("export: reopening DXF staging file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("export: copying DXF output: %w", err)
	}
	return nil
}
