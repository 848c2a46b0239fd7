package export

import (
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/go-cam/camkernel/pkg/geom"
)

// WriteSVG renders each loop as a closed polygon outline, projecting
// out Z (loops are already planar at a fixed waterline height) and
// scaling model units to pixels.
func WriteSVG(w io.Writer, loops [][]geom.Point, width, height int, scale float64) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	for _, loop := range loops {
		if len(loop) < 2 {
			continue
		}
		xs := make([]int, len(loop))
		ys := make([]int, len(loop))
		for i, p := range loop {
			xs[i] = int(p.X * scale)
			ys[i] = height - int(p.Y*scale) // SVG's y axis points down
		}
		canvas.Polygon(xs, ys, "fill:none;stroke:black;stroke-width:1")
	}
	canvas.End()
	return nil
}
