package trimesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-cam/camkernel/pkg/geom"
)

// LoadSTL reads a binary STL stream into a Mesh with the given bucket
// size, matching other_examples/jeffallen-jra-go's Decode shape: an
// 80-byte header, a little-endian triangle count, then 50 bytes per
// triangle (normal, three vertices, a 2-byte attribute field we
// discard since Triangle recomputes its own normal).
func LoadSTL(r io.Reader, bucketSize int) (*Mesh, error) {
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("trimesh: reading STL header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("trimesh: reading STL triangle count: %w", err)
	}

	triangles := make([]Triangle, 0, count)
	var buf [50]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("trimesh: reading STL triangle %d: %w", i, err)
		}
		// buf[0:12] is the file's own normal, which we ignore in favor
		// of NewTriangle's recomputed one.
		p1 := readSTLVertex(buf[12:24])
		p2 := readSTLVertex(buf[24:36])
		p3 := readSTLVertex(buf[36:48])
		triangles = append(triangles, NewTriangle(p1, p2, p3))
	}
	return New(triangles, bucketSize), nil
}

func readSTLVertex(b []byte) geom.Point {
	x := math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
	z := math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))
	return geom.Pt(float64(x), float64(y), float64(z))
}
