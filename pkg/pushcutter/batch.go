package pushcutter

import (
	"runtime"
	"sync"

	"github.com/go-cam/camkernel/pkg/cutter"
	"github.com/go-cam/camkernel/pkg/fiber"
	"github.com/go-cam/camkernel/pkg/trimesh"
)

// BatchResult reports the outcome of a batched push-cutter run.
type BatchResult struct {
	// Skipped is the total number of degenerate triangles skipped
	// across every fiber — never fatal, just counted.
	Skipped int

	// SkipReasons carries one *cncerr.InputError per skipped triangle
	// across every fiber, for diagnosing a poorly-formed mesh.
	SkipReasons []error

	// Errs holds one error per fiber that failed outright (a corrupted
	// geometric predicate producing an invalid interval), indexed by
	// the fiber's position in the input slice. Most runs produce none.
	Errs map[int]error
}

// Batch runs the push-cutter over every fiber in fibers using a
// fixed-size static partition of workers: each worker owns a disjoint
// slice of the fiber list and mutates only that slice; the mesh's
// spatial index is shared read-only; no locks are needed. Ordering
// within a fiber's interval set is determined solely by the interval
// set's own merge invariant, not by thread scheduling, so results are
// deterministic regardless of worker count.
//
// If workers <= 0, runtime.GOMAXPROCS(0) is used.
func Batch(fibers []*fiber.Fiber, c cutter.Cutter, mesh *trimesh.Mesh, workers int) BatchResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(fibers) {
		workers = len(fibers)
	}
	if workers <= 0 {
		return BatchResult{}
	}

	skippedPerFiber := make([]int, len(fibers))
	reasonsPerFiber := make([][]error, len(fibers))
	errPerFiber := make([]error, len(fibers))

	var wg sync.WaitGroup
	chunk := (len(fibers) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= len(fibers) {
			break
		}
		if hi > len(fibers) {
			hi = len(fibers)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				skipped, reasons, err := Push(fibers[i], c, mesh)
				skippedPerFiber[i] = skipped
				reasonsPerFiber[i] = reasons
				errPerFiber[i] = err
			}
		}(lo, hi)
	}
	wg.Wait()

	result := BatchResult{}
	for i, skipped := range skippedPerFiber {
		result.Skipped += skipped
		result.SkipReasons = append(result.SkipReasons, reasonsPerFiber[i]...)
		if errPerFiber[i] != nil {
			if result.Errs == nil {
				result.Errs = make(map[int]error)
			}
			result.Errs[i] = errPerFiber[i]
		}
	}
	return result
}
