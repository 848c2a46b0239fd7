// Package cncerr defines the error-kind taxonomy used across this
// module: recoverable input issues are absorbed at the leaf operation
// with a counter; structural violations are surfaced at the subsystem
// boundary.
package cncerr

import (
	"fmt"
	"sort"
	"strings"
)

// Context carries the diagnostic attributes (node id, fiber index,
// triangle index, and the like) a subsystem boundary attaches to an
// error so a report is diagnosable without a debugger. nil is fine;
// Error() just omits the parenthetical.
type Context map[string]any

func (c Context) String() string {
	if len(c) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c[k]))
	}
	return strings.Join(parts, ", ")
}

// InputError is a recoverable, never-fatal condition: a degenerate
// fiber, a degenerate triangle in a cutter predicate, or a non-finite
// number. Callers skip the offending input and keep a count; InputError
// is returned only so the count can be attributed to a cause.
type InputError struct {
	Op      string // which operation rejected the input
	Detail  string
	Context Context
}

func (e *InputError) Error() string {
	if ctx := e.Context.String(); ctx != "" {
		return fmt.Sprintf("input error in %s: %s (%s)", e.Op, e.Detail, ctx)
	}
	return fmt.Sprintf("input error in %s: %s", e.Op, e.Detail)
}

// InvariantError is a fatal programming error: GL pool back-references
// out of sync, a weave half-edge missing its twin, subdividing a
// non-leaf octree node. These abort the current operation with a
// diagnostic; they are never recoverable.
type InvariantError struct {
	Op      string
	Detail  string
	Context Context
}

func (e *InvariantError) Error() string {
	if ctx := e.Context.String(); ctx != "" {
		return fmt.Sprintf("invariant violated in %s: %s (%s)", e.Op, e.Detail, ctx)
	}
	return fmt.Sprintf("invariant violated in %s: %s", e.Op, e.Detail)
}

// GeometryError is fatal for the current run() but not for the process:
// a weave face traversal that never closes, or a fiber interval with
// Lower > Upper after a merge. The caller may retry with perturbed
// input (e.g. a perturbed Z elevation).
type GeometryError struct {
	Op      string
	Detail  string
	Context Context
}

func (e *GeometryError) Error() string {
	if ctx := e.Context.String(); ctx != "" {
		return fmt.Sprintf("geometry degeneracy in %s: %s (%s)", e.Op, e.Detail, ctx)
	}
	return fmt.Sprintf("geometry degeneracy in %s: %s", e.Op, e.Detail)
}

// ErrCapacity is not an error in the Go sense — it signals that an
// octree traversal stopped refining because max_depth was reached while
// a node still straddled a volume. Callers that care can compare
// against this sentinel; most callers ignore it, since refinement
// simply stopping is expected behavior, not a failure.
var ErrCapacity = fmt.Errorf("octree: max depth reached while straddling volume")
