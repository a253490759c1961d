// Package numerical provides the small, dependency-light math support
// used by the root package: the separable Euclidean distance transform,
// a scratch-buffer pool, a parallel-for primitive, and Morton coding.
//
// It mirrors the teacher's own numerical subpackage: a sibling of the
// main package holding math that does not need the rest of its types.
package numerical

import "github.com/unixpickle/essentials"

// DefaultParallelThreshold is the minimum range size below which
// ParallelFor runs sequentially instead of paying goroutine overhead.
const DefaultParallelThreshold = 256

// ParallelFor runs body(i) for every i in [0, n). When n is at least
// DefaultParallelThreshold, it fans out across up to maxGos goroutines
// (0 meaning GOMAXPROCS) via essentials.ConcurrentMap; otherwise it runs
// sequentially in the calling goroutine.
func ParallelFor(maxGos, n int, body func(i int)) {
	if n < DefaultParallelThreshold {
		for i := 0; i < n; i++ {
			body(i)
		}
		return
	}
	essentials.ConcurrentMap(maxGos, n, body)
}
