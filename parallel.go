package voxel

import "github.com/sean1832/zlabdiscrete/numerical"

// DefaultParallelThreshold is the minimum element count below which
// parallelFor falls back to a sequential loop; spinning up goroutines
// for a handful of faces or cells costs more than it saves.
const DefaultParallelThreshold = numerical.DefaultParallelThreshold

// parallelFor runs body(i) for i in [0, n), using up to maxDegree
// goroutines (0 meaning GOMAXPROCS), falling back to a sequential loop
// when n is below DefaultParallelThreshold.
func parallelFor(maxDegree, n int, body func(i int)) {
	numerical.ParallelFor(maxDegree, n, body)
}
