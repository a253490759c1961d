package numerical

import (
	"sync/atomic"
	"testing"
)

func TestParallelForSequentialBelowThreshold(t *testing.T) {
	n := DefaultParallelThreshold - 1
	seen := make([]int32, n)
	ParallelFor(0, n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, v)
		}
	}
}

func TestParallelForAboveThreshold(t *testing.T) {
	n := DefaultParallelThreshold * 4
	seen := make([]int32, n)
	ParallelFor(0, n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, v)
		}
	}
}
