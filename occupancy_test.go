package voxel

import "testing"

func newTestOccupancyGrid(t *testing.T, n int32) *OccupancyGrid {
	t.Helper()
	bounds := NewBBox(Vec3{0, 0, 0}, Vec3{float32(n), float32(n), float32(n)})
	grid, err := NewOccupancyGridBounds(bounds, Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return grid
}

func TestOccupancyGridGetSet(t *testing.T) {
	grid := newTestOccupancyGrid(t, 3)
	if err := grid.Set(1, 1, 1, Inside); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := grid.Get(1, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Inside {
		t.Fatalf("got %v, want Inside", v)
	}
	if _, err := grid.Get(10, 10, 10); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestOccupancyGridCountState(t *testing.T) {
	grid := newTestOccupancyGrid(t, 2)
	grid.Fill(Outside)
	grid.Set(0, 0, 0, Inside)
	grid.Set(1, 0, 0, Boundary)
	if got := grid.CountState(Inside); got != 1 {
		t.Fatalf("CountState(Inside): got %d, want 1", got)
	}
	if got := grid.CountState(Boundary); got != 1 {
		t.Fatalf("CountState(Boundary): got %d, want 1", got)
	}
	if got := grid.CountState(Outside); got != 6 {
		t.Fatalf("CountState(Outside): got %d, want 6", got)
	}
}

func TestOccupancyGridClone(t *testing.T) {
	grid := newTestOccupancyGrid(t, 2)
	grid.Set(0, 0, 0, Inside)
	clone := grid.Clone()
	clone.Set(0, 0, 0, Outside)
	v, _ := grid.Get(0, 0, 0)
	if v != Inside {
		t.Fatalf("mutating clone affected original")
	}
}

func TestOccupancyGridTransformWorldDropsOutOfRange(t *testing.T) {
	grid := newTestOccupancyGrid(t, 3)
	grid.Set(0, 0, 0, Inside)
	grid.TransformWorld(Vec3{-1, 0, 0})
	// cell (0,0,0) shifted to (-1,0,0), out of range, dropped.
	if grid.CountState(Inside) != 0 {
		t.Fatalf("expected shifted-out cell to be dropped")
	}
}

func TestOccupancyGridTransformWorldShift(t *testing.T) {
	grid := newTestOccupancyGrid(t, 3)
	grid.Set(0, 0, 0, Inside)
	grid.TransformWorld(Vec3{1, 0, 0})
	v, err := grid.Get(1, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Inside {
		t.Fatalf("expected shifted cell to carry Inside, got %v", v)
	}
}

func TestOccupancyGridMasks(t *testing.T) {
	grid := newTestOccupancyGrid(t, 1)
	grid.Fill(Boundary)
	binIncl := grid.GetMaskBinary(true)
	binExcl := grid.GetMaskBinary(false)
	if binIncl[0] != 1 {
		t.Fatalf("boundary-as-inside mask should be 1")
	}
	if binExcl[0] != 0 {
		t.Fatalf("boundary-excluded mask should be 0")
	}
	ternary := grid.GetMaskTernary()
	if ternary[0] != uint8(Boundary) {
		t.Fatalf("ternary mask should carry raw occupancy value")
	}
}
