package voxel

import "testing"

// closedCubeGrid rasterizes a unit cube's boundary into a grid with a
// margin of outside cells on every side, giving flood fill both an
// exterior region to reach and an interior pocket to leave untouched.
func closedCubeGrid(t *testing.T) *OccupancyGrid {
	t.Helper()
	meta, err := NewGridMeta(NewBBox(Vec3{-1, -1, -1}, Vec3{4, 4, 4}), Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grid := NewOccupancyGrid(meta)
	cube := NewBBox(Vec3{0, 0, 0}, Vec3{3, 3, 3}).ToMesh(RightHanded)
	r := &DenseRasterizer{}
	if err := r.RasterizeMesh(grid, cube, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return grid
}

func TestFloodFillClassifiesInteriorAndExterior(t *testing.T) {
	grid := closedCubeGrid(t)
	if err := FloodFill(grid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Well outside the cube: must be Outside.
	outside, err := grid.Get(-1, -1, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outside != Outside {
		t.Fatalf("exterior cell should be Outside, got %v", outside)
	}

	// Deep interior of the cube (cells 1,1,1 sit strictly inside 0..3): must be Inside.
	inside, err := grid.Get(1, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inside != Inside {
		t.Fatalf("interior cell should be Inside, got %v", inside)
	}
}

func TestFloodFillLeavesBoundaryUntouched(t *testing.T) {
	grid := closedCubeGrid(t)
	boundaryBefore := grid.CountState(Boundary)
	if err := FloodFill(grid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grid.CountState(Boundary) != boundaryBefore {
		t.Fatalf("flood fill should never change a Boundary cell's count")
	}
}

func TestFloodFillEveryNonBoundaryCellClassified(t *testing.T) {
	grid := closedCubeGrid(t)
	if err := FloodFill(grid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := grid.Meta().Count()
	sum := grid.CountState(Inside) + grid.CountState(Outside) + grid.CountState(Boundary)
	if sum != total {
		t.Fatalf("every cell should end up classified: got %d, want %d", sum, total)
	}
}
