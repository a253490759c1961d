package voxel

import "testing"

func TestNewGridMetaBasic(t *testing.T) {
	bounds := NewBBox(Vec3{0, 0, 0}, Vec3{2, 2, 2})
	meta, err := NewGridMeta(bounds, Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Nx != 2 || meta.Ny != 2 || meta.Nz != 2 {
		t.Fatalf("expected 2x2x2 grid, got %dx%dx%d", meta.Nx, meta.Ny, meta.Nz)
	}
	if meta.Count() != 8 {
		t.Fatalf("expected count 8, got %d", meta.Count())
	}
}

func TestNewGridMetaRejectsNonPositiveVoxelSize(t *testing.T) {
	bounds := NewBBox(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	if _, err := NewGridMeta(bounds, Vec3{0, 1, 1}); err == nil {
		t.Fatalf("expected error for zero voxel size")
	}
}

func TestGridMetaLinUnlinRoundTrip(t *testing.T) {
	meta, err := NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{3, 4, 5}), Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for z := meta.MinZ; z < meta.MinZ+meta.Nz; z++ {
		for y := meta.MinY; y < meta.MinY+meta.Ny; y++ {
			for x := meta.MinX; x < meta.MinX+meta.Nx; x++ {
				idx := meta.Lin(x, y, z)
				gx, gy, gz := meta.Unlin(idx)
				if gx != x || gy != y || gz != z {
					t.Fatalf("round trip mismatch: (%d,%d,%d) -> idx %d -> (%d,%d,%d)", x, y, z, idx, gx, gy, gz)
				}
			}
		}
	}
}

func TestGridMetaContains(t *testing.T) {
	meta, _ := NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{2, 2, 2}), Vec3{1, 1, 1})
	if !meta.Contains(0, 0, 0) || !meta.Contains(1, 1, 1) {
		t.Fatalf("expected interior indices to be contained")
	}
	if meta.Contains(2, 0, 0) || meta.Contains(-1, 0, 0) {
		t.Fatalf("expected out-of-range indices to be rejected")
	}
}

func TestWorldToGridMinMaxBias(t *testing.T) {
	size := Vec3{1, 1, 1}
	// A point exactly on a lattice plane goes to the cell above it for Min
	// and to the cell below it for MaxInclusive.
	min := WorldToGridMin(Vec3{1, 0, 0}, size, Vec3{})
	max := WorldToGridMaxInclusive(Vec3{1, 0, 0}, size, Vec3{})
	if min.X != 1 {
		t.Fatalf("WorldToGridMin at lattice plane: got %d, want 1", min.X)
	}
	if max.X != 0 {
		t.Fatalf("WorldToGridMaxInclusive at lattice plane: got %d, want 0", max.X)
	}
}
