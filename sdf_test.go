package voxel

import "testing"

// centerSeedMask builds an n x n x n binary mask (1 = inside) with a single
// inside cell at the center, used to check the SDF's sign law and
// isotropic magnitude.
func centerSeedMask(n int32) (meta GridMeta, mask []uint8) {
	meta, _ = NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{float32(n), float32(n), float32(n)}), Vec3{1, 1, 1})
	mask = make([]uint8, meta.Count())
	cx, cy, cz := n/2, n/2, n/2
	mask[meta.Lin(cx, cy, cz)] = 1
	return meta, mask
}

func TestSdfBuilderSignLaw(t *testing.T) {
	meta, mask := centerSeedMask(5)
	out := NewDistanceGrid(meta)
	builder := &SdfBuilder{}
	if err := builder.BuildFromBinaryMask(mask, out, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range mask {
		d := out.Buffer()[i]
		if v == 1 {
			if d > 0 {
				t.Fatalf("inside cell %d should have non-positive distance, got %v", i, d)
			}
		} else {
			if d < 0 {
				t.Fatalf("outside cell %d should have non-negative distance, got %v", i, d)
			}
		}
	}
}

func TestSdfBuilderIsotropicMagnitude(t *testing.T) {
	meta, mask := centerSeedMask(5)
	out := NewDistanceGrid(meta)
	builder := &SdfBuilder{}
	if err := builder.BuildFromBinaryMask(mask, out, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cx, cy, cz := int32(2), int32(2), int32(2)
	// Neighbour one cell over in X: it is an outside cell one voxel from
	// the single inside seed, so its signed distance is +1.
	idx := meta.Lin(cx+1, cy, cz)
	got := out.Buffer()[idx]
	if !approxEqual(got, 1, 1e-4) {
		t.Fatalf("adjacent outside cell: got %v, want ~1", got)
	}
}

func TestSdfBuilderTernarySnapsBoundaryToZero(t *testing.T) {
	meta, _ := NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{5, 5, 5}), Vec3{1, 1, 1})
	mask := make([]uint8, meta.Count())
	for i := range mask {
		mask[i] = uint8(Outside)
	}
	mask[meta.Lin(2, 2, 2)] = uint8(Inside)
	mask[meta.Lin(1, 2, 2)] = uint8(Boundary)
	mask[meta.Lin(3, 2, 2)] = uint8(Boundary)

	out := NewDistanceGrid(meta)
	builder := &SdfBuilder{}
	if err := builder.BuildFromTernaryMask(mask, out, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range mask {
		if v == uint8(Boundary) && out.Buffer()[i] != 0 {
			t.Fatalf("boundary cell %d should snap to exactly 0, got %v", i, out.Buffer()[i])
		}
	}
}

func TestSdfBuilderAnisotropicUsesWeightedPath(t *testing.T) {
	meta, err := NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{4, 8, 4}), Vec3{1, 2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mask := make([]uint8, meta.Count())
	mask[meta.Lin(2, 2, 2)] = 1
	out := NewDistanceGrid(meta)
	builder := &SdfBuilder{}
	if err := builder.BuildFromBinaryMask(mask, out, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Stepping along Y (spacing 2) should read a larger magnitude than
	// stepping along X (spacing 1) for the same index offset.
	dx := out.Buffer()[meta.Lin(3, 2, 2)]
	dy := out.Buffer()[meta.Lin(2, 3, 2)]
	if !(dy > dx) {
		t.Fatalf("expected larger distance along the coarser Y spacing: dx=%v dy=%v", dx, dy)
	}
}

func TestSdfBuilderRejectsMismatchedMaskLength(t *testing.T) {
	meta, _ := NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{2, 2, 2}), Vec3{1, 1, 1})
	out := NewDistanceGrid(meta)
	builder := &SdfBuilder{}
	if err := builder.BuildFromBinaryMask([]uint8{1, 2, 3}, out, false); err == nil {
		t.Fatalf("expected error for mismatched mask length")
	}
}
