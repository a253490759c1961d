package voxel

import "testing"

// linearRampGrid builds an n x n x n unit-voxel grid whose value at every
// cell equals its X index, so trilinear sampling at a fractional X
// position should reproduce that X coordinate exactly.
func linearRampGrid(t *testing.T, n int32) *DistanceGrid {
	t.Helper()
	meta, err := NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{float32(n), float32(n), float32(n)}), Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grid := NewDistanceGrid(meta)
	buf := grid.Buffer()
	for idx := range buf {
		x, _, _ := meta.Unlin(idx)
		buf[idx] = float32(x)
	}
	return grid
}

func TestSampleTrilinearLinearRamp(t *testing.T) {
	grid := linearRampGrid(t, 4)
	v, err := grid.SampleTrilinear(Vec3{1.5, 0.5, 0.5}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(v, 1.5, 1e-5) {
		t.Fatalf("got %v, want 1.5", v)
	}
}

func TestSampleTrilinearAtLatticePointMatchesStoredValue(t *testing.T) {
	grid := linearRampGrid(t, 4)
	v, err := grid.SampleTrilinear(Vec3{2, 2, 2}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(v, 2, 1e-5) {
		t.Fatalf("got %v, want 2", v)
	}
}

func TestSampleTrilinearOutOfRangeWithoutClamp(t *testing.T) {
	grid := linearRampGrid(t, 4)
	if _, err := grid.SampleTrilinear(Vec3{100, 100, 100}, false); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if _, err := grid.SampleTrilinear(Vec3{100, 100, 100}, true); err != nil {
		t.Fatalf("unexpected error with clamp=true: %v", err)
	}
}

func TestSampleGradientLinearRamp(t *testing.T) {
	grid := linearRampGrid(t, 5)
	grad, err := grid.SampleGradient(Vec3{2, 2, 2}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(grad.X, 1, 1e-4) {
		t.Fatalf("gradient.X: got %v, want 1", grad.X)
	}
	if !approxEqual(grad.Y, 0, 1e-4) || !approxEqual(grad.Z, 0, 1e-4) {
		t.Fatalf("gradient Y/Z should be 0 for a pure X ramp, got %v", grad)
	}
}

func TestSampleNormalUnitLength(t *testing.T) {
	grid := linearRampGrid(t, 5)
	n, err := grid.SampleNormal(Vec3{2, 2, 2}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(n.Length(), 1, 1e-4) {
		t.Fatalf("normal length: got %v, want 1", n.Length())
	}
}

func TestSampleNormalZeroForFlatField(t *testing.T) {
	meta, _ := NewGridMeta(NewBBox(Vec3{0, 0, 0}, Vec3{4, 4, 4}), Vec3{1, 1, 1})
	grid := NewDistanceGrid(meta) // all zero, flat field
	n, err := grid.SampleNormal(Vec3{1, 1, 1}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != (Vec3{}) {
		t.Fatalf("flat field should produce zero normal, got %v", n)
	}
}

func TestSampleTrilinearDegenerateAxis(t *testing.T) {
	// A single-cell-thick grid along Z (n=1): sampling anywhere on that
	// axis should not depend on the Z coordinate at all.
	meta, err := NewGridMetaSize([3]int32{0, 0, 0}, [3]int32{2, 2, 1}, Vec3{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grid := NewDistanceGrid(meta)
	grid.Buffer()[meta.Lin(0, 0, 0)] = 1
	grid.Buffer()[meta.Lin(1, 0, 0)] = 3

	a, err := grid.SampleTrilinear(Vec3{0.5, 0, 0.5}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := grid.SampleTrilinear(Vec3{0.5, 0, 50}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(a, b, 1e-6) {
		t.Fatalf("degenerate Z axis should not affect sample: got %v vs %v", a, b)
	}
}
