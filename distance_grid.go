package voxel

import "github.com/unixpickle/essentials"

// DistanceGrid is a dense 3D array of float32 distances over a GridMeta,
// row-major with X fastest. Positive values are outside the surface,
// negative inside, zero on the boundary, all in world units.
type DistanceGrid struct {
	meta GridMeta
	data []float32
}

// NewDistanceGrid allocates a grid of the given meta, zero-initialized.
func NewDistanceGrid(meta GridMeta) *DistanceGrid {
	return &DistanceGrid{meta: meta, data: make([]float32, meta.Count())}
}

// NewDistanceGridBounds allocates a grid covering bounds with the given
// voxel size.
func NewDistanceGridBounds(bounds BBox, voxelSize Vec3) (*DistanceGrid, error) {
	meta, err := NewGridMeta(bounds, voxelSize)
	if err != nil {
		return nil, err
	}
	return NewDistanceGrid(meta), nil
}

// NewDistanceGridFromOccupancy allocates a DistanceGrid with the same
// GridMeta as occ, uninitialized (all-zero) until a build method is run.
func NewDistanceGridFromOccupancy(occ *OccupancyGrid) *DistanceGrid {
	return NewDistanceGrid(occ.Meta())
}

// Meta returns the grid's GridMeta.
func (g *DistanceGrid) Meta() GridMeta { return g.meta }

// Buffer returns a mutable view of the grid's underlying flat array.
func (g *DistanceGrid) Buffer() []float32 { return g.data }

// ReadOnlyBuffer returns a read-only view of the grid's underlying flat
// array.
func (g *DistanceGrid) ReadOnlyBuffer() []float32 {
	return g.data[:len(g.data):len(g.data)]
}

// Clone returns a deep copy of the grid.
func (g *DistanceGrid) Clone() *DistanceGrid {
	out := &DistanceGrid{meta: g.meta, data: make([]float32, len(g.data))}
	copy(out.data, g.data)
	return out
}

// GetValueIndex returns the distance at integer index (x,y,z).
func (g *DistanceGrid) GetValueIndex(x, y, z int32) (float32, error) {
	if !g.meta.Contains(x, y, z) {
		return 0, newOutOfRangeError("index (%d,%d,%d) out of range", x, y, z)
	}
	return g.data[g.meta.Lin(x, y, z)], nil
}

// GetValue returns the distance at the nearest voxel to world, clamped
// into range.
func (g *DistanceGrid) GetValue(world Vec3) float32 {
	idx := g.nearestIndexClamped(world)
	return g.data[g.meta.Lin(idx.X, idx.Y, idx.Z)]
}

// nearestIndexClamped returns the integer index of the voxel whose
// center is nearest world, clamped to the grid's extents.
func (g *DistanceGrid) nearestIndexClamped(world Vec3) gridIndex3 {
	idx := WorldToGridMin(world, g.meta.VoxelSize, Vec3{})
	return gridIndex3{
		X: clampI32(idx.X, g.meta.MinX, g.meta.MinX+g.meta.Nx-1),
		Y: clampI32(idx.Y, g.meta.MinY, g.meta.MinY+g.meta.Ny-1),
		Z: clampI32(idx.Z, g.meta.MinZ, g.meta.MinZ+g.meta.Nz-1),
	}
}

// clampI32 clamps v into [lo, hi], built on essentials.MinInt/MaxInt (the
// teacher's own min/max helpers throughout model3d/dc.go) rather than a
// hand-rolled branch pair.
func clampI32(v, lo, hi int32) int32 {
	return int32(essentials.MaxInt(int(lo), essentials.MinInt(int(hi), int(v))))
}

// AddOffset shifts every cell by delta in world units, e.g. to morph an
// iso-surface inward/outward before meshing.
func (g *DistanceGrid) AddOffset(delta float32) {
	for i := range g.data {
		g.data[i] += delta
	}
}

// MinMax returns the minimum and maximum values in the grid.
func (g *DistanceGrid) MinMax() (min, max float32) {
	if len(g.data) == 0 {
		return 0, 0
	}
	min, max = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
