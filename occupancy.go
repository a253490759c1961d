package voxel

// Occupancy labels a voxel's relationship to a rasterized surface.
type Occupancy uint8

const (
	// Outside marks a cell not enclosed by the surface.
	Outside Occupancy = 0
	// Inside marks a cell enclosed by the surface.
	Inside Occupancy = 1
	// Boundary marks a cell the surface passes through.
	Boundary Occupancy = 2
)

func (o Occupancy) String() string {
	switch o {
	case Outside:
		return "Outside"
	case Inside:
		return "Inside"
	case Boundary:
		return "Boundary"
	default:
		return "Unknown"
	}
}

// OccupancyGrid is a dense 3D array of Occupancy values over a GridMeta,
// row-major with X fastest. New grids are all Outside.
type OccupancyGrid struct {
	meta GridMeta
	data []Occupancy
}

// NewOccupancyGrid allocates a grid of the given meta, initialized to
// Outside.
func NewOccupancyGrid(meta GridMeta) *OccupancyGrid {
	return &OccupancyGrid{meta: meta, data: make([]Occupancy, meta.Count())}
}

// NewOccupancyGridBounds allocates a grid covering bounds with the given
// voxel size.
func NewOccupancyGridBounds(bounds BBox, voxelSize Vec3) (*OccupancyGrid, error) {
	meta, err := NewGridMeta(bounds, voxelSize)
	if err != nil {
		return nil, err
	}
	return NewOccupancyGrid(meta), nil
}

// Meta returns the grid's GridMeta.
func (g *OccupancyGrid) Meta() GridMeta { return g.meta }

// Buffer returns a mutable view of the grid's underlying flat array.
func (g *OccupancyGrid) Buffer() []Occupancy { return g.data }

// ReadOnlyBuffer returns a read-only view of the grid's underlying flat
// array.
func (g *OccupancyGrid) ReadOnlyBuffer() []Occupancy {
	return g.data[:len(g.data):len(g.data)]
}

// Get returns the occupancy at integer index (x,y,z).
func (g *OccupancyGrid) Get(x, y, z int32) (Occupancy, error) {
	if !g.meta.Contains(x, y, z) {
		return Outside, newOutOfRangeError("index (%d,%d,%d) out of range", x, y, z)
	}
	return g.data[g.meta.Lin(x, y, z)], nil
}

// GetLin returns the occupancy at a linear index without bounds checking.
func (g *OccupancyGrid) GetLin(idx int) Occupancy { return g.data[idx] }

// Set assigns the occupancy at integer index (x,y,z).
func (g *OccupancyGrid) Set(x, y, z int32, v Occupancy) error {
	if !g.meta.Contains(x, y, z) {
		return newOutOfRangeError("index (%d,%d,%d) out of range", x, y, z)
	}
	g.data[g.meta.Lin(x, y, z)] = v
	return nil
}

// SetLin assigns the occupancy at a linear index without bounds checking.
func (g *OccupancyGrid) SetLin(idx int, v Occupancy) { g.data[idx] = v }

// Fill sets every cell to v.
func (g *OccupancyGrid) Fill(v Occupancy) {
	for i := range g.data {
		g.data[i] = v
	}
}

// CountState returns the number of cells equal to state.
func (g *OccupancyGrid) CountState(state Occupancy) int {
	count := 0
	for _, v := range g.data {
		if v == state {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *OccupancyGrid) Clone() *OccupancyGrid {
	out := &OccupancyGrid{meta: g.meta, data: make([]Occupancy, len(g.data))}
	copy(out.data, g.data)
	return out
}

// ForEachVoxel invokes cb for every cell in linear order with its
// integer index and occupancy value.
func (g *OccupancyGrid) ForEachVoxel(cb func(x, y, z int32, v Occupancy)) {
	for idx, v := range g.data {
		x, y, z := g.meta.Unlin(idx)
		cb(x, y, z, v)
	}
}

// ForEachVoxelParallel invokes cb for every cell, in parallel over
// disjoint linear-index ranges. maxDegree caps the number of goroutines;
// 0 means GOMAXPROCS. cb must only touch cell (x,y,z)'s own state, never
// a neighbour's, since ordering across goroutines is unspecified.
func (g *OccupancyGrid) ForEachVoxelParallel(cb func(x, y, z int32, v Occupancy), maxDegree int) {
	n := len(g.data)
	parallelFor(maxDegree, n, func(idx int) {
		x, y, z := g.meta.Unlin(idx)
		cb(x, y, z, g.data[idx])
	})
}

// TransformWorld shifts the grid's contents by a world-space translation,
// rounded to the nearest integer voxel offset. Cells that would shift
// out of range are dropped; cells newly exposed at the opposite edge
// become Outside. This is intentionally lossy: it is a coarse whole-grid
// shift, not a resample.
func (g *OccupancyGrid) TransformWorld(translation Vec3) {
	dx := roundToInt32(translation.X / g.meta.VoxelSize.X)
	dy := roundToInt32(translation.Y / g.meta.VoxelSize.Y)
	dz := roundToInt32(translation.Z / g.meta.VoxelSize.Z)
	if dx == 0 && dy == 0 && dz == 0 {
		return
	}
	out := make([]Occupancy, len(g.data))
	for idx, v := range g.data {
		if v == Outside {
			continue
		}
		x, y, z := g.meta.Unlin(idx)
		nx, ny, nz := x+dx, y+dy, z+dz
		if !g.meta.Contains(nx, ny, nz) {
			continue
		}
		out[g.meta.Lin(nx, ny, nz)] = v
	}
	g.data = out
}

// GetMaskBinary returns a mask where Inside cells are 1 and
// Outside/Boundary cells are 0. If treatBoundaryAsInside is true,
// Boundary cells are also 1.
func (g *OccupancyGrid) GetMaskBinary(treatBoundaryAsInside bool) []uint8 {
	out := make([]uint8, len(g.data))
	for i, v := range g.data {
		if v == Inside || (treatBoundaryAsInside && v == Boundary) {
			out[i] = 1
		}
	}
	return out
}

// GetMaskTernary returns a mask with raw Occupancy values cast to uint8:
// 0=Outside, 1=Inside, 2=Boundary.
func (g *OccupancyGrid) GetMaskTernary() []uint8 {
	out := make([]uint8, len(g.data))
	for i, v := range g.data {
		out[i] = uint8(v)
	}
	return out
}

func roundToInt32(x float32) int32 {
	if x >= 0 {
		return int32(x + 0.5)
	}
	return int32(x - 0.5)
}
