package voxel

import "math"

// quantEpsilon is the single tolerance used across all world<->grid
// conversions and sparse-voxel hashing. Keeping it in one place is what
// stops "a point exactly on a voxel plane" from landing in two different
// cells depending on which routine touched it.
const quantEpsilon = 1e-6

// GridMeta is an immutable description of an integer voxel lattice: an
// origin index, extents along each axis, and a (possibly anisotropic)
// voxel size.
type GridMeta struct {
	MinX, MinY, MinZ int32
	Nx, Ny, Nz        int32
	VoxelSize         Vec3
}

// NewGridMeta builds a GridMeta spanning bounds with the given voxel
// size, quantizing bounds.Min down and bounds.Max up to the lattice.
func NewGridMeta(bounds BBox, voxelSize Vec3) (GridMeta, error) {
	if voxelSize.X <= 0 || voxelSize.Y <= 0 || voxelSize.Z <= 0 {
		return GridMeta{}, newArgumentError("voxel size must be positive, got %v", voxelSize)
	}
	if !bounds.Valid() {
		return GridMeta{}, newArgumentError("bounds must be valid (min <= max)")
	}
	minIdx := WorldToGridMin(bounds.Min, voxelSize, Vec3{})
	maxIdx := WorldToGridMaxInclusive(bounds.Max, voxelSize, Vec3{})
	nx := maxIdx.X - minIdx.X + 1
	ny := maxIdx.Y - minIdx.Y + 1
	nz := maxIdx.Z - minIdx.Z + 1
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return GridMeta{}, newArgumentError("degenerate grid extents (%d,%d,%d)", nx, ny, nz)
	}
	return GridMeta{
		MinX: minIdx.X, MinY: minIdx.Y, MinZ: minIdx.Z,
		Nx: nx, Ny: ny, Nz: nz,
		VoxelSize: voxelSize,
	}, nil
}

// NewGridMetaSize builds a GridMeta with explicit integer extents,
// anchored at minIndex.
func NewGridMetaSize(minIndex [3]int32, size [3]int32, voxelSize Vec3) (GridMeta, error) {
	if voxelSize.X <= 0 || voxelSize.Y <= 0 || voxelSize.Z <= 0 {
		return GridMeta{}, newArgumentError("voxel size must be positive, got %v", voxelSize)
	}
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return GridMeta{}, newArgumentError("grid size must be positive, got %v", size)
	}
	return GridMeta{
		MinX: minIndex[0], MinY: minIndex[1], MinZ: minIndex[2],
		Nx: size[0], Ny: size[1], Nz: size[2],
		VoxelSize: voxelSize,
	}, nil
}

// Count returns the total number of cells, Nx*Ny*Nz.
func (g GridMeta) Count() int {
	return int(g.Nx) * int(g.Ny) * int(g.Nz)
}

// SizeWorld returns the world-space extent of the grid.
func (g GridMeta) SizeWorld() Vec3 {
	return Vec3{
		float32(g.Nx) * g.VoxelSize.X,
		float32(g.Ny) * g.VoxelSize.Y,
		float32(g.Nz) * g.VoxelSize.Z,
	}
}

// Origin returns the world-space min corner of the grid.
func (g GridMeta) Origin() Vec3 {
	return g.IndexToMinCorner(g.MinX, g.MinY, g.MinZ)
}

// Bounds returns the world-space BBox spanned by the grid.
func (g GridMeta) Bounds() BBox {
	o := g.Origin()
	return NewBBox(o, o.Add(g.SizeWorld()))
}

// Contains reports whether the integer index (x,y,z) is within the
// grid's extents.
func (g GridMeta) Contains(x, y, z int32) bool {
	return x >= g.MinX && x < g.MinX+g.Nx &&
		y >= g.MinY && y < g.MinY+g.Ny &&
		z >= g.MinZ && z < g.MinZ+g.Nz
}

// Lin returns the row-major (x fastest, then y, then z) linear index for
// (x,y,z). Does not bounds-check; callers should call Contains first
// when the index might be out of range.
func (g GridMeta) Lin(x, y, z int32) int {
	return int(z-g.MinZ)*int(g.Nx)*int(g.Ny) + int(y-g.MinY)*int(g.Nx) + int(x-g.MinX)
}

// Unlin decodes a linear index back into an (x,y,z) integer index.
func (g GridMeta) Unlin(idx int) (int32, int32, int32) {
	plane := int(g.Nx) * int(g.Ny)
	z := idx / plane
	rem := idx % plane
	y := rem / int(g.Nx)
	x := rem % int(g.Nx)
	return g.MinX + int32(x), g.MinY + int32(y), g.MinZ + int32(z)
}

// IndexToMinCorner returns the world-space min corner of voxel (x,y,z).
func (g GridMeta) IndexToMinCorner(x, y, z int32) Vec3 {
	return Vec3{
		float32(x) * g.VoxelSize.X,
		float32(y) * g.VoxelSize.Y,
		float32(z) * g.VoxelSize.Z,
	}
}

// IndexToMaxCorner returns the world-space max corner of voxel (x,y,z).
func (g GridMeta) IndexToMaxCorner(x, y, z int32) Vec3 {
	return g.IndexToMinCorner(x+1, y+1, z+1)
}

// IndexToCenter returns the world-space center of voxel (x,y,z).
func (g GridMeta) IndexToCenter(x, y, z int32) Vec3 {
	return g.IndexToMinCorner(x, y, z).Add(g.VoxelSize.Scale(0.5))
}

// gridIndex3 is an integer voxel index triple.
type gridIndex3 struct {
	X, Y, Z int32
}

// WorldToGridMin converts a world-space point to the integer index of
// the voxel it falls in, for "minimum" queries: a point exactly on a
// lattice plane is assigned to the cell above the plane (the cell whose
// min face lies on it).
func WorldToGridMin(p Vec3, size Vec3, origin Vec3) gridIndex3 {
	return gridIndex3{
		X: int32(math.Floor(float64((p.X-origin.X+quantEpsilon)/size.X))),
		Y: int32(math.Floor(float64((p.Y-origin.Y+quantEpsilon)/size.Y))),
		Z: int32(math.Floor(float64((p.Z-origin.Z+quantEpsilon)/size.Z))),
	}
}

// WorldToGridMaxInclusive converts a world-space point to the integer
// index of the voxel it falls in, for "maximum inclusive" queries: a
// point exactly on a lattice plane is assigned to the cell below the
// plane (the cell whose max face lies on it).
func WorldToGridMaxInclusive(p Vec3, size Vec3, origin Vec3) gridIndex3 {
	return gridIndex3{
		X: int32(math.Floor(float64((p.X-origin.X-quantEpsilon)/size.X))),
		Y: int32(math.Floor(float64((p.Y-origin.Y-quantEpsilon)/size.Y))),
		Z: int32(math.Floor(float64((p.Z-origin.Z-quantEpsilon)/size.Z))),
	}
}
