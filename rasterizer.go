package voxel

import "github.com/sean1832/zlabdiscrete/numerical"

// DenseRasterizer rasterizes triangle meshes and polylines directly into
// an OccupancyGrid, marking overlapping voxels Boundary.
//
// ParallelThreshold is the minimum face count below which the mesh loop
// runs sequentially instead of fanning out over essentials.ConcurrentMap
// (writes are idempotent and disjoint-or-identical, so parallelizing
// over faces is always safe; it just isn't always worth it). The fan-out
// goes through numerical.ParallelFor, which itself stays sequential below
// DefaultParallelThreshold faces, so a smaller ParallelThreshold does not
// parallelize meshes with fewer faces than that.
type DenseRasterizer struct {
	ParallelThreshold int
}

func (r *DenseRasterizer) threshold() int {
	if r.ParallelThreshold == 0 {
		return DefaultParallelThreshold
	}
	return r.ParallelThreshold
}

// RasterizeMesh marks every voxel of grid that overlaps a face of mesh
// as Boundary, then optionally runs flood fill to classify the
// remaining cells. No-ops if the mesh's bounds do not intersect the
// grid's bounds, or the mesh has no faces.
func (r *DenseRasterizer) RasterizeMesh(grid *OccupancyGrid, mesh *Mesh, floodFill bool) error {
	if len(mesh.Faces()) == 0 {
		return nil
	}
	gridBounds := grid.Meta().Bounds()
	if !gridBounds.Intersects(mesh.Bounds()) {
		return nil
	}

	n := len(mesh.Faces())
	meta := grid.Meta()
	rasterizeFace := func(i int) {
		v0, v1, v2 := mesh.Triangle(i)
		rasterizeTriangleIntoGrid(grid, meta, v0, v1, v2)
	}
	if n < r.threshold() {
		for i := 0; i < n; i++ {
			rasterizeFace(i)
		}
	} else {
		numerical.ParallelFor(0, n, rasterizeFace)
	}

	if floodFill {
		return FloodFill(grid)
	}
	return nil
}

// RasterizePolyline marks every voxel of grid that overlaps a segment of
// polyline as Boundary, using an Amanatides-Woo 3-D DDA traversal per
// segment.
func (r *DenseRasterizer) RasterizePolyline(grid *OccupancyGrid, polyline *Polyline) error {
	meta := grid.Meta()
	verts := polyline.Vertices()
	if len(verts) == 0 {
		return nil
	}
	n := len(verts)
	segCount := n - 1
	if polyline.IsClosed() {
		segCount = n
	}
	for i := 0; i < segCount; i++ {
		p0 := verts[i%n]
		p1 := verts[(i+1)%n]
		ddaSegment(p0, p1, meta.VoxelSize, func(x, y, z int32) {
			if meta.Contains(x, y, z) {
				grid.SetLin(meta.Lin(x, y, z), Boundary)
			}
		})
	}
	return nil
}

// rasterizeTriangleIntoGrid is the dense rasterizer's per-triangle voxel
// traversal (the sparse rasterizer uses visitTriangleVoxelsUnbounded
// instead): compute the triangle's AABB, convert
// to a half-open integer voxel AABB, iterate voxels in z-y-x order, and
// mark any voxel whose SAT predicate (TriangleIntersectsBox) holds.
func rasterizeTriangleIntoGrid(grid *OccupancyGrid, meta GridMeta, v0, v1, v2 Vec3) {
	visitTriangleVoxels(v0, v1, v2, meta, func(x, y, z int32) {
		if meta.Contains(x, y, z) {
			grid.SetLin(meta.Lin(x, y, z), Boundary)
		}
	})
}

// visitTriangleVoxels iterates the voxels (clamped to meta's extents,
// computed but not necessarily written) that overlap triangle
// (v0,v1,v2) under the SAT predicate, invoking cb(x,y,z) for each.
func visitTriangleVoxels(v0, v1, v2 Vec3, meta GridMeta, cb func(x, y, z int32)) {
	box := triAABB(v0, v1, v2)
	if !box.Valid() {
		return
	}
	minIdx := WorldToGridMin(box.Min, meta.VoxelSize, Vec3{})
	maxIdx := WorldToGridMaxInclusive(box.Max, meta.VoxelSize, Vec3{})
	// A triangle lying in a lattice plane gives maxIdx = minIdx-1 on that
	// axis; keep the cell above the plane so the face is still visited.
	if maxIdx.X < minIdx.X {
		maxIdx.X = minIdx.X
	}
	if maxIdx.Y < minIdx.Y {
		maxIdx.Y = minIdx.Y
	}
	if maxIdx.Z < minIdx.Z {
		maxIdx.Z = minIdx.Z
	}

	minIdx.X = clampI32(minIdx.X, meta.MinX, meta.MinX+meta.Nx-1)
	minIdx.Y = clampI32(minIdx.Y, meta.MinY, meta.MinY+meta.Ny-1)
	minIdx.Z = clampI32(minIdx.Z, meta.MinZ, meta.MinZ+meta.Nz-1)
	maxIdx.X = clampI32(maxIdx.X, meta.MinX, meta.MinX+meta.Nx-1)
	maxIdx.Y = clampI32(maxIdx.Y, meta.MinY, meta.MinY+meta.Ny-1)
	maxIdx.Z = clampI32(maxIdx.Z, meta.MinZ, meta.MinZ+meta.Nz-1)

	half := meta.VoxelSize.Scale(0.5)
	for z := maxIdx.Z; z >= minIdx.Z; z-- {
		for y := maxIdx.Y; y >= minIdx.Y; y-- {
			for x := maxIdx.X; x >= minIdx.X; x-- {
				center := meta.IndexToCenter(x, y, z)
				if TriangleIntersectsBox(v0, v1, v2, center, half) {
					cb(x, y, z)
				}
			}
		}
	}
}

// ddaSegment walks the voxel lattice from p0 to p1 using the
// Amanatides-Woo 3-D DDA, invoking cb(x,y,z) for every voxel touched.
// Degenerate (zero-length) segments emit a single voxel.
func ddaSegment(p0, p1 Vec3, size Vec3, cb func(x, y, z int32)) {
	dir := p1.Sub(p0)
	if dir.LengthSquared() < 1e-18 {
		idx := WorldToGridMin(p0, size, Vec3{})
		cb(idx.X, idx.Y, idx.Z)
		return
	}

	box := triAABB(p0, p1, p1)
	minIdx := WorldToGridMin(box.Min, size, Vec3{})
	maxIdx := WorldToGridMaxInclusive(box.Max, size, Vec3{})
	// A segment lying in a lattice plane gives maxIdx = minIdx-1 on that
	// axis; keep the cell above the plane so the segment is still walked.
	if maxIdx.X < minIdx.X {
		maxIdx.X = minIdx.X
	}
	if maxIdx.Y < minIdx.Y {
		maxIdx.Y = minIdx.Y
	}
	if maxIdx.Z < minIdx.Z {
		maxIdx.Z = minIdx.Z
	}

	start := WorldToGridMin(p0, size, Vec3{})
	x, y, z := clampI32(start.X, minIdx.X, maxIdx.X), clampI32(start.Y, minIdx.Y, maxIdx.Y), clampI32(start.Z, minIdx.Z, maxIdx.Z)

	stepX, tMaxX, tDeltaX := ddaAxis(p0.X, dir.X, size.X, x)
	stepY, tMaxY, tDeltaY := ddaAxis(p0.Y, dir.Y, size.Y, y)
	stepZ, tMaxZ, tDeltaZ := ddaAxis(p0.Z, dir.Z, size.Z, z)

	for {
		cb(x, y, z)
		if x < minIdx.X || x > maxIdx.X || y < minIdx.Y || y > maxIdx.Y || z < minIdx.Z || z > maxIdx.Z {
			return
		}
		if tMaxX <= tMaxY && tMaxX <= tMaxZ {
			if tMaxX > 1 {
				return
			}
			x += stepX
			tMaxX += tDeltaX
		} else if tMaxY <= tMaxZ {
			if tMaxY > 1 {
				return
			}
			y += stepY
			tMaxY += tDeltaY
		} else {
			if tMaxZ > 1 {
				return
			}
			z += stepZ
			tMaxZ += tDeltaZ
		}
		if x < minIdx.X || x > maxIdx.X || y < minIdx.Y || y > maxIdx.Y || z < minIdx.Z || z > maxIdx.Z {
			return
		}
	}
}

// ddaAxis computes the DDA step sign, initial tMax, and tDelta for one
// axis, given the starting voxel index on that axis.
func ddaAxis(p0c, dirc, sizec float32, idx int32) (step int32, tMax, tDelta float32) {
	if dirc == 0 {
		return 0, posInf32, posInf32
	}
	if dirc > 0 {
		step = 1
		voxelBoundary := float32(idx+1) * sizec
		tMax = (voxelBoundary - p0c) / dirc
	} else {
		step = -1
		voxelBoundary := float32(idx) * sizec
		tMax = (voxelBoundary - p0c) / dirc
	}
	tDelta = sizec / absF32(dirc)
	return step, tMax, tDelta
}

const posInf32 = float32(1e30)
