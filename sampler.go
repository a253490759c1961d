package voxel

import "math"

// SampleTrilinear reconstructs a continuous value at world by trilinear
// interpolation over the 8 corners of the enclosing voxel cell.
//
// If clamp is true, indices are clamped to [0, n-2] per axis (so the
// sample always has a valid "next" corner); if false, a position whose
// lower corner falls outside [0, n-2] on any axis returns an
// OutOfRangeError. Axes with n=1 are degenerate: they contribute a
// fractional offset of 0, i.e. the sample just uses that axis's single
// plane.
func (g *DistanceGrid) SampleTrilinear(world Vec3, clamp bool) (float32, error) {
	lower, frac, err := g.lowerCornerAndFrac(world, clamp)
	if err != nil {
		return 0, err
	}
	return g.trilinearAt(lower, frac), nil
}

// lowerCornerAndFrac resolves the lower voxel corner and fractional
// offset within the cell for a world-space position.
func (g *DistanceGrid) lowerCornerAndFrac(world Vec3, clamp bool) (gridIndex3, Vec3, error) {
	raw := WorldToGridMin(world, g.meta.VoxelSize, Vec3{})

	lower, err := clampAxis(raw.X, g.meta.MinX, g.meta.Nx, clamp)
	if err != nil {
		return gridIndex3{}, Vec3{}, err
	}
	lowerY, err := clampAxis(raw.Y, g.meta.MinY, g.meta.Ny, clamp)
	if err != nil {
		return gridIndex3{}, Vec3{}, err
	}
	lowerZ, err := clampAxis(raw.Z, g.meta.MinZ, g.meta.Nz, clamp)
	if err != nil {
		return gridIndex3{}, Vec3{}, err
	}

	cellMin := g.meta.IndexToMinCorner(lower, lowerY, lowerZ)
	frac := Vec3{}
	if g.meta.Nx > 1 {
		frac.X = (world.X - cellMin.X) / g.meta.VoxelSize.X
	}
	if g.meta.Ny > 1 {
		frac.Y = (world.Y - cellMin.Y) / g.meta.VoxelSize.Y
	}
	if g.meta.Nz > 1 {
		frac.Z = (world.Z - cellMin.Z) / g.meta.VoxelSize.Z
	}
	frac.X = clampF32(frac.X, 0, 1)
	frac.Y = clampF32(frac.Y, 0, 1)
	frac.Z = clampF32(frac.Z, 0, 1)

	return gridIndex3{lower, lowerY, lowerZ}, frac, nil
}

// clampAxis clamps a raw lattice index to [min, min+n-2] (so a "next"
// corner always exists), or fails if clamp is false and the index is out
// of that range. Degenerate axes (n=1) always resolve to min.
func clampAxis(raw, min, n int32, clamp bool) (int32, error) {
	if n == 1 {
		return min, nil
	}
	hi := min + n - 2
	if raw < min || raw > hi {
		if !clamp {
			return 0, newOutOfRangeError("axis index %d out of range [%d,%d]", raw, min, hi)
		}
		return clampI32(raw, min, hi), nil
	}
	return raw, nil
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (g *DistanceGrid) valueAt(x, y, z int32) float32 {
	return g.data[g.meta.Lin(x, y, z)]
}

func (g *DistanceGrid) trilinearAt(lower gridIndex3, frac Vec3) float32 {
	x0, y0, z0 := lower.X, lower.Y, lower.Z
	x1, y1, z1 := x0, y0, z0
	if g.meta.Nx > 1 {
		x1 = x0 + 1
	}
	if g.meta.Ny > 1 {
		y1 = y0 + 1
	}
	if g.meta.Nz > 1 {
		z1 = z0 + 1
	}

	c000 := g.valueAt(x0, y0, z0)
	c100 := g.valueAt(x1, y0, z0)
	c010 := g.valueAt(x0, y1, z0)
	c110 := g.valueAt(x1, y1, z0)
	c001 := g.valueAt(x0, y0, z1)
	c101 := g.valueAt(x1, y0, z1)
	c011 := g.valueAt(x0, y1, z1)
	c111 := g.valueAt(x1, y1, z1)

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }

	c00 := lerp(c000, c100, frac.X)
	c10 := lerp(c010, c110, frac.X)
	c01 := lerp(c001, c101, frac.X)
	c11 := lerp(c011, c111, frac.X)

	c0 := lerp(c00, c10, frac.Y)
	c1 := lerp(c01, c11, frac.Y)

	return lerp(c0, c1, frac.Z)
}

// SampleGradient returns the central-difference gradient of the field at
// world, in world units. Degenerate axes (n=1) contribute 0.
func (g *DistanceGrid) SampleGradient(world Vec3, clamp bool) (Vec3, error) {
	var grad Vec3
	vx := g.meta.VoxelSize.X
	vy := g.meta.VoxelSize.Y
	vz := g.meta.VoxelSize.Z

	if g.meta.Nx > 1 {
		plus, err := g.SampleTrilinear(world.Add(Vec3{X: vx}), clamp)
		if err != nil {
			return Vec3{}, err
		}
		minus, err := g.SampleTrilinear(world.Sub(Vec3{X: vx}), clamp)
		if err != nil {
			return Vec3{}, err
		}
		grad.X = (plus - minus) / (2 * vx)
	}
	if g.meta.Ny > 1 {
		plus, err := g.SampleTrilinear(world.Add(Vec3{Y: vy}), clamp)
		if err != nil {
			return Vec3{}, err
		}
		minus, err := g.SampleTrilinear(world.Sub(Vec3{Y: vy}), clamp)
		if err != nil {
			return Vec3{}, err
		}
		grad.Y = (plus - minus) / (2 * vy)
	}
	if g.meta.Nz > 1 {
		plus, err := g.SampleTrilinear(world.Add(Vec3{Z: vz}), clamp)
		if err != nil {
			return Vec3{}, err
		}
		minus, err := g.SampleTrilinear(world.Sub(Vec3{Z: vz}), clamp)
		if err != nil {
			return Vec3{}, err
		}
		grad.Z = (plus - minus) / (2 * vz)
	}
	return grad, nil
}

// SampleNormal returns the unit gradient at world, or the zero vector if
// the gradient magnitude is below 1e-8.
func (g *DistanceGrid) SampleNormal(world Vec3, clamp bool) (Vec3, error) {
	grad, err := g.SampleGradient(world, clamp)
	if err != nil {
		return Vec3{}, err
	}
	if math.Sqrt(float64(grad.LengthSquared())) < 1e-8 {
		return Vec3{}, nil
	}
	return grad.Normalize(), nil
}
