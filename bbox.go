package voxel

import "math"

// CordSystem selects the handedness used when emitting triangle winding
// for generated meshes (BBox.ToMesh, DiscreteMesher).
type CordSystem int

const (
	// RightHanded is the default coordinate system.
	RightHanded CordSystem = iota
	// LeftHanded flips the winding of every emitted triangle.
	LeftHanded
)

// BBox is an axis-aligned bounding box.
//
// An empty box has Min = +Inf and Max = -Inf componentwise, so that
// Expand always grows it from scratch. A box is Degenerate if any
// component of Min exceeds the corresponding component of Max.
type BBox struct {
	Min Vec3
	Max Vec3
}

// NewEmptyBBox returns an empty BBox ready for Expand.
func NewEmptyBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBBox returns the BBox spanning min and max directly, without
// validating min <= max.
func NewBBox(min, max Vec3) BBox {
	return BBox{Min: min, Max: max}
}

// Valid reports whether Min <= Max componentwise.
func (b BBox) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Degenerate is the negation of Valid.
func (b BBox) Degenerate() bool {
	return !b.Valid()
}

// Expand grows the box to include point, returning the updated box.
func (b BBox) Expand(point Vec3) BBox {
	return BBox{Min: b.Min.Min(point), Max: b.Max.Max(point)}
}

// ExpandBBox grows the box to include other, returning the updated box.
func (b BBox) ExpandBBox(other BBox) BBox {
	return BBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the midpoint of the box.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns Max - Min.
func (b BBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns the box's surface area, or 0 if it is not Valid.
func (b BBox) SurfaceArea() float32 {
	if !b.Valid() {
		return 0
	}
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// Contains reports whether point lies within the box, inclusive of all
// faces.
func (b BBox) Contains(point Vec3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}

// ContainsBBox reports whether other lies entirely within b, inclusive.
func (b BBox) ContainsBBox(other BBox) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// Intersects reports whether b and other overlap, inclusive of shared
// faces.
func (b BBox) Intersects(other BBox) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// GetCorners writes the box's 8 corners into out, which must have length
// 8. Order is the standard bit-enumeration: bit0 selects X, bit1 selects
// Y, bit2 selects Z (0 = Min, 1 = Max).
func (b BBox) GetCorners(out []Vec3) {
	if len(out) != 8 {
		panic("GetCorners: out must have length 8")
	}
	for i := 0; i < 8; i++ {
		x := b.Min.X
		if i&1 != 0 {
			x = b.Max.X
		}
		y := b.Min.Y
		if i&2 != 0 {
			y = b.Max.Y
		}
		z := b.Min.Z
		if i&4 != 0 {
			z = b.Max.Z
		}
		out[i] = Vec3{x, y, z}
	}
}

// ToMesh converts the box into a 12-triangle, 8-vertex watertight mesh
// under the given coordinate system.
func (b BBox) ToMesh(cord CordSystem) *Mesh {
	var corners [8]Vec3
	b.GetCorners(corners[:])
	verts := corners[:]

	// Faces listed with outward-facing, right-handed winding; (1, 2)
	// swapped on LeftHanded.
	faces := [][3]int32{
		// -X: 0,4,6,2
		{0, 4, 6}, {0, 6, 2},
		// +X: 1,3,7,5
		{1, 3, 7}, {1, 7, 5},
		// -Y: 0,1,5,4
		{0, 1, 5}, {0, 5, 4},
		// +Y: 2,6,7,3
		{2, 6, 7}, {2, 7, 3},
		// -Z: 0,2,3,1
		{0, 2, 3}, {0, 3, 1},
		// +Z: 4,5,7,6
		{4, 5, 7}, {4, 7, 6},
	}
	tris := make([]Tri, len(faces))
	for i, f := range faces {
		a, c2, c3 := f[0], f[1], f[2]
		if cord == LeftHanded {
			c2, c3 = c3, c2
		}
		tris[i] = Tri{A: a, B: c2, C: c3}
	}
	return NewMesh(append([]Vec3(nil), verts...), tris, true)
}

// triAABB returns the bounding box of a triangle's three vertices.
func triAABB(v0, v1, v2 Vec3) BBox {
	b := NewEmptyBBox()
	return b.Expand(v0).Expand(v1).Expand(v2)
}

// TriangleIntersectsBox reports whether the triangle (v0,v1,v2) overlaps
// the axis-aligned box centered at boxCenter with half-extents
// boxHalfSize, using the Akenine-Moller SAT test plus the companion
// IsCoveredByTriangle test for large triangles whose footprint fully
// covers a voxel without touching any edge.
func TriangleIntersectsBox(v0, v1, v2, boxCenter, boxHalfSize Vec3) bool {
	return satTriBox(v0, v1, v2, boxCenter, boxHalfSize) ||
		IsCoveredByTriangle(v0, v1, v2, boxCenter, boxHalfSize)
}

const satEpsilon = 1e-5

// satTriBox is the classic 13-axis Akenine-Moller triangle/box overlap
// test (3 box-normal axes folded into an AABB check, 1 triangle-normal
// axis, 9 edge-cross axes).
func satTriBox(v0, v1, v2, boxCenter, h Vec3) bool {
	// Translate triangle into box-local space.
	a := v0.Sub(boxCenter)
	b := v1.Sub(boxCenter)
	c := v2.Sub(boxCenter)

	// 1. Triangle AABB vs box.
	triBox := triAABB(a, b, c)
	if triBox.Min.X > h.X || triBox.Max.X < -h.X ||
		triBox.Min.Y > h.Y || triBox.Max.Y < -h.Y ||
		triBox.Min.Z > h.Z || triBox.Max.Z < -h.Z {
		return false
	}

	// 2. Triangle plane vs box.
	n := b.Sub(a).Cross(c.Sub(a))
	r := absF32(n.X)*h.X + absF32(n.Y)*h.Y + absF32(n.Z)*h.Z
	s := n.Dot(a)
	if s > r || s < -r {
		return false
	}

	// 3. 9 edge-cross-axis tests.
	edges := [3]Vec3{b.Sub(a), c.Sub(b), a.Sub(c)}
	verts := [3]Vec3{a, b, c}
	axes := [3]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, e := range edges {
		for _, axis := range axes {
			l := e.Cross(axis)
			if l.LengthSquared() < 1e-20 {
				continue
			}
			p0 := verts[0].Dot(l)
			p1 := verts[1].Dot(l)
			p2 := verts[2].Dot(l)
			minP := minF32(p0, minF32(p1, p2))
			maxP := maxF32(p0, maxF32(p1, p2))
			radius := absF32(l.X)*h.X + absF32(l.Y)*h.Y + absF32(l.Z)*h.Z
			if minP > radius+satEpsilon || maxP < -radius-satEpsilon {
				return false
			}
		}
	}
	return true
}

const coveredPlanePad = 1e-4
const coveredBaryEpsilon = -1e-5

// IsCoveredByTriangle handles the case of a voxel lying entirely within
// a large triangle's footprint without any triangle edge crossing the
// voxel: it checks that the box center is within a padded slab around
// the triangle's plane, then performs a barycentric test on the plane
// projection of the center, with a small negative epsilon to close gaps
// at cell boundaries.
//
// Near-degenerate triangles (|n|^2 < 1e-12) are reported as not covered;
// the SAT edge test above still catches any true overlap.
func IsCoveredByTriangle(v0, v1, v2, boxCenter, h Vec3) bool {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	nLenSq := n.LengthSquared()
	if nLenSq < 1e-12 {
		return false
	}
	nLen := float32(math.Sqrt(float64(nLenSq)))

	toCenter := boxCenter.Sub(v0)
	dist := n.Dot(toCenter)
	r := absF32(n.X)*h.X + absF32(n.Y)*h.Y + absF32(n.Z)*h.Z
	pad := r + coveredPlanePad*nLen
	if absF32(dist) > pad {
		return false
	}

	// Project center onto the plane without normalizing n.
	proj := boxCenter.Sub(n.Scale(dist / nLenSq))

	// Barycentric coordinates of proj w.r.t. triangle (v0,v1,v2).
	e0 := v1.Sub(v0)
	e1 := v2.Sub(v0)
	e2 := proj.Sub(v0)
	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	d20 := e2.Dot(e0)
	d21 := e2.Dot(e1)
	denom := d00*d11 - d01*d01
	if absF32(denom) < 1e-20 {
		return false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return u >= coveredBaryEpsilon && v >= coveredBaryEpsilon && w >= coveredBaryEpsilon
}

// SegmentIntersectsBox reports whether the segment p0->p1 overlaps the
// axis-aligned box [boxMin, boxMax], using Liang-Barsky slab clipping.
func SegmentIntersectsBox(p0, p1, boxMin, boxMax Vec3) bool {
	const parallelEps = 1e-12
	dir := p1.Sub(p0)
	tMin, tMax := float32(0), float32(1)

	axis := func(p0c, dc, minC, maxC float32) bool {
		if absF32(dc) < parallelEps {
			return p0c >= minC && p0c <= maxC
		}
		t0 := (minC - p0c) / dc
		t1 := (maxC - p0c) / dc
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		return tMin <= tMax
	}

	if !axis(p0.X, dir.X, boxMin.X, boxMax.X) {
		return false
	}
	if !axis(p0.Y, dir.Y, boxMin.Y, boxMax.Y) {
		return false
	}
	if !axis(p0.Z, dir.Z, boxMin.Z, boxMax.Z) {
		return false
	}
	return true
}

func absF32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
