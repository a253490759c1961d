package voxel

import (
	"math"

	"github.com/sean1832/zlabdiscrete/numerical"
)

// DiscreteMesher turns a set of voxel origins on a uniform lattice into
// a polygonal surface, culling internal faces via a Morton-coded
// neighbour lookup.
type DiscreteMesher struct {
	// CordSystem selects triangle winding for emitted faces.
	CordSystem CordSystem
}

// GenerateMesh builds a single mesh from origins at the given uniform
// voxel size, with internal faces between adjacent voxels culled.
//
// Fails with an InvariantError if origins is empty.
func (m *DiscreteMesher) GenerateMesh(origins []Vec3, size Vec3) (*Mesh, error) {
	if len(origins) == 0 {
		return nil, newInvariantError("mesher invoked on an empty voxel set")
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, newArgumentError("voxel size must be positive, got %v", size)
	}

	indices, minOrigin, err := quantizeOrigins(origins, size)
	if err != nil {
		return nil, err
	}

	occupied := make(map[uint64]struct{}, len(indices))
	for _, idx := range indices {
		occupied[numerical.MortonEncode(uint32(idx.X), uint32(idx.Y), uint32(idx.Z))] = struct{}{}
	}

	welder := newVertexWelder(size)
	var tris []Tri
	addQuad := func(corners [4]Vec3) {
		a := welder.index(corners[0])
		b := welder.index(corners[1])
		c := welder.index(corners[2])
		d := welder.index(corners[3])
		t1 := Tri{a, b, c}
		t2 := Tri{a, c, d}
		if m.CordSystem == LeftHanded {
			t1.B, t1.C = t1.C, t1.B
			t2.B, t2.C = t2.C, t2.B
		}
		tris = append(tris, t1, t2)
	}

	for _, idx := range indices {
		origin := minOrigin.Add(Vec3{float32(idx.X) * size.X, float32(idx.Y) * size.Y, float32(idx.Z) * size.Z})
		for face := 0; face < 6; face++ {
			nb := neighbourOf(idx, face)
			if nb.X < 0 || nb.Y < 0 || nb.Z < 0 {
				emitFace(origin, size, face, addQuad)
				continue
			}
			code := numerical.MortonEncode(uint32(nb.X), uint32(nb.Y), uint32(nb.Z))
			if _, ok := occupied[code]; !ok {
				emitFace(origin, size, face, addQuad)
			}
		}
	}

	return NewMesh(welder.vertices(), tris), nil
}

// GenerateMeshes is like GenerateMesh, but accepts a per-origin voxel
// size. Non-uniform sizes disable face culling: all six faces of every
// voxel are emitted, as a culling predicate over differently sized
// neighbours is not well defined. Returns a single-element slice (the
// combined mesh) to mirror GenerateMesh's contract, matching the
// plural-but-one-result shape used when voxel sizes vary per origin.
func (m *DiscreteMesher) GenerateMeshes(origins []Vec3, sizes []Vec3) ([]*Mesh, error) {
	if len(origins) != len(sizes) {
		return nil, newArgumentError("voxelSizes.len (%d) != origins.len (%d)", len(sizes), len(origins))
	}
	if len(origins) == 0 {
		return nil, newInvariantError("mesher invoked on an empty voxel set")
	}
	// Non-uniform sizes make a single shared quantization grid meaningless,
	// so vertices are not welded here: every voxel gets its own 24
	// vertices (4 per face).
	var verts []Vec3
	var tris []Tri
	addQuad := func(corners [4]Vec3) {
		base := int32(len(verts))
		verts = append(verts, corners[0], corners[1], corners[2], corners[3])
		t1 := Tri{base, base + 1, base + 2}
		t2 := Tri{base, base + 2, base + 3}
		if m.CordSystem == LeftHanded {
			t1.B, t1.C = t1.C, t1.B
			t2.B, t2.C = t2.C, t2.B
		}
		tris = append(tris, t1, t2)
	}
	for i, origin := range origins {
		size := sizes[i]
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			return nil, newArgumentError("voxel size must be positive, got %v", size)
		}
		for face := 0; face < 6; face++ {
			emitFace(origin, size, face, addQuad)
		}
	}
	return []*Mesh{NewMesh(verts, tris, false)}, nil
}

// GetVoxelBounds returns the world-space BBox of the voxel with the
// given origin and uniform size.
func (m *DiscreteMesher) GetVoxelBounds(origin, size Vec3) BBox {
	return NewBBox(origin, origin.Add(size))
}

type voxelIndex3 struct {
	X, Y, Z int32
}

// vertexWelder assigns a shared vertex index to every quad corner that
// lands on the same lattice point, so adjacent faces reference a common
// vertex instead of each carrying its own copy. It keys on the corner's
// quantized lattice coordinate (quantizedKey, the same integer-triple key
// the sparse rasterizer dedups origins with), so two corners collide
// exactly when they round to the same voxel-fraction lattice point.
type vertexWelder struct {
	size  Vec3
	byKey map[quantizedKey]int32
	verts []Vec3
}

func newVertexWelder(size Vec3) *vertexWelder {
	return &vertexWelder{size: size, byKey: make(map[quantizedKey]int32)}
}

func (w *vertexWelder) index(p Vec3) int32 {
	k := quantize(p, w.size)
	if idx, ok := w.byKey[k]; ok {
		return idx
	}
	idx := int32(len(w.verts))
	w.verts = append(w.verts, p)
	w.byKey[k] = idx
	return idx
}

func (w *vertexWelder) vertices() []Vec3 {
	return w.verts
}

// quantizeOrigins quantizes each origin to a non-negative integer triple
// relative to the true componentwise minimum origin, by rounding to the
// nearest integer, so floating noise below half a voxel is absorbed.
func quantizeOrigins(origins []Vec3, size Vec3) ([]voxelIndex3, Vec3, error) {
	minOrigin := origins[0]
	for _, o := range origins[1:] {
		minOrigin = minOrigin.Min(o)
	}
	inv := Vec3{1 / size.X, 1 / size.Y, 1 / size.Z}
	out := make([]voxelIndex3, len(origins))
	for i, o := range origins {
		rel := o.Sub(minOrigin).Mul(inv)
		out[i] = voxelIndex3{
			X: roundToInt32NonNeg(rel.X),
			Y: roundToInt32NonNeg(rel.Y),
			Z: roundToInt32NonNeg(rel.Z),
		}
		if out[i].X >= 1<<21 || out[i].Y >= 1<<21 || out[i].Z >= 1<<21 {
			return nil, Vec3{}, newArgumentError("voxel index exceeds 21-bit Morton range")
		}
	}
	return out, minOrigin, nil
}

func roundToInt32NonNeg(x float32) int32 {
	v := int32(math.Floor(float64(x) + 0.5))
	if v < 0 {
		v = 0
	}
	return v
}

// neighbourOf returns the voxel index adjacent to idx across the given
// face (0=-X,1=+X,2=-Y,3=+Y,4=-Z,5=+Z). An out-of-range result (any axis
// negative) is signalled by returning a negative component, which
// GenerateMesh treats as "absent".
func neighbourOf(idx voxelIndex3, face int) voxelIndex3 {
	switch face {
	case 0:
		return voxelIndex3{idx.X - 1, idx.Y, idx.Z}
	case 1:
		return voxelIndex3{idx.X + 1, idx.Y, idx.Z}
	case 2:
		return voxelIndex3{idx.X, idx.Y - 1, idx.Z}
	case 3:
		return voxelIndex3{idx.X, idx.Y + 1, idx.Z}
	case 4:
		return voxelIndex3{idx.X, idx.Y, idx.Z - 1}
	default:
		return voxelIndex3{idx.X, idx.Y, idx.Z + 1}
	}
}

// emitFace constructs the quad for one face of a voxel at origin with
// the given size, oriented so its winding faces outward, and passes it
// to addQuad. Corner order is right-handed by construction; addQuad
// applies the LeftHanded swap.
func emitFace(origin, size Vec3, face int, addQuad func(corners [4]Vec3)) {
	min := origin
	max := origin.Add(size)
	switch face {
	case 0: // -X
		addQuad([4]Vec3{
			{min.X, min.Y, min.Z}, {min.X, min.Y, max.Z},
			{min.X, max.Y, max.Z}, {min.X, max.Y, min.Z},
		})
	case 1: // +X
		addQuad([4]Vec3{
			{max.X, min.Y, min.Z}, {max.X, max.Y, min.Z},
			{max.X, max.Y, max.Z}, {max.X, min.Y, max.Z},
		})
	case 2: // -Y
		addQuad([4]Vec3{
			{min.X, min.Y, min.Z}, {max.X, min.Y, min.Z},
			{max.X, min.Y, max.Z}, {min.X, min.Y, max.Z},
		})
	case 3: // +Y
		addQuad([4]Vec3{
			{min.X, max.Y, min.Z}, {min.X, max.Y, max.Z},
			{max.X, max.Y, max.Z}, {max.X, max.Y, min.Z},
		})
	case 4: // -Z
		addQuad([4]Vec3{
			{min.X, min.Y, min.Z}, {min.X, max.Y, min.Z},
			{max.X, max.Y, min.Z}, {max.X, min.Y, min.Z},
		})
	default: // +Z
		addQuad([4]Vec3{
			{min.X, min.Y, max.Z}, {max.X, min.Y, max.Z},
			{max.X, max.Y, max.Z}, {min.X, max.Y, max.Z},
		})
	}
}

// NaiveMesher emits a standalone 12-triangle box per voxel via
// BBox.ToMesh, with no face culling. Each box has 8 vertices shared by
// its faces; per-face vertex copies (24 per box) are not emitted. Used
// for debugging.
type NaiveMesher struct {
	CordSystem CordSystem
}

// GenerateMeshes returns one box mesh per origin.
func (m *NaiveMesher) GenerateMeshes(origins []Vec3, size Vec3) []*Mesh {
	out := make([]*Mesh, len(origins))
	for i, o := range origins {
		b := NewBBox(o, o.Add(size))
		out[i] = b.ToMesh(m.CordSystem)
	}
	return out
}
